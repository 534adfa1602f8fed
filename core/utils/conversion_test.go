package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 5, 5},
		{"Int64", int64(7), 7},
		{"Float", float64(3), 3},
		{"String", "12", 12},
		{"Bytes", []byte("4"), 4},
		{"BadString", "x", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "42", ToString(float64(42)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "7", ToString(7))
	assert.Equal(t, "raw", ToString([]byte("raw")))
}

func TestToIntPtr(t *testing.T) {
	assert.Nil(t, ToIntPtr(nil))
	assert.Nil(t, ToIntPtr(" "))
	if p := ToIntPtr(float64(2)); assert.NotNil(t, p) {
		assert.Equal(t, 2, *p)
	}
	if p := ToIntPtr("0"); assert.NotNil(t, p) {
		assert.Equal(t, 0, *p)
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool(float64(1)))
}

package reconcile_test

import (
	"testing"

	"bookmark-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		raw      string
		root     string
		segments []string
		key      string
	}{
		{"1/Work/Infra", "1", []string{"Work", "Infra"}, "1/Work/Infra"},
		{"2", "2", nil, "2"},
		{"1//Work/", "1", []string{"Work"}, "1/Work"},
		{"", "", nil, ""},
		{"/", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := reconcile.ParsePath(tt.raw)
			assert.Equal(t, tt.root, p.Root)
			assert.Equal(t, len(tt.segments), len(p.Segments))
			if len(tt.segments) > 0 {
				assert.Equal(t, tt.segments, p.Segments)
			}
			assert.Equal(t, tt.key, p.Key())
		})
	}
}

func TestPath_Helpers(t *testing.T) {
	p := reconcile.ParsePath("1/A")

	assert.False(t, p.IsRoot())
	assert.True(t, reconcile.ParsePath("1").IsRoot())
	assert.True(t, reconcile.ParsePath("").IsZero())

	child := p.Child("B")
	assert.Equal(t, "1/A/B", child.Key())
	// Child does not alias the parent's segments.
	sibling := p.Child("C")
	assert.Equal(t, "1/A/B", child.String())
	assert.Equal(t, "1/A/C", sibling.String())

	assert.Equal(t, "1", child.Prefix(0).Key())
	assert.Equal(t, "1/A", child.Prefix(1).Key())
	assert.Equal(t, "1/A/B", child.Prefix(5).Key())
}

func TestRootMap(t *testing.T) {
	m := reconcile.NewRootMap("1", "bar", "2", "other")

	assert.Equal(t, "bar", m.Resolve("1"))
	assert.Equal(t, "other", m.Resolve("2"))
	assert.Equal(t, "other", m.Resolve("mobile"))
	assert.True(t, m.Known("1"))
	assert.False(t, m.Known("mobile"))
	assert.Equal(t, "other", m.Fallback())
	assert.Equal(t, "1", m.Sentinel("bar"))
	assert.Equal(t, "", m.Sentinel("missing"))
}

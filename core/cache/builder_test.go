package cache_test

import (
	"testing"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folder(id, parent, title string, children ...store.Node) store.Node {
	if children == nil {
		children = []store.Node{}
	}
	return store.Node{ID: id, ParentID: parent, Title: title, Children: children}
}

func link(id, parent, title, url string) store.Node {
	return store.Node{ID: id, ParentID: parent, Title: title, URL: url}
}

func sampleTree() []store.Node {
	return []store.Node{
		folder("1", "", "Bookmarks Bar",
			folder("10", "1", "Work",
				link("11", "10", "Go", "https://go.dev/doc"),
				folder("12", "10", "Infra",
					link("13", "12", "Grafana", "https://www.grafana.com"),
					link("14", "12", "Broken", "::not a url"),
				),
				folder("15", "10", "Empty"),
			),
			link("16", "1", "News", "https://news.ycombinator.com"),
		),
		folder("2", "", "Other Bookmarks",
			link("20", "2", "Mail", "mailto:someone@example.com"),
		),
	}
}

func TestBuild_Counts(t *testing.T) {
	snap := cache.Build(sampleTree())

	assert.Equal(t, 5, snap.TotalBookmarks)
	assert.Len(t, snap.FlatBookmarks, snap.TotalBookmarks)
	assert.Equal(t, 3, snap.TotalFolders)
	assert.Len(t, snap.FolderIndex, snap.TotalFolders)

	assert.Equal(t, 3, snap.FolderIndex["10"].BookmarkCount)
	assert.Equal(t, 2, snap.FolderIndex["12"].BookmarkCount)
	assert.Equal(t, 0, snap.FolderIndex["15"].BookmarkCount)

	// Root containers are not indexed.
	assert.NotContains(t, snap.FolderIndex, "1")
	assert.NotContains(t, snap.FolderIndex, "2")
}

func TestBuild_Paths(t *testing.T) {
	snap := cache.Build(sampleTree())

	assert.Equal(t, "Work", snap.FolderIndex["10"].Path)
	assert.Equal(t, "Work/Infra", snap.FolderIndex["12"].Path)
	assert.Equal(t, "10", snap.FolderIndex["12"].ParentID)

	paths := map[string]string{}
	for _, l := range snap.FlatBookmarks {
		paths[l.ID] = l.Path
	}
	assert.Equal(t, "Work/Go", paths["11"])
	assert.Equal(t, "Work/Infra/Grafana", paths["13"])
	assert.Equal(t, "News", paths["16"])
	assert.Equal(t, "Mail", paths["20"])
}

func TestBuild_PreOrder(t *testing.T) {
	snap := cache.Build(sampleTree())

	ids := make([]string, 0, len(snap.FlatBookmarks))
	for _, l := range snap.FlatBookmarks {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"11", "13", "14", "16", "20"}, ids)
}

func TestBuild_Domains(t *testing.T) {
	snap := cache.Build(sampleTree())

	domains := map[string]string{}
	for _, l := range snap.FlatBookmarks {
		domains[l.ID] = l.Domain
	}
	assert.Equal(t, "go.dev", domains["11"])
	assert.Equal(t, "grafana.com", domains["13"])
	assert.Equal(t, cache.UnknownDomain, domains["14"])
	assert.Equal(t, "news.ycombinator.com", domains["16"])
	assert.Equal(t, cache.UnknownDomain, domains["20"])
}

func TestBuild_EmptyTree(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		snap := cache.Build(nil)
		require.NotNil(t, snap)
		assert.Zero(t, snap.TotalBookmarks)
		assert.Zero(t, snap.TotalFolders)
		assert.NotNil(t, snap.FlatBookmarks)
		assert.NotNil(t, snap.FolderIndex)
		assert.NotNil(t, snap.Tree)
	})

	t.Run("EmptyRoots", func(t *testing.T) {
		snap := cache.Build([]store.Node{folder("1", "", "Bar"), folder("2", "", "Other")})
		assert.Zero(t, snap.TotalBookmarks)
		assert.Zero(t, snap.TotalFolders)
		assert.Len(t, snap.Tree, 2)
	})
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.example.com/path", "example.com"},
		{"http://WWW.Example.COM", "example.com"},
		{"https://sub.example.com:8443/x?y=1", "sub.example.com"},
		{"https://wwwexample.com", "wwwexample.com"},
		{"ftp://files.example.org", "files.example.org"},
		{"not a url", cache.UnknownDomain},
		{"::", cache.UnknownDomain},
		{"", cache.UnknownDomain},
		{"javascript:void(0)", cache.UnknownDomain},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, cache.ExtractDomain(tt.raw))
		})
	}
}

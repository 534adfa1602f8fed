package gormstore

import (
	"strconv"
	"time"

	"bookmark-manager/core/store"
)

// NodeRecord is the persisted form of a bookmark node.
type NodeRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ParentID  *uint     `gorm:"index:idx_parent_position"`
	Position  int       `gorm:"index:idx_parent_position"`
	Title     string    `gorm:"size:1024"`
	URL       string    `gorm:"size:4096"`
	Folder    bool      `gorm:"not null;default:false"`
	DateAdded time.Time `gorm:"not null"`
}

// TableName overrides the GORM default.
func (NodeRecord) TableName() string {
	return "bookmark_nodes"
}

func (r NodeRecord) toNode() store.Node {
	n := store.Node{
		ID:        formatID(r.ID),
		Title:     r.Title,
		URL:       r.URL,
		Index:     r.Position,
		DateAdded: r.DateAdded,
	}
	if r.ParentID != nil {
		n.ParentID = formatID(*r.ParentID)
	}
	if r.Folder {
		n.Children = []store.Node{}
	}
	return n
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(id string) (uint, bool) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

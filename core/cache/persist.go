package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookmark-manager/core/storage"
)

// Persister stores the latest snapshot between runs.
// Load returns nil without error when nothing has been persisted.
type Persister interface {
	Save(ctx context.Context, cached *Cached) error
	Load(ctx context.Context) (*Cached, error)
	Clear(ctx context.Context) error
}

// KVEntry is a key/value row holding a serialized snapshot.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:longtext"`
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// DBPersister keeps the snapshot in a database row.
type DBPersister struct {
	db  *gorm.DB
	key string
}

// NewDBPersister creates a persister writing under key.
func NewDBPersister(db *gorm.DB, key string) *DBPersister {
	return &DBPersister{db: db, key: key}
}

// Migrate creates the key/value table.
func (p *DBPersister) Migrate(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(&KVEntry{}); err != nil {
		return fmt.Errorf("migrate kv entries: %w", err)
	}
	return nil
}

// Save upserts the snapshot row.
func (p *DBPersister) Save(ctx context.Context, cached *Cached) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	entry := KVEntry{Key: p.key, Value: string(data), UpdatedAt: time.Now().UTC()}
	err = p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot row.
func (p *DBPersister) Load(ctx context.Context) (*Cached, error) {
	var entry KVEntry
	err := p.db.WithContext(ctx).Where(&KVEntry{Key: p.key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return decodeCached([]byte(entry.Value))
}

// Clear deletes the snapshot row.
func (p *DBPersister) Clear(ctx context.Context) error {
	if err := p.db.WithContext(ctx).Where(&KVEntry{Key: p.key}).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// ObjectPersister keeps the snapshot as a JSON object.
type ObjectPersister struct {
	client     storage.Client
	bucket     string
	objectName string
}

// NewObjectPersister creates a persister writing bucket/objectName.
func NewObjectPersister(client storage.Client, bucket, objectName string) *ObjectPersister {
	return &ObjectPersister{client: client, bucket: bucket, objectName: objectName}
}

// Save uploads the snapshot.
func (p *ObjectPersister) Save(ctx context.Context, cached *Cached) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = p.client.PutObject(ctx, p.bucket, p.objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	return nil
}

// Load downloads the snapshot.
func (p *ObjectPersister) Load(ctx context.Context) (*Cached, error) {
	obj, err := p.client.GetObject(ctx, p.bucket, p.objectName, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return decodeCached(data)
}

// Clear removes the snapshot object.
func (p *ObjectPersister) Clear(ctx context.Context) error {
	err := p.client.RemoveObject(ctx, p.bucket, p.objectName, minio.RemoveObjectOptions{})
	if err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func decodeCached(data []byte) (*Cached, error) {
	var cached Cached
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &cached, nil
}

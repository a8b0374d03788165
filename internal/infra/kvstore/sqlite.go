package kvstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jorrgejimenezm/FlickShop/internal/repository"
)

// ローカルファイルに保存するエントリ
type cartEntry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (cartEntry) TableName() string {
	return "cart_entries"
}

// SQLiteStoreは無期限のローカル保存先。
// 匿名カート（localStorage相当）に使う。ttlは受け取っても無視する。
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLiteはファイルを開いてテーブルを用意する
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&cartEntry{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

var _ repository.KeyValueStore = (*SQLiteStore)(nil)

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var entry cartEntry

	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string, _ time.Duration) error {
	entry := cartEntry{
		Key:   key,
		Value: value,
	}

	//同一キーは上書き
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&cartEntry{}).Error
}

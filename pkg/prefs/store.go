// Package prefs is a scoped key-value store for presentation-layer settings
// such as the "use demonstration data" toggle. It shares the application
// database file but is invisible to the medical-record storage engine.
package prefs

import (
	"context"
	"errors"

	"github.com/clinicdesk/emr-core/pkg/common/clock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Preference struct {
	Scope     string `gorm:"primaryKey;column:scope" json:"scope"`
	Key       string `gorm:"primaryKey;column:key" json:"key"`
	Value     string `gorm:"column:value" json:"value"`
	UpdatedAt string `gorm:"column:updated_at" json:"updated_at"`
}

func (Preference) TableName() string { return "app_preferences" }

type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewStore(db *gorm.DB, clk clock.Clock) *Store {
	return &Store{db: db, clock: clk}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(`CREATE TABLE IF NOT EXISTS app_preferences (
		scope TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT,
		updated_at TEXT,
		PRIMARY KEY (scope, key)
	)`).Error
}

// Get returns nil when the preference has never been set.
func (s *Store) Get(ctx context.Context, scope, key string) (*Preference, error) {
	var pref Preference
	err := s.db.WithContext(ctx).First(&pref, "scope = ? AND key = ?", scope, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Store) Set(ctx context.Context, scope, key, value string) error {
	pref := Preference{
		Scope:     scope,
		Key:       key,
		Value:     value,
		UpdatedAt: s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}

// SetDefault writes value only when the preference is unset, so an injected
// startup default never clobbers a user's saved choice.
func (s *Store) SetDefault(ctx context.Context, scope, key, value string) error {
	existing, err := s.Get(ctx, scope, key)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.Set(ctx, scope, key, value)
}

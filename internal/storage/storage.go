// Package storage is the database boundary: the master weapon catalog is
// read once at startup, finished drafts are appended to game_results. Room
// state itself is never persisted.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

type Weapon struct {
	ID            int    `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Attribute     string
	SubWeapon     string
	SpecialWeapon string
	ImageURL      string
}

type GameResult struct {
	ID          uint   `gorm:"primaryKey"`
	RoomID      string `gorm:"index"`
	StageID     int
	RuleID      int
	AlphaBans   []int `gorm:"serializer:json"`
	BravoBans   []int `gorm:"serializer:json"`
	AlphaPicks  []int `gorm:"serializer:json"`
	BravoPicks  []int `gorm:"serializer:json"`
	CompletedAt time.Time
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(dsn string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&Weapon{}, &GameResult{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// LoadWeapons reads the full master catalog.
func (s *Store) LoadWeapons(ctx context.Context) ([]catalog.Weapon, error) {
	var rows []Weapon
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}
	weapons := make([]catalog.Weapon, 0, len(rows))
	for _, w := range rows {
		weapons = append(weapons, catalog.Weapon{
			ID:            w.ID,
			Name:          w.Name,
			Attribute:     w.Attribute,
			SubWeapon:     w.SubWeapon,
			SpecialWeapon: w.SpecialWeapon,
			ImageURL:      w.ImageURL,
		})
	}
	s.log.Info("weapon catalog loaded", zap.Int("count", len(weapons)))
	return weapons, nil
}

// SaveResult appends one finalized draft.
func (s *Store) SaveResult(ctx context.Context, rec types.GameRecord) error {
	row := GameResult{
		RoomID:      rec.RoomID,
		StageID:     rec.StageID,
		RuleID:      rec.RuleID,
		AlphaBans:   rec.Bans[string(engine.TeamAlpha)],
		BravoBans:   rec.Bans[string(engine.TeamBravo)],
		AlphaPicks:  rec.Picks[string(engine.TeamAlpha)],
		BravoPicks:  rec.Picks[string(engine.TeamBravo)],
		CompletedAt: rec.CompletedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("saving game result: %w", err)
	}
	return nil
}

// NopSink logs and discards results; used when no database is configured.
type NopSink struct {
	Log *zap.Logger
}

func (n NopSink) SaveResult(_ context.Context, rec types.GameRecord) error {
	if n.Log != nil {
		n.Log.Info("draft completed (no result store configured)",
			zap.String("room", rec.RoomID),
			zap.Int("stage", rec.StageID),
			zap.Int("rule", rec.RuleID))
	}
	return nil
}

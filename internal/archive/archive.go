// Package archive keeps numbered snapshots of line sets per model in a
// SQL database, so earlier annotation states can be restored.
package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNoSnapshot is returned when a model has never been archived
var ErrNoSnapshot = errors.New("no snapshot for model")

// Snapshot is one archived line set
type Snapshot struct {
	ID        uint   `gorm:"primaryKey"`
	ModelPath string `gorm:"index:idx_model_revision,unique;size:1024;not null"`
	Revision  int    `gorm:"index:idx_model_revision,unique;not null"`
	CreatedAt time.Time
	Lines     []Line `gorm:"constraint:OnDelete:CASCADE"`
}

// Line is one marker inside a snapshot
type Line struct {
	ID         uint `gorm:"primaryKey"`
	SnapshotID uint `gorm:"index;not null"`
	Position   int
	MarkerID   int
	Label      string
	StartX     float64
	StartY     float64
	StartZ     float64
	EndX       float64
	EndY       float64
	EndZ       float64
	ColorArgb  int32
}

// Summary describes a snapshot without its lines
type Summary struct {
	ModelPath string
	Revision  int
	CreatedAt time.Time
	LineCount int
}

// Archive stores line-set snapshots
type Archive struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the archive database and migrates the schema
func Open(driver, dsn string, log zerolog.Logger) (*Archive, error) {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported archive driver %q (expected %s or %s)", driver, DriverSQLite, DriverPostgres)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s archive: %w", driver, err)
	}

	if driver == DriverSQLite {
		if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if err := db.AutoMigrate(&Snapshot{}, &Line{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	a := &Archive{
		db:  db,
		log: log.With().Str("component", "archive").Str("driver", driver).Logger(),
	}
	a.log.Debug().Msg("archive ready")
	return a, nil
}

// Close releases the database connection
func (a *Archive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// modelKey normalizes model paths so the same file always maps to one key
func modelKey(modelPath string) string {
	if abs, err := filepath.Abs(modelPath); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(modelPath)
}

// Push stores records as the next revision for modelPath
func (a *Archive) Push(ctx context.Context, modelPath string, records []marker.Record) (Summary, error) {
	key := modelKey(modelPath)
	var snap Snapshot

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&Snapshot{}).
			Where("model_path = ?", key).
			Select("COALESCE(MAX(revision), 0)").
			Scan(&last).Error; err != nil {
			return err
		}

		snap = Snapshot{
			ModelPath: key,
			Revision:  last + 1,
			Lines:     make([]Line, 0, len(records)),
		}
		for i, r := range records {
			snap.Lines = append(snap.Lines, Line{
				Position:  i,
				MarkerID:  r.ID,
				Label:     r.Label,
				StartX:    r.StartX,
				StartY:    r.StartY,
				StartZ:    r.StartZ,
				EndX:      r.EndX,
				EndY:      r.EndY,
				EndZ:      r.EndZ,
				ColorArgb: r.ColorArgb,
			})
		}
		return tx.Create(&snap).Error
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to archive lines for %s: %w", key, err)
	}

	a.log.Info().
		Str("model", key).
		Int("revision", snap.Revision).
		Int("lines", len(records)).
		Msg("line set archived")
	return summarize(snap, len(records)), nil
}

// Latest returns the newest snapshot of modelPath
func (a *Archive) Latest(ctx context.Context, modelPath string) ([]marker.Record, Summary, error) {
	return a.Revision(ctx, modelPath, 0)
}

// Revision returns a specific snapshot of modelPath; revision 0 means the
// newest one
func (a *Archive) Revision(ctx context.Context, modelPath string, revision int) ([]marker.Record, Summary, error) {
	key := modelKey(modelPath)

	q := a.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("model_path = ?", key)
	if revision > 0 {
		q = q.Where("revision = ?", revision)
	}

	var snap Snapshot
	err := q.Order("revision DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Summary{}, fmt.Errorf("%w: %s", ErrNoSnapshot, key)
	}
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to read archive for %s: %w", key, err)
	}

	records := make([]marker.Record, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		records = append(records, marker.Record{
			ID:        l.MarkerID,
			Label:     l.Label,
			StartX:    l.StartX,
			StartY:    l.StartY,
			StartZ:    l.StartZ,
			EndX:      l.EndX,
			EndY:      l.EndY,
			EndZ:      l.EndZ,
			ColorArgb: l.ColorArgb,
		})
	}
	return records, summarize(snap, len(records)), nil
}

// List returns every snapshot, grouped by model and newest first
func (a *Archive) List(ctx context.Context) ([]Summary, error) {
	type row struct {
		ModelPath string
		Revision  int
		CreatedAt time.Time
		LineCount int
	}
	var rows []row
	err := a.db.WithContext(ctx).
		Model(&Snapshot{}).
		Select("snapshots.model_path, snapshots.revision, snapshots.created_at, COUNT(lines.id) AS line_count").
		Joins("LEFT JOIN lines ON lines.snapshot_id = snapshots.id").
		Group("snapshots.id, snapshots.model_path, snapshots.revision, snapshots.created_at").
		Order("snapshots.model_path, snapshots.revision DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary(r))
	}
	return out, nil
}

func summarize(s Snapshot, lines int) Summary {
	return Summary{
		ModelPath: s.ModelPath,
		Revision:  s.Revision,
		CreatedAt: s.CreatedAt,
		LineCount: lines,
	}
}

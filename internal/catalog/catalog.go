// Package catalog owns the phrase dataset currently loaded from a
// spreadsheet and replaces it wholesale on every load.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/phrasekit/internal/formats/xlsx"
	"github.com/klytics/phrasekit/internal/phrases"
)

var (
	// ErrNoFile is returned when a load is requested without a file.
	ErrNoFile = errors.New("select a spreadsheet file (.xlsx) to load")
	// ErrUnreadable wraps every failure to read or parse a spreadsheet.
	ErrUnreadable = errors.New("could not read the spreadsheet")
	// ErrStale is returned by a load that was overtaken by a newer one.
	ErrStale = errors.New("load superseded by a newer one")
)

// Snapshot is an immutable view of one successful load.
type Snapshot struct {
	*phrases.Dataset
	Source     string
	Sheet      string
	Generation uint64
	LoadedAt   time.Time
}

// Catalog holds the current dataset. The zero value is not usable; call New.
type Catalog struct {
	logger *zap.Logger

	mu      sync.RWMutex
	current *Snapshot
	gen     uint64 // newest generation handed out
}

// New creates an empty catalog.
func New(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{logger: logger}
}

// Load reads the first sheet of the .xlsx file at path and makes it the
// current dataset. On failure the previous dataset stays in place.
func (c *Catalog) Load(ctx context.Context, path string) (*Snapshot, error) {
	if path == "" {
		return nil, ErrNoFile
	}
	gen := c.begin()
	sheet, err := xlsx.ReadFile(path)
	return c.finish(ctx, gen, path, sheet, err)
}

// LoadBytes is Load for an in-memory file; name is only used for reporting.
func (c *Catalog) LoadBytes(ctx context.Context, name string, data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	gen := c.begin()
	sheet, err := xlsx.ReadBytes(data)
	return c.finish(ctx, gen, name, sheet, err)
}

// Current returns the latest snapshot, or nil before the first load.
func (c *Catalog) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Search runs the phrase matcher against the current flat list.
func (c *Catalog) Search(query string) []phrases.Record {
	snap := c.Current()
	if snap == nil {
		return []phrases.Record{}
	}
	return phrases.Search(query, snap.Records)
}

func (c *Catalog) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

func (c *Catalog) finish(ctx context.Context, gen uint64, source string, sheet *xlsx.Sheet, readErr error) (*Snapshot, error) {
	if readErr != nil {
		c.logger.Error("spreadsheet load failed",
			zap.String("source", source),
			zap.Uint64("generation", gen),
			zap.Error(readErr))
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, readErr)
	}
	if err := ctx.Err(); err != nil {
		c.logger.Debug("spreadsheet load cancelled",
			zap.String("source", source),
			zap.Uint64("generation", gen))
		return nil, err
	}

	snap := &Snapshot{
		Dataset:    phrases.Build(sheet.Rows),
		Source:     source,
		Sheet:      sheet.Name,
		Generation: gen,
		LoadedAt:   time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Warn("discarding stale spreadsheet load",
			zap.String("source", source),
			zap.Uint64("generation", gen),
			zap.Uint64("newest", c.gen))
		return nil, ErrStale
	}
	c.current = snap

	c.logger.Info("spreadsheet loaded",
		zap.String("source", source),
		zap.String("sheet", sheet.Name),
		zap.Int("phrases", len(snap.Records)),
		zap.Int("categories", len(snap.Tree.Categories)),
		zap.Uint64("generation", gen))
	return snap, nil
}

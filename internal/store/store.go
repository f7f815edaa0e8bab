// Package store persists hand records as one TOML file per hand.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/handrecorder/internal/fileutil"
	"github.com/lox/handrecorder/internal/game"
	"github.com/lox/handrecorder/internal/hand"
	"github.com/lox/handrecorder/internal/handid"
)

const ext = ".toml"

// ErrNotFound is returned when no hand with the requested ID is stored
var ErrNotFound = errors.New("hand not found")

// Store reads and writes hand records under a directory
type Store struct {
	dir    string
	logger *log.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used to report unreadable files during List
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open returns a store rooted at dir, creating the directory if needed
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{dir: dir, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory hands are stored in
func (s *Store) Dir() string { return s.dir }

// Path returns the file a hand is stored in
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+ext)
}

// Save writes rec atomically, replacing any earlier version
func (s *Store) Save(rec *hand.Record) error {
	if err := handid.Validate(rec.ID); err != nil {
		return fmt.Errorf("save hand: %w", err)
	}

	err := fileutil.WriteAtomic(s.Path(rec.ID), 0o644, func(w io.Writer) error {
		return Encode(w, rec)
	})
	if err != nil {
		return fmt.Errorf("save hand %s: %w", rec.ID, err)
	}
	s.logger.Debug("Saved hand", "id", rec.ID, "actions", len(rec.Actions))
	return nil
}

// Load reads the hand with the given ID
func (s *Store) Load(id string) (*hand.Record, error) {
	if err := handid.Validate(id); err != nil {
		return nil, fmt.Errorf("load hand: %w", err)
	}

	data, err := os.ReadFile(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load hand %s: %w", id, err)
	}

	rec, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load hand %s: %w", id, err)
	}
	return rec, nil
}

// Delete removes a stored hand
func (s *Store) Delete(id string) error {
	if err := handid.Validate(id); err != nil {
		return fmt.Errorf("delete hand: %w", err)
	}
	err := os.Remove(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// Summary is the listing view of a stored hand
type Summary struct {
	ID         string
	Created    time.Time
	StakeLevel string
	Hero       game.Position
	Street     game.Street
	PotSize    int
	Result     hand.Result
	AmountWon  int
	Complete   bool
}

// List returns a summary of every readable hand, oldest first. Files that
// fail to decode are skipped with a warning.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list hands: %w", err)
	}

	var out []Summary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if handid.Validate(id) != nil {
			continue
		}

		rec, err := s.Load(id)
		if err != nil {
			s.logger.Warn("Skipping unreadable hand", "file", name, "err", err)
			continue
		}
		out = append(out, Summary{
			ID:         rec.ID,
			Created:    rec.Created,
			StakeLevel: rec.StakeLevel,
			Hero:       rec.HeroPosition,
			Street:     rec.CurrentStreet,
			PotSize:    rec.PotSize,
			Result:     rec.Result,
			AmountWon:  rec.AmountWon,
			Complete:   rec.IsComplete(),
		})
	}

	// IDs are time ordered
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

package schedule

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	rerrors "github.com/queryshv/rad-report/internal/errors"
)

// ErrNoRecord is returned by a Backend that has never persisted a record.
var ErrNoRecord = errors.New("schedule: no record persisted")

// Backend persists the whole schedule record as one unit.
type Backend interface {
	// Load returns the persisted record, or ErrNoRecord.
	Load(ctx context.Context) (Record, error)
	// Save overwrites the persisted record.
	Save(ctx context.Context, rec Record) error
	// Location describes where the record lives, for logs.
	Location() string
}

// Store applies validation and merge rules on top of a Backend.
//
// The mutex serializes read-modify-write cycles inside one process only.
// Two processes sharing a backend are last-write-wins per full rewrite.
type Store struct {
	backend Backend
	log     *zap.Logger
	mu      sync.Mutex
}

// NewStore returns a Store over backend.
func NewStore(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Location describes the backing store.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Get returns the current record. A backend with nothing persisted yet is
// initialized with an empty record.
func (s *Store) Get(ctx context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Lookup returns the operator scheduled for key.
func (s *Store) Lookup(ctx context.Context, key string) (string, bool, error) {
	rec, err := s.Get(ctx)
	if err != nil {
		return "", false, err
	}
	op, ok := rec.Operator(key)
	return op, ok, nil
}

// Replace validates rec and overwrites the stored record with it. Operator
// names are stored trimmed, as on every write.
func (s *Store) Replace(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = strings.TrimSpace(v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, out)
}

// UpsertMany validates every entry, then merges them into the stored record
// in order so that later entries win on duplicate dates.
func (s *Store) UpsertMany(ctx context.Context, entries []Entry) error {
	if err := ValidateEntries(entries); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		rec[e.Date] = strings.TrimSpace(e.Operator)
	}
	return s.save(ctx, rec)
}

// Put edits the entry stored under oldKey. When e.Date differs from oldKey
// the entry moves to the new date, replacing whatever was there.
func (s *Store) Put(ctx context.Context, oldKey string, e Entry) error {
	e.Operator = strings.TrimSpace(e.Operator)
	if err := ValidateEntries([]Entry{e}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := rec[oldKey]; !ok {
		return rerrors.NotFound("Schedule entry " + oldKey)
	}
	delete(rec, oldKey)
	rec[e.Date] = e.Operator
	return s.save(ctx, rec)
}

// Delete removes the entry for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := rec[key]; !ok {
		return rerrors.NotFound("Schedule entry " + key)
	}
	delete(rec, key)
	return s.save(ctx, rec)
}

func (s *Store) load(ctx context.Context) (Record, error) {
	rec, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNoRecord) {
		s.log.Info("initializing empty schedule", zap.String("location", s.backend.Location()))
		if err := s.save(ctx, Record{}); err != nil {
			return nil, err
		}
		return Record{}, nil
	}
	if err != nil {
		s.log.Error("failed to read schedule", zap.String("location", s.backend.Location()), zap.Error(err))
		return nil, rerrors.StorageRead(err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

func (s *Store) save(ctx context.Context, rec Record) error {
	if err := s.backend.Save(ctx, rec); err != nil {
		s.log.Error("failed to write schedule", zap.String("location", s.backend.Location()), zap.Error(err))
		return rerrors.StorageWrite(err)
	}
	s.log.Debug("schedule saved", zap.Int("entries", len(rec)))
	return nil
}

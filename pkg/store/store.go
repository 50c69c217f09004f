// Package store is the record store used by the application layer.
//
// Every operation opens the database file, performs one unit of work and closes
// it again. Failures never escape: they are logged and turned into a safe
// default (false, nil, zero). Callers that need the cause can read Err after
// the call.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/db"
)

// DefaultRecentLimit is the usual limit for GetRecent.
const DefaultRecentLimit = 5

// Store persists summary records in a single SQLite file.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	lastErr error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store backed by the file at path and initializes its schema.
// An initialization failure is logged and also visible through Err.
func New(path string, opts ...Option) *Store {
	if path == "" {
		path = models.DefaultDBPath
	}

	s := &Store{
		path:   path,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Initialize()
	return s
}

// Path returns the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Err returns the error from the most recent operation, or nil if it succeeded.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// withDB opens the database, runs fn and closes it. Any error is logged under op
// and recorded for Err.
func (s *Store) withDB(op string, fn func(*db.DB) error) bool {
	database, err := db.Open(s.path)
	if err != nil {
		s.fail(op, err)
		return false
	}
	defer database.Close()

	if err := fn(database); err != nil {
		s.fail(op, err)
		return false
	}

	s.setErr(nil)
	return true
}

func (s *Store) fail(op string, err error) {
	s.setErr(err)
	s.logger.Error("summary store operation failed", "op", op, "path", s.path, "error", err)
}

// Initialize creates the backing file and schema if they do not exist.
func (s *Store) Initialize() bool {
	return s.withDB("initialize", func(*db.DB) error { return nil })
}

// Save stores a new record. word_count is derived from the summary text and
// created_at is set to the current time. It returns the new id and whether the
// record was stored.
func (s *Store) Save(p models.SaveParams) (int64, bool) {
	var id int64
	ok := s.withDB("save", func(database *db.DB) error {
		var err error
		id, err = database.InsertSummary(p, s.now())
		return err
	})
	if !ok {
		return 0, false
	}

	s.logger.Debug("summary saved", "id", id, "url", p.URL)
	return id, true
}

// GetAll returns every record, newest first.
func (s *Store) GetAll() []models.SummaryRecord {
	return s.list("get_all", 0)
}

// GetRecent returns at most limit records, newest first. A limit <= 0
// returns no records.
func (s *Store) GetRecent(limit int) []models.SummaryRecord {
	if limit <= 0 {
		return []models.SummaryRecord{}
	}
	return s.list("get_recent", limit)
}

func (s *Store) list(op string, limit int) []models.SummaryRecord {
	var records []models.SummaryRecord
	ok := s.withDB(op, func(database *db.DB) error {
		var err error
		records, err = database.ListSummaries(limit)
		return err
	})
	if !ok {
		return nil
	}
	return records
}

// GetByID returns the record with the given id. The bool is false when the
// record does not exist or the lookup failed.
func (s *Store) GetByID(id int64) (models.SummaryRecord, bool) {
	var record *models.SummaryRecord
	ok := s.withDB("get_by_id", func(database *db.DB) error {
		var err error
		record, err = database.GetSummaryByID(id)
		return err
	})
	if !ok || record == nil {
		return models.SummaryRecord{}, false
	}
	return *record, true
}

// Search returns records whose url, title or summary text contains query,
// ignoring case, newest first.
func (s *Store) Search(query string) []models.SummaryRecord {
	var records []models.SummaryRecord
	ok := s.withDB("search", func(database *db.DB) error {
		var err error
		records, err = database.SearchSummaries(query)
		return err
	})
	if !ok {
		return nil
	}
	return records
}

// Delete removes the record with the given id. It reports true for ids that
// do not exist as well: the delete matches zero rows and that is not a failure.
func (s *Store) Delete(id int64) bool {
	return s.withDB("delete", func(database *db.DB) error {
		return database.DeleteSummary(id)
	})
}

// ClearAll irreversibly removes every record.
func (s *Store) ClearAll() bool {
	return s.withDB("clear_all", func(database *db.DB) error {
		return database.ClearSummaries()
	})
}

// Count returns the number of stored records, or 0 if counting failed.
func (s *Store) Count() int {
	var count int
	ok := s.withDB("count", func(database *db.DB) error {
		var err error
		count, err = database.CountSummaries()
		return err
	})
	if !ok {
		return 0
	}
	return count
}

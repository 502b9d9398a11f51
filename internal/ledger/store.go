package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/tellerkit/teller/internal/model"
)

const defaultFileMode fs.FileMode = 0o644

// Store owns the in-memory account collection and its backing file.
// The collection is loaded lazily on first access and rewritten in full
// by Save. Store is not safe for concurrent use.
type Store struct {
	path     string
	logger   *slog.Logger
	accounts []model.Account
	loaded   bool
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger.With("ledger", path)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file and replaces the in-memory collection.
// A missing or empty file yields an empty collection. An unreadable or
// malformed file also leaves the collection empty, and the error is
// returned so the caller can report it.
func (s *Store) Load() ([]model.Account, error) {
	s.loaded = true
	s.accounts = nil

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("ledger file not found, starting empty")
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("could not open ledger, starting empty", "error", err)
		return nil, fmt.Errorf("opening ledger %s: %w", s.path, err)
	}
	defer f.Close()

	accounts, err := ReadAccounts(f)
	if err != nil {
		s.logger.Warn("could not read ledger, starting empty", "error", err)
		return nil, fmt.Errorf("loading ledger %s: %w", s.path, err)
	}

	s.accounts = accounts
	s.logger.Debug("ledger loaded", "accounts", len(accounts))
	return s.All(), nil
}

// Save writes the full collection to a temporary file next to the
// backing file and renames it into place. On failure the backing file
// and the in-memory collection are left as they were.
func (s *Store) Save() (err error) {
	s.ensureLoaded()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := WriteAccounts(tmp, s.accounts); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing ledger %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing ledger %s: %w", s.path, err)
	}
	if err := os.Chmod(tmp.Name(), s.fileMode()); err != nil {
		return fmt.Errorf("setting ledger mode %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", s.path, err)
	}

	s.logger.Debug("ledger saved", "accounts", len(s.accounts))
	return nil
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	s.ensureLoaded()
	return len(s.accounts)
}

// All returns a copy of the collection.
func (s *Store) All() []model.Account {
	s.ensureLoaded()
	return slices.Clone(s.accounts)
}

// Get returns the account at index i.
func (s *Store) Get(i int) model.Account {
	s.ensureLoaded()
	return s.accounts[i]
}

// Index returns the index of the first account matching fn, or -1.
func (s *Store) Index(fn func(model.Account) bool) int {
	s.ensureLoaded()
	return slices.IndexFunc(s.accounts, fn)
}

// Contains reports whether an account number is already in use.
func (s *Store) Contains(accountNumber string) bool {
	return s.Index(func(a model.Account) bool {
		return a.AccountNumber == accountNumber
	}) >= 0
}

// Append adds an account to the end of the collection.
func (s *Store) Append(a model.Account) {
	s.ensureLoaded()
	s.accounts = append(s.accounts, a)
}

// Set replaces the account at index i.
func (s *Store) Set(i int, a model.Account) {
	s.ensureLoaded()
	s.accounts[i] = a
}

// Remove deletes the account at index i, preserving order.
func (s *Store) Remove(i int) {
	s.ensureLoaded()
	s.accounts = slices.Delete(s.accounts, i, i+1)
}

// fileMode keeps the permissions of an existing ledger across saves.
func (s *Store) fileMode() fs.FileMode {
	if info, err := os.Stat(s.path); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}

func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	// Load logs its own failure; the collection stays empty either way.
	_, _ = s.Load()
}

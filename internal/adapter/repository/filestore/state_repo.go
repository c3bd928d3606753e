package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Keys of the local layout, one file per key
const (
	KeyCards     = "cards"
	KeyFunds     = "funds"
	KeyOthers    = "others"
	KeyCurrency  = "currency"
	KeyHistory   = "history"
	KeyGoldGrams = "goldGrams"
)

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// DirFor returns the local data directory for an identity; empty means the anonymous profile
func DirFor(baseDir, userID string) string {
	if userID == "" {
		return filepath.Join(baseDir, "local")
	}
	return filepath.Join(baseDir, "users", unsafePathChars.ReplaceAllString(userID, "_"))
}

// StateRepository implements domain.LocalStateRepository on a directory of JSON files.
// Every key is read independently so one corrupt file never prevents loading the others.
type StateRepository struct {
	dir      string
	defaults domain.State
	logger   *logrus.Logger
	mu       sync.Mutex
}

// NewStateRepository creates a new StateRepository. defaults is used per key when a file
// is missing or unreadable.
func NewStateRepository(dir string, defaults domain.State, logger *logrus.Logger) *StateRepository {
	return &StateRepository{
		dir:      dir,
		defaults: defaults,
		logger:   logger,
	}
}

// Dir returns the directory the repository reads and writes
func (r *StateRepository) Dir() string {
	return r.dir
}

// Load reads every key
// Logic:
//   - Missing file: the default for that key
//   - cards, funds, others, history that are not a valid array: the default, logged
//   - currency that is not a supported code: TRY, logged
//   - goldGrams decodes leniently
func (r *StateRepository) Load(ctx context.Context) (domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defaults := r.defaults.Clone()
	st := domain.State{}

	if err := r.readArray(KeyCards, &st.Cards); err != nil {
		st.Cards = defaults.Cards
		r.logFallback(KeyCards, err)
	}
	if err := r.readArray(KeyFunds, &st.Funds); err != nil {
		st.Funds = defaults.Funds
		r.logFallback(KeyFunds, err)
	}
	if err := r.readArray(KeyOthers, &st.Others); err != nil {
		st.Others = defaults.Others
		r.logFallback(KeyOthers, err)
	}
	if err := r.readArray(KeyHistory, &st.History); err != nil {
		st.History = defaults.History
		r.logFallback(KeyHistory, err)
	}

	var code string
	if err := r.readKey(KeyCurrency, &code); err != nil {
		st.Currency = defaults.Currency
		r.logFallback(KeyCurrency, err)
	} else if c, err := domain.ParseCurrency(code); err != nil {
		st.Currency = domain.DefaultCurrency
		r.logFallback(KeyCurrency, err)
	} else {
		st.Currency = c
	}

	if err := r.readKey(KeyGoldGrams, &st.GoldGrams); err != nil {
		st.GoldGrams = defaults.GoldGrams
		r.logFallback(KeyGoldGrams, err)
	}

	st.Normalize()
	return st, nil
}

// Save writes every key atomically (temp file + rename)
func (r *StateRepository) Save(ctx context.Context, st domain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	st = st.Clone()
	st.Normalize()

	values := map[string]interface{}{
		KeyCards:     st.Cards,
		KeyFunds:     st.Funds,
		KeyOthers:    st.Others,
		KeyCurrency:  st.Currency,
		KeyHistory:   st.History,
		KeyGoldGrams: st.GoldGrams,
	}
	for key, value := range values {
		if err := writeJSON(filepath.Join(r.dir, key+".json"), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

var (
	// errMissing marks a key that has never been written
	errMissing = errors.New("not written yet")

	errNotArray = errors.New("not a JSON array")
)

func (r *StateRepository) readKey(key string, target interface{}) error {
	data, err := r.read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (r *StateRepository) readArray(key string, target interface{}) error {
	data, err := r.read(key)
	if err != nil {
		return err
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return errNotArray
	}
	return json.Unmarshal(data, target)
}

func (r *StateRepository) read(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, key+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errMissing
	}
	return data, err
}

func (r *StateRepository) logFallback(key string, err error) {
	if errors.Is(err, errMissing) {
		r.logger.WithField("key", key).Debug("No stored value, using default")
		return
	}
	r.logger.WithFields(logrus.Fields{
		"key": key,
		"err": err,
	}).Warn("Stored value is corrupt, using default")
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

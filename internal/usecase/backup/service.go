package backup

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// BackupService handles export and import of the full state document
type BackupService struct {
	Store  *state.Store
	Logger *logrus.Logger
}

// NewBackupService creates a new BackupService instance
func NewBackupService(store *state.Store, logger *logrus.Logger) *BackupService {
	return &BackupService{
		Store:  store,
		Logger: logger,
	}
}

// Export returns the current state as a backup document
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	return Export(s.Store.Snapshot())
}

// Import validates doc and replaces the whole state with it.
// An invalid document leaves the current state untouched.
func (s *BackupService) Import(ctx context.Context, doc []byte) (*domain.State, error) {
	st, err := Import(doc)
	if err != nil {
		s.Logger.WithError(err).Warn("Rejected backup import")
		return nil, err
	}

	s.Store.Replace(st)
	s.Logger.WithFields(logrus.Fields{
		"cards":   len(st.Cards),
		"funds":   len(st.Funds),
		"others":  len(st.Others),
		"history": len(st.History),
	}).Info("Backup imported")

	return &st, nil
}

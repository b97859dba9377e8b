package backup

import (
	"context"
	"time"

	"github.com/robinFdr/MailBackup/internal/accounts"
	"github.com/robinFdr/MailBackup/pkg/models"
)

// Session is one logged-in IMAP session. Message identifiers are sequence
// numbers valid only for the current selection; they are never persisted.
type Session interface {
	ListFolders() ([]string, error)
	Select(folder string) (uint32, error)
	SearchSince(since time.Time) ([]uint32, error)
	Fetch(id uint32) ([]byte, error)
	Logout() error
}

// LoginFunc establishes an authenticated session.
type LoginFunc func(addr, username, password string) (Session, error)

// CredentialProvider supplies the secret for an account that has none
// cached. It may block (e.g. a terminal prompt) and is invoked repeatedly
// until it returns a non-empty secret.
type CredentialProvider interface {
	RequestSecret(ctx context.Context, accountIdentity string) (string, error)
}

// Progress receives best-effort human-readable progress updates.
// Implementations must not block indefinitely.
type Progress interface {
	Report(message string, percent int)
}

// Renderer produces the per-run overview from the saved-message records.
type Renderer interface {
	Render(dir, account string, runTime time.Time, records []*models.MessageRecord) error
}

// CatalogSink opens a recorder for one account run. Optional; a nil sink
// disables cataloging.
type CatalogSink interface {
	BeginRun(ctx context.Context, account string, startedAt time.Time) (RunRecorder, error)
}

// RunRecorder receives each saved-message record of one run, in order.
type RunRecorder interface {
	Record(ctx context.Context, rec *models.MessageRecord) error
	Finish(ctx context.Context, saved, failed int) error
}

// ConfigStore persists the whole account collection.
type ConfigStore interface {
	Load() (*accounts.Resources, error)
	Save(*accounts.Resources) error
}

// Notifier is told about each finished account backup.
type Notifier interface {
	RunFinished(ctx context.Context, summary *models.RunSummary) error
}

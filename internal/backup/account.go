package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robinFdr/MailBackup/internal/secrets"
	"github.com/robinFdr/MailBackup/pkg/models"
)

const backupDirLayout = "20060102-1504"

// Orchestrator backs up one account end to end: credential resolution,
// login, destination tree creation, per-folder sync, cutoff update, report.
type Orchestrator struct {
	Login       LoginFunc
	Credentials CredentialProvider
	Codec       secrets.Codec
	Progress    Progress
	Renderer    Renderer    // optional
	Catalog     CatalogSink // optional

	// Resolver derives an IMAP address for accounts without a configured
	// server. Optional.
	Resolver func(username string) (string, error)

	// Clock defaults to time.Now; tests pin it.
	Clock func() time.Time

	Logger *slog.Logger
}

// accountRun holds the state of one account backup, constructed per call so
// nothing is shared between accounts.
type accountRun struct {
	session  Session
	store    *Store
	progress Progress
	logger   *slog.Logger
	recorder RunRecorder

	records []*models.MessageRecord
	saved   int
	failed  int
}

// BackupAccount runs a full backup of one account into storageRoot. On
// success the account's cutoff date and cached secret are updated in place;
// the caller persists them. Only login-level failures are returned as
// errors; everything below is recovered with a diagnostic.
func (o *Orchestrator) BackupAccount(ctx context.Context, acct *models.Account, storageRoot string) (*models.RunSummary, error) {
	logger := o.Logger.With("account", acct.Username)

	password, err := o.resolveSecret(ctx, acct)
	if err != nil {
		return nil, err
	}

	addr := acct.Addr()
	if addr == "" {
		if o.Resolver == nil {
			return nil, fmt.Errorf("%w: no server configured for %s", ErrLogin, acct.Username)
		}
		addr, err = o.Resolver(acct.Username)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLogin, err)
		}
	}

	o.Progress.Report("Performing Login", 0)
	session, err := o.Login(addr, acct.Username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLogin, acct.Username, err)
	}
	defer session.Logout()
	o.Progress.Report("Performing Login", 100)

	folders, err := session.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("%w: list folders: %v", ErrLogin, err)
	}

	// Login succeeded: cache the secret in encoded form for persistence.
	if enc, err := o.Codec.Encode(password); err == nil {
		acct.PasswordEnc = enc
	}

	now := o.now()
	runRoot := filepath.Join(storageRoot, acct.Username, "backup_"+now.Format(backupDirLayout))

	// The whole directory tree is created up front, before any folder is
	// searched. A folder with nothing new still gets its (empty) directory.
	dirs := make([]string, len(folders))
	for i, folder := range folders {
		dirs[i] = filepath.Join(runRoot, FolderDirName(folder))
		if err := os.MkdirAll(dirs[i], 0755); err != nil {
			return nil, fmt.Errorf("failed to create folder directory: %w", err)
		}
	}
	o.Progress.Report("Folder Structure created", 20)

	run := &accountRun{
		session:  session,
		store:    NewStore(runRoot, logger),
		progress: o.Progress,
		logger:   logger,
	}
	if o.Catalog != nil {
		rec, err := o.Catalog.BeginRun(ctx, acct.Username, now)
		if err != nil {
			logger.Warn("catalog unavailable", "error", err)
		} else {
			run.recorder = rec
		}
	}

	cutoff, hasCutoff := acct.Cutoff()
	for i, folder := range folders {
		job := folderJob{
			index:     i + 1,
			total:     len(folders),
			name:      folder,
			dir:       dirs[i],
			cutoff:    cutoff,
			hasCutoff: hasCutoff,
		}
		if err := run.syncFolder(ctx, job); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Error("folder skipped", "folder", folder, "error", err)
		}
	}

	// One day of lag so messages whose server timestamp trails delivery are
	// still picked up by the next incremental run.
	acct.SetCutoff(now.AddDate(0, 0, -1))

	if o.Renderer != nil {
		o.Progress.Report("Creating Overview Html File", 50)
		if err := o.Renderer.Render(runRoot, acct.Username, now, run.records); err != nil {
			logger.Error("report render failed", "error", err)
		}
	}

	if run.recorder != nil {
		if err := run.recorder.Finish(ctx, run.saved, run.failed); err != nil {
			logger.Warn("catalog finish failed", "error", err)
		}
	}

	return &models.RunSummary{
		Account:   acct.Username,
		StartedAt: now,
		Folders:   len(folders),
		Saved:     run.saved,
		Failed:    run.failed,
	}, nil
}

// resolveSecret decodes the cached secret, or asks the credential provider
// until it supplies a non-empty one. A freshly supplied secret is cached on
// the account in encoded form.
func (o *Orchestrator) resolveSecret(ctx context.Context, acct *models.Account) (string, error) {
	if acct.PasswordEnc != "" {
		if pw, err := o.Codec.Decode(acct.PasswordEnc); err == nil {
			return pw, nil
		}
		o.Logger.Warn("cached secret cannot be decoded, requesting a new one", "account", acct.Username)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pw, err := o.Credentials.RequestSecret(ctx, acct.Username)
		if err != nil {
			return "", fmt.Errorf("%w: request secret: %v", ErrLogin, err)
		}
		if pw == "" {
			continue
		}
		if enc, err := o.Codec.Encode(pw); err == nil {
			acct.PasswordEnc = enc
		}
		return pw, nil
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

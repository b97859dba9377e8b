package backup

import (
	"context"
	"fmt"
	"log/slog"
)

// Runner iterates all configured accounts. One account's failure never stops
// the remaining accounts; only cancellation does.
type Runner struct {
	Config       ConfigStore
	Orchestrator *Orchestrator

	// StorageRoot is used when the resources file does not name one.
	StorageRoot string

	Notifier Notifier // optional
	Logger   *slog.Logger
}

func (r *Runner) Run(ctx context.Context) error {
	res, err := r.Config.Load()
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	root := res.StorageLocation
	if root == "" {
		root = r.StorageRoot
	}

	if len(res.Accounts) == 0 {
		r.Logger.Warn("no accounts configured")
		return nil
	}

	for _, acct := range res.Accounts {
		summary, err := r.Orchestrator.BackupAccount(ctx, acct, root)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.Logger.Error("account backup failed", "account", acct.Username, "error", err)
			continue
		}

		// Persist the updated cutoff and cached secret right away, so a
		// later account's failure cannot lose this one's state.
		if err := r.Config.Save(res); err != nil {
			r.Logger.Error("failed to persist account state", "error", err)
		}

		r.Logger.Info("account backup complete",
			"account", acct.Username,
			"folders", summary.Folders,
			"saved", summary.Saved,
			"failed", summary.Failed)

		if r.Notifier != nil {
			if err := r.Notifier.RunFinished(ctx, summary); err != nil {
				r.Logger.Warn("notification failed", "error", err)
			}
		}
	}

	return nil
}

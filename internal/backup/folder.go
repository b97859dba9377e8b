package backup

import (
	"context"
	"fmt"
	"time"
)

type folderJob struct {
	index int // 1-based position among all folders
	total int
	name  string
	dir   string

	cutoff    time.Time
	hasCutoff bool
}

// syncFolder backs up one folder. A failure to select the folder skips it;
// a failure on one message never aborts the rest of the folder.
func (r *accountRun) syncFolder(ctx context.Context, job folderJob) error {
	count, err := r.session.Select(job.name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFolderSelect, job.name, err)
	}

	var ids []uint32
	if job.hasCutoff {
		ids, err = r.session.SearchSince(job.cutoff)
		if err != nil {
			return fmt.Errorf("%w: %s: search: %v", ErrFolderSelect, job.name, err)
		}
		if len(ids) == 0 {
			// Nothing new since the cutoff.
			return nil
		}
	} else {
		// First-ever backup: every message in the folder.
		for i := uint32(1); i <= count; i++ {
			ids = append(ids, i)
		}
	}

	for pos, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, fetchErr := r.session.Fetch(id)

		status := "OK"
		if fetchErr != nil {
			status = "fetch failed"
		}
		r.progress.Report(
			fmt.Sprintf("(%d/%d) Folder: %s (%d/%d) - %s",
				job.index, job.total, job.name, pos+1, len(ids), status),
			(pos+1)*100/len(ids),
		)

		if fetchErr != nil {
			r.failed++
			r.logger.Error("failed to fetch mail",
				"id", id, "folder", job.name, "dir", job.dir,
				"error", fmt.Errorf("%w: %v", ErrFetch, fetchErr))
			continue
		}

		rec, err := r.store.Save(raw, job.dir, job.name)
		if err != nil {
			r.failed++
			r.logger.Error("failed to save mail",
				"id", id, "folder", job.name, "dir", job.dir, "error", err)
			continue
		}

		r.records = append(r.records, rec)
		r.saved++

		if r.recorder != nil {
			if err := r.recorder.Record(ctx, rec); err != nil {
				r.logger.Warn("catalog record failed", "error", err)
			}
		}
	}

	return nil
}

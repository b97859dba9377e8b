package backup

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"

	"github.com/robinFdr/MailBackup/internal/mailparse"
	"github.com/robinFdr/MailBackup/pkg/models"
)

const (
	recordDateLayout = "02.01.2006 15:04"
	dateUnavailable  = "Not available"
)

// Store writes raw messages into a run's directory tree and derives one
// MessageRecord per saved message. The raw bytes are written verbatim; the
// stored file is the archival artifact.
type Store struct {
	runRoot string
	logger  *slog.Logger
}

func NewStore(runRoot string, logger *slog.Logger) *Store {
	return &Store{runRoot: runRoot, logger: logger}
}

// Save writes raw into dir and returns the record for the new file. The
// file is only created after the message has been fully parsed, so a failed
// save never leaves partial content behind.
func (s *Store) Save(raw []byte, dir, folderName string) (*models.MessageRecord, error) {
	ent, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	subject, err := mailparse.DecodeHeader(ent.Header.Get("Subject"))
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", ErrStore, err)
	}
	from, err := mailparse.DecodeHeader(ent.Header.Get("From"))
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrStore, err)
	}
	to, err := mailparse.DecodeHeader(ent.Header.Get("To"))
	if err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrStore, err)
	}

	date, hasDate := headerDate(ent)
	attachments := mailparse.CountAttachments(ent)

	var fileDate time.Time
	if hasDate {
		fileDate = date
	}
	path := MessagePath(dir, fileDate, subject)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	rel, err := filepath.Rel(s.runRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	dateStr := dateUnavailable
	if hasDate {
		dateStr = date.Format(recordDateLayout)
	}

	// The classifier walk consumed the first entity; the snippet needs a
	// fresh parse. Best effort only.
	var snippet string
	if ent2, err := message.Read(bytes.NewReader(raw)); err == nil || message.IsUnknownCharset(err) {
		snippet = mailparse.Snippet(mailparse.Bodies(ent2))
	}

	return &models.MessageRecord{
		Folder:       folderName,
		FileLocation: "./" + filepath.ToSlash(rel),
		Subject:      subject,
		From:         from,
		To:           to,
		Date:         dateStr,
		Attachments:  attachments,
		Snippet:      snippet,
	}, nil
}

func headerDate(ent *message.Entity) (time.Time, bool) {
	if ent.Header.Get("Date") == "" {
		return time.Time{}, false
	}
	h := mail.Header{Header: ent.Header}
	t, err := h.Date()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

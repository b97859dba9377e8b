package models

import (
	"fmt"
	"time"
)

const cutoffLayout = "2006-01-02"

// Account represents one IMAP account from the resources file.
type Account struct {
	Username string `json:"username"`
	Server   string `json:"server,omitempty"`
	Port     int    `json:"port,omitempty"`

	// PasswordEnc holds the account secret in encoded form. It is never
	// written to disk in plaintext.
	PasswordEnc string `json:"password_enc,omitempty"`

	// LastBackupDate is the incremental cutoff (YYYY-MM-DD). Empty means
	// the account has never been backed up.
	LastBackupDate string `json:"lastBackupDate,omitempty"`
}

// Addr returns the host:port address of the configured IMAP server, or an
// empty string if no server is configured.
func (a *Account) Addr() string {
	if a.Server == "" {
		return ""
	}
	port := a.Port
	if port == 0 {
		port = 993
	}
	return fmt.Sprintf("%s:%d", a.Server, port)
}

// Cutoff parses the incremental cutoff date. An unset or malformed date is
// treated as "never backed up".
func (a *Account) Cutoff() (time.Time, bool) {
	if a.LastBackupDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(cutoffLayout, a.LastBackupDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetCutoff stores t as the new incremental cutoff date.
func (a *Account) SetCutoff(t time.Time) {
	a.LastBackupDate = t.Format(cutoffLayout)
}

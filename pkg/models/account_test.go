package models

import (
	"testing"
	"time"
)

func TestAccountAddr(t *testing.T) {
	tests := []struct {
		name string
		acct Account
		want string
	}{
		{"explicit port", Account{Server: "imap.example.org", Port: 1143}, "imap.example.org:1143"},
		{"default port", Account{Server: "imap.example.org"}, "imap.example.org:993"},
		{"no server", Account{Username: "a@example.org"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.acct.Addr(); got != test.want {
				t.Errorf("Addr() = %q; want %q", got, test.want)
			}
		})
	}
}

func TestAccountCutoff(t *testing.T) {
	var a Account
	if _, ok := a.Cutoff(); ok {
		t.Error("empty cutoff reported as set")
	}

	a.LastBackupDate = "bogus"
	if _, ok := a.Cutoff(); ok {
		t.Error("malformed cutoff reported as set")
	}

	a.SetCutoff(time.Date(2024, time.March, 14, 23, 59, 0, 0, time.UTC))
	if a.LastBackupDate != "2024-03-14" {
		t.Errorf("LastBackupDate = %q", a.LastBackupDate)
	}

	cutoff, ok := a.Cutoff()
	if !ok {
		t.Fatal("cutoff not set after SetCutoff")
	}
	if !cutoff.Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cutoff = %v", cutoff)
	}
}

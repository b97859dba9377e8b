package accounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robinFdr/MailBackup/pkg/models"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "resources.json")
	store := NewStore(path)

	res := &Resources{
		StorageLocation: "/data/backups",
		Accounts: []*models.Account{
			{
				Username:       "alice@example.org",
				Server:         "imap.example.org",
				Port:           993,
				PasswordEnc:    "c2VjcmV0",
				LastBackupDate: "2024-03-14",
			},
			{Username: "bob@example.org"},
		},
	}

	if err := store.Save(res); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.StorageLocation != res.StorageLocation {
		t.Errorf("storage location = %q", loaded.StorageLocation)
	}
	if len(loaded.Accounts) != 2 {
		t.Fatalf("accounts = %d; want 2", len(loaded.Accounts))
	}
	if *loaded.Accounts[0] != *res.Accounts[0] {
		t.Errorf("account = %+v; want %+v", loaded.Accounts[0], res.Accounts[0])
	}

	// Plaintext secrets must never hit the disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret") {
		t.Error("resources file contains a plaintext secret")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := store.Load(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStoreLoadLegacyFile(t *testing.T) {
	// Shape produced by earlier versions of the tool.
	legacy := `{
    "accounts": [
        {
            "password_enc": "c2VjcmV0",
            "port": 993,
            "server": "imap.example.org",
            "username": "alice@example.org"
        }
    ],
    "storageLocation": "D:/MailBackup"
}`
	path := filepath.Join(t.TempDir(), "resources.json")
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.StorageLocation != "D:/MailBackup" {
		t.Errorf("storage location = %q", res.StorageLocation)
	}
	if len(res.Accounts) != 1 || res.Accounts[0].Username != "alice@example.org" {
		t.Errorf("accounts = %+v", res.Accounts)
	}
	if _, ok := res.Accounts[0].Cutoff(); ok {
		t.Error("legacy account without lastBackupDate must read as never backed up")
	}
}

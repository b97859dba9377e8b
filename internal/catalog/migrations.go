package catalog

const schema = `
CREATE TABLE IF NOT EXISTS backup_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    finished_at DATETIME,
    saved INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS saved_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES backup_runs(id) ON DELETE CASCADE,
    folder TEXT NOT NULL,
    file_location TEXT NOT NULL,
    subject TEXT,
    from_addr TEXT,
    to_addr TEXT,
    date TEXT,
    attachments INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_account ON backup_runs(account);
CREATE INDEX IF NOT EXISTS idx_messages_run ON saved_messages(run_id);
`

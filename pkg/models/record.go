package models

import "time"

// MessageRecord is the summary of one saved message. Records are created
// once per successfully stored message and never mutated afterwards.
type MessageRecord struct {
	Folder       string `json:"folder"`
	FileLocation string `json:"fileLocation"` // relative to the run root, slash-separated
	Subject      string `json:"subject"`
	From         string `json:"from"`
	To           string `json:"to"`
	Date         string `json:"date"` // formatted, or "Not available"
	Attachments  int    `json:"attachments"`
	Snippet      string `json:"snippet,omitempty"`
}

// RunSummary describes the outcome of one account backup.
type RunSummary struct {
	Account   string
	StartedAt time.Time
	Folders   int
	Saved     int
	Failed    int
}

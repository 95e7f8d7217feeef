package evalindex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle tag mirrored from the full evaluation record.
type Status string

const (
	StatusPending         Status = "pending"
	StatusReviewRequested Status = "review_requested"
	StatusSubmitted       Status = "submitted"
	StatusApproved        Status = "approved"
	StatusDeleted         Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewRequested, StatusSubmitted, StatusApproved, StatusDeleted:
		return true
	}
	return false
}

// IndexEntry is one row of the shared index document: the metadata of a
// single broadcast evaluation submission. DropboxPath names the backing
// record and acts as the entry's stable key. The score fields are
// denormalized from the full record at the time of the last index update
// and may lag behind it.
type IndexEntry struct {
	EmployeeID  string   `json:"employeeId"`
	Name        string   `json:"name"`
	Language    string   `json:"language"`
	Category    string   `json:"category"`
	SubmittedAt string   `json:"submittedAt"`
	DropboxPath string   `json:"dropboxPath"`
	Status      Status   `json:"status"`
	Approved    bool     `json:"approved"`
	TotalScore  *float64 `json:"totalScore,omitempty"`
	Grade       string   `json:"grade,omitempty"`
	EvaluatedAt string   `json:"evaluatedAt,omitempty"`
	EvaluatedBy string   `json:"evaluatedBy,omitempty"`
}

// Validate rejects entries that would poison the index document.
func (e IndexEntry) Validate() error {
	if e.EmployeeID == "" {
		return fmt.Errorf("index entry: missing employeeId")
	}
	if e.DropboxPath == "" {
		return fmt.Errorf("index entry: missing dropboxPath")
	}
	if e.SubmittedAt == "" {
		return fmt.Errorf("index entry: missing submittedAt")
	}
	if _, err := time.Parse(time.RFC3339, e.SubmittedAt); err != nil {
		return fmt.Errorf("index entry: submittedAt is not RFC3339: %v", err)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("index entry: unknown status %q", e.Status)
	}
	return nil
}

// decodeEntries parses the index document body. Rows that fail to parse
// or validate are quarantined: hidden from the entry slice the workflow
// sees, but returned verbatim so writers carry them through unchanged
// instead of erasing them on the next encode.
func decodeEntries(data []byte) (entries []IndexEntry, quarantined []json.RawMessage, err error) {
	if len(data) == 0 {
		return nil, nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("index document is not a JSON array: %w", err)
	}

	entries = make([]IndexEntry, 0, len(raw))
	for _, item := range raw {
		var entry IndexEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			quarantined = append(quarantined, item)
			continue
		}
		if err := entry.Validate(); err != nil {
			quarantined = append(quarantined, item)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, quarantined, nil
}

// encodeEntries serializes the document with the quarantined raw rows
// spliced back at the tail. Malformed rows ride along untouched until an
// operator fixes or removes them by hand.
func encodeEntries(entries []IndexEntry, quarantined []json.RawMessage) ([]byte, error) {
	doc := make([]json.RawMessage, 0, len(entries)+len(quarantined))
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		doc = append(doc, raw)
	}
	doc = append(doc, quarantined...)
	return json.Marshal(doc)
}

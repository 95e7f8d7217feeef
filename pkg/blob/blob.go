package blob

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested path does not exist.
	ErrNotFound = errors.New("blob: not found")

	// ErrRevisionMismatch is returned by ConditionalOverwrite when the
	// file's current revision no longer matches the expected one.
	ErrRevisionMismatch = errors.New("blob: revision mismatch")
)

// Revision is an opaque version tag for a stored file. The zero value
// means "no revision observed" and, on a conditional write, "create the
// file only if it does not exist yet".
type Revision string

// Metadata describes a stored file after a write or move.
type Metadata struct {
	Path     string
	Revision Revision
	Size     int64
	Modified time.Time
}

// Store is the contract the evaluation workflow needs from a remote file
// backend. The production implementation talks to Dropbox; tests use the
// in-memory implementation.
type Store interface {
	// Download returns the file content at path, or ErrNotFound.
	Download(ctx context.Context, path string) ([]byte, error)

	// GetWithRevision returns the file content together with the revision
	// observed at read time, or ErrNotFound.
	GetWithRevision(ctx context.Context, path string) ([]byte, Revision, error)

	// ConditionalOverwrite replaces the file at path only if its current
	// revision still equals expected. A zero expected revision means the
	// write succeeds only if the file does not exist. Returns
	// ErrRevisionMismatch when another writer got there first.
	ConditionalOverwrite(ctx context.Context, path string, content []byte, expected Revision) (Revision, error)

	// Upload creates or replaces the file at path unconditionally.
	Upload(ctx context.Context, path string, content []byte) (*Metadata, error)

	// Move relocates a file. Fails with ErrNotFound if the source is gone.
	Move(ctx context.Context, fromPath, toPath string) (*Metadata, error)
}

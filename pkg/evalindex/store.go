package evalindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/pkg/blob"
)

var (
	// ErrWriteConflict is returned after the bounded OCC retries are
	// exhausted; the whole user action should be retried.
	ErrWriteConflict = errors.New("evalindex: write conflict, retries exhausted")

	// ErrEntryNotFound is returned by UpdateEntry with MustExist when no
	// entry matches the given path.
	ErrEntryNotFound = errors.New("evalindex: entry not found")

	// ErrStoreUnavailable wraps non-conflict blob store failures.
	ErrStoreUnavailable = errors.New("evalindex: store unavailable")
)

// maxAttempts bounds the read-mutate-conditional-write loop. Each retry
// re-reads the document; we never re-submit a stale payload.
const maxAttempts = 3

// Store provides read-modify-write access to the single shared index
// document. It holds no cache and takes no in-process lock: the deployment
// runs multiple stateless instances, so the only synchronization primitive
// is the blob store's conditional write.
type Store struct {
	blob      blob.Store
	indexPath string
	logger    logger.ILogger
}

func NewStore(blobStore blob.Store, indexPath string, log logger.ILogger) *Store {
	return &Store{
		blob:      blobStore,
		indexPath: indexPath,
		logger:    log,
	}
}

// ReadIndex downloads the index document. A missing document reads as an
// empty index with a zero revision, which a subsequent write treats as
// "create if absent".
func (s *Store) ReadIndex(ctx context.Context) ([]IndexEntry, blob.Revision, error) {
	entries, _, rev, err := s.readDocument(ctx)
	return entries, rev, err
}

// readDocument is ReadIndex plus the quarantined raw rows, which the
// write paths must carry through so no mutation physically deletes them.
func (s *Store) readDocument(ctx context.Context) ([]IndexEntry, []json.RawMessage, blob.Revision, error) {
	content, rev, err := s.blob.GetWithRevision(ctx, s.indexPath)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return []IndexEntry{}, nil, "", nil
		}
		return nil, nil, "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	entries, quarantined, err := decodeEntries(content)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(quarantined) > 0 {
		s.logger.Warn("EvalIndex", "Quarantined malformed index entries", map[string]interface{}{
			"count": len(quarantined),
			"path":  s.indexPath,
		})
	}
	return entries, quarantined, rev, nil
}

// AppendEntry adds a new submission at the tail of the document. Appends
// are never allowed to fall back to a lossy overwrite.
func (s *Store) AppendEntry(ctx context.Context, entry IndexEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	return s.mutateWithRetry(ctx, false, func(entries []IndexEntry) ([]IndexEntry, bool, error) {
		for _, existing := range entries {
			if existing.DropboxPath == entry.DropboxPath {
				return nil, false, fmt.Errorf("evalindex: duplicate dropboxPath %q", entry.DropboxPath)
			}
		}
		return append(entries, entry), true, nil
	})
}

// Mutator transforms the matched entry. It must be pure: on a conflict
// retry it runs again against a freshly read copy.
type Mutator func(IndexEntry) IndexEntry

type updateConfig struct {
	mustExist     bool
	lossyFallback bool
}

type UpdateOption func(*updateConfig)

// MustExist makes UpdateEntry fail with ErrEntryNotFound instead of
// treating a missing path as a successful no-op.
func MustExist() UpdateOption {
	return func(c *updateConfig) { c.mustExist = true }
}

// AllowLossyFallback permits an unconditional last-writer-wins overwrite
// once conflict retries are exhausted. Only low-stakes call sites (index
// mirror sync) opt in; the default stays OCC-safe.
func AllowLossyFallback() UpdateOption {
	return func(c *updateConfig) { c.lossyFallback = true }
}

// UpdateEntry locates the unique entry whose DropboxPath equals matchPath
// and replaces it with mutator(entry) under the same bounded retry loop as
// AppendEntry. By default a missing path is a no-op success, mirroring the
// best-effort index sync policy of the callers.
func (s *Store) UpdateEntry(ctx context.Context, matchPath string, mutator Mutator, opts ...UpdateOption) error {
	var cfg updateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return s.mutateWithRetry(ctx, cfg.lossyFallback, func(entries []IndexEntry) ([]IndexEntry, bool, error) {
		for i, entry := range entries {
			if entry.DropboxPath == matchPath {
				updated := mutator(entry)
				// SubmittedAt is set once at creation and never moves.
				updated.SubmittedAt = entry.SubmittedAt
				if err := updated.Validate(); err != nil {
					return nil, false, err
				}
				if updated.DropboxPath != matchPath {
					for j, other := range entries {
						if j != i && other.DropboxPath == updated.DropboxPath {
							return nil, false, fmt.Errorf("evalindex: duplicate dropboxPath %q", updated.DropboxPath)
						}
					}
				}
				entries[i] = updated
				return entries, true, nil
			}
		}
		if cfg.mustExist {
			return nil, false, ErrEntryNotFound
		}
		return nil, false, nil
	})
}

// QueryByEmployee is a pure filter over a fresh read; nothing is cached
// between calls.
func (s *Store) QueryByEmployee(ctx context.Context, employeeID string) ([]IndexEntry, error) {
	entries, _, err := s.ReadIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]IndexEntry, 0)
	for _, entry := range entries {
		if entry.EmployeeID == employeeID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// mutateWithRetry is the shared read-mutate-conditional-write combinator.
// mutate returns the new document, whether anything changed, and an error;
// a "nothing changed" result short-circuits as success without a write.
func (s *Store) mutateWithRetry(ctx context.Context, lossyFallback bool, mutate func([]IndexEntry) ([]IndexEntry, bool, error)) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		entries, quarantined, rev, err := s.readDocument(ctx)
		if err != nil {
			return err
		}

		updated, changed, err := mutate(entries)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		content, err := encodeEntries(updated, quarantined)
		if err != nil {
			return fmt.Errorf("evalindex: encode index: %w", err)
		}

		_, err = s.blob.ConditionalOverwrite(ctx, s.indexPath, content, rev)
		if err == nil {
			return nil
		}
		if !errors.Is(err, blob.ErrRevisionMismatch) {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		s.logger.Warn("EvalIndex", "Conditional write conflict, retrying from fresh read", map[string]interface{}{
			"attempt": attempt,
			"path":    s.indexPath,
		})
	}

	if lossyFallback {
		return s.overwriteUnconditionally(ctx, mutate)
	}
	return ErrWriteConflict
}

// overwriteUnconditionally is the explicit availability-over-correctness
// escape hatch: one final fresh read, then a plain upload that wins over
// whatever raced us.
func (s *Store) overwriteUnconditionally(ctx context.Context, mutate func([]IndexEntry) ([]IndexEntry, bool, error)) error {
	entries, quarantined, _, err := s.readDocument(ctx)
	if err != nil {
		return err
	}

	updated, changed, err := mutate(entries)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	content, err := encodeEntries(updated, quarantined)
	if err != nil {
		return fmt.Errorf("evalindex: encode index: %w", err)
	}

	s.logger.Warn("EvalIndex", "Falling back to unconditional overwrite", map[string]interface{}{
		"path": s.indexPath,
	})

	if _, err := s.blob.Upload(ctx, s.indexPath, content); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

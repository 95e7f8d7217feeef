package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"broadcast-eval-be/pkg/blob"
)

type object struct {
	content  []byte
	revision blob.Revision
	modified time.Time
}

// Store is an in-memory blob.Store used by tests and local development.
// Revisions are a per-store monotonic counter, which is enough to make
// conditional writes behave like the real backend: any committed write
// changes the revision, so a stale writer is always rejected.
type Store struct {
	mu      sync.Mutex
	objects map[string]*object
	seq     int64
}

func NewStore() *Store {
	return &Store{
		objects: make(map[string]*object),
	}
}

func (s *Store) nextRevision() blob.Revision {
	s.seq++
	return blob.Revision(fmt.Sprintf("rev-%d", s.seq))
}

func (s *Store) Download(ctx context.Context, path string) ([]byte, error) {
	content, _, err := s.GetWithRevision(ctx, path)
	return content, err
}

func (s *Store) GetWithRevision(ctx context.Context, path string) ([]byte, blob.Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[path]
	if !ok {
		return nil, "", blob.ErrNotFound
	}

	content := make([]byte, len(obj.content))
	copy(content, obj.content)
	return content, obj.revision, nil
}

func (s *Store) ConditionalOverwrite(ctx context.Context, path string, content []byte, expected blob.Revision) (blob.Revision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.objects[path]
	if expected == "" {
		if exists {
			return "", blob.ErrRevisionMismatch
		}
	} else {
		if !exists || obj.revision != expected {
			return "", blob.ErrRevisionMismatch
		}
	}

	stored := make([]byte, len(content))
	copy(stored, content)

	rev := s.nextRevision()
	s.objects[path] = &object{
		content:  stored,
		revision: rev,
		modified: time.Now(),
	}
	return rev, nil
}

func (s *Store) Upload(ctx context.Context, path string, content []byte) (*blob.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(content))
	copy(stored, content)

	rev := s.nextRevision()
	now := time.Now()
	s.objects[path] = &object{
		content:  stored,
		revision: rev,
		modified: now,
	}

	return &blob.Metadata{
		Path:     path,
		Revision: rev,
		Size:     int64(len(stored)),
		Modified: now,
	}, nil
}

func (s *Store) Move(ctx context.Context, fromPath, toPath string) (*blob.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[fromPath]
	if !ok {
		return nil, blob.ErrNotFound
	}

	delete(s.objects, fromPath)

	rev := s.nextRevision()
	now := time.Now()
	s.objects[toPath] = &object{
		content:  obj.content,
		revision: rev,
		modified: now,
	}

	return &blob.Metadata{
		Path:     toPath,
		Revision: rev,
		Size:     int64(len(obj.content)),
		Modified: now,
	}, nil
}

// Exists reports whether a path currently holds an object. Test helper.
func (s *Store) Exists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

package evalindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/blob/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndexPath = "/evaluations/index.json"

func newTestStore(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	return NewStore(mem, testIndexPath, logger.NewNopLogger()), mem
}

func testEntry(employeeID, path string) IndexEntry {
	return IndexEntry{
		EmployeeID:  employeeID,
		Name:        "Test Crew",
		Language:    "korean",
		Category:    "international",
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		DropboxPath: path,
		Status:      StatusPending,
	}
}

// contendingStore wraps the memory store and runs a hook right before each
// conditional write, simulating an external writer racing the subject.
type contendingStore struct {
	*memory.Store
	mu       sync.Mutex
	attempts int
	before   func(attempt int)
}

func (c *contendingStore) ConditionalOverwrite(ctx context.Context, path string, content []byte, expected blob.Revision) (blob.Revision, error) {
	c.mu.Lock()
	c.attempts++
	attempt := c.attempts
	c.mu.Unlock()

	if c.before != nil {
		c.before(attempt)
	}
	return c.Store.ConditionalOverwrite(ctx, path, content, expected)
}

func TestReadIndexEmptyStore(t *testing.T) {
	store, _ := newTestStore(t)

	entries, rev, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, blob.Revision(""), rev)
}

func TestAppendEntryCreatesDocument(t *testing.T) {
	store, mem := newTestStore(t)

	entry := testEntry("CA001", "/evaluations/pending/e1.json")
	require.NoError(t, store.AppendEntry(context.Background(), entry))

	assert.True(t, mem.Exists(testIndexPath))

	entries, rev, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CA001", entries[0].EmployeeID)
	assert.NotEqual(t, blob.Revision(""), rev)
}

func TestAppendEntryRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	entry := testEntry("CA001", "/e1.json")
	entry.SubmittedAt = "yesterday"
	assert.Error(t, store.AppendEntry(context.Background(), entry))

	entry = testEntry("", "/e1.json")
	assert.Error(t, store.AppendEntry(context.Background(), entry))
}

func TestAppendEntryRejectsDuplicatePath(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/e1.json")))
	err := store.AppendEntry(ctx, testEntry("CA002", "/e1.json"))
	assert.ErrorContains(t, err, "duplicate dropboxPath")
}

// Two concurrent appends: B lands between A's read and A's write. A must
// detect the conflict, re-read and land behind B.
func TestConcurrentAppendRetriesFromFreshRead(t *testing.T) {
	mem := memory.NewStore()
	contended := &contendingStore{Store: mem}
	storeA := NewStore(contended, testIndexPath, logger.NewNopLogger())
	storeB := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	contended.before = func(attempt int) {
		if attempt == 1 {
			require.NoError(t, storeB.AppendEntry(ctx, testEntry("CA-B", "/pending/b.json")))
		}
	}

	require.NoError(t, storeA.AppendEntry(ctx, testEntry("CA-A", "/pending/a.json")))

	entries, _, err := storeA.ReadIndex(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CA-B", entries[0].EmployeeID)
	assert.Equal(t, "CA-A", entries[1].EmployeeID)

	// Query isolation: B's view is unaffected by A's entry.
	mine, err := storeB.QueryByEmployee(ctx, "CA-B")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "/pending/b.json", mine[0].DropboxPath)
}

// A stale conditional write must never silently succeed.
func TestConflictDetection(t *testing.T) {
	mem := memory.NewStore()
	ctx := context.Background()

	revA, err := mem.ConditionalOverwrite(ctx, testIndexPath, []byte(`[]`), "")
	require.NoError(t, err)

	// B commits on top of revA.
	_, err = mem.ConditionalOverwrite(ctx, testIndexPath, []byte(`[{"x":1}]`), revA)
	require.NoError(t, err)

	// A's write at the old revision must fail.
	_, err = mem.ConditionalOverwrite(ctx, testIndexPath, []byte(`[{"y":2}]`), revA)
	assert.ErrorIs(t, err, blob.ErrRevisionMismatch)
}

// Fewer true conflicts than attempts: the operation converges on its own.
func TestRetryConvergence(t *testing.T) {
	mem := memory.NewStore()
	contended := &contendingStore{Store: mem}
	store := NewStore(contended, testIndexPath, logger.NewNopLogger())
	external := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	contended.before = func(attempt int) {
		if attempt <= 2 {
			path := fmt.Sprintf("/pending/ext-%d.json", attempt)
			require.NoError(t, external.AppendEntry(ctx, testEntry("EXT", path)))
		}
	}

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/pending/mine.json")))

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

// An external writer winning every race exhausts the three attempts.
func TestRetryExhaustionSurfacesConflict(t *testing.T) {
	mem := memory.NewStore()
	contended := &contendingStore{Store: mem}
	store := NewStore(contended, testIndexPath, logger.NewNopLogger())
	external := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	contended.before = func(attempt int) {
		path := fmt.Sprintf("/pending/ext-%d.json", attempt)
		require.NoError(t, external.AppendEntry(ctx, testEntry("EXT", path)))
	}

	err := store.AppendEntry(ctx, testEntry("CA001", "/pending/mine.json"))
	assert.ErrorIs(t, err, ErrWriteConflict)
	assert.Equal(t, 3, contended.attempts)

	// The subject's entry never landed; the external writers' entries did.
	entries, _, rerr := external.ReadIndex(ctx)
	require.NoError(t, rerr)
	assert.Len(t, entries, 3)
}

// The final document contains exactly the union of successful appends.
func TestNoLostUpdatesUnderConcurrency(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	succeeded := make([]bool, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/pending/e%d.json", i)
			err := store.AppendEntry(ctx, testEntry(fmt.Sprintf("CA%03d", i), path))
			if err == nil {
				succeeded[i] = true
			} else {
				assert.ErrorIs(t, err, ErrWriteConflict)
			}
		}(i)
	}
	wg.Wait()

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, entry := range entries {
		seen[entry.DropboxPath]++
	}

	for i := 0; i < writers; i++ {
		path := fmt.Sprintf("/pending/e%d.json", i)
		if succeeded[i] {
			assert.Equal(t, 1, seen[path], "successful append %d must appear exactly once", i)
		} else {
			assert.Zero(t, seen[path], "failed append %d must not appear", i)
		}
	}
	assert.Len(t, entries, len(seen))
}

// Path and status move together in one conditional write.
func TestUpdateEntryAtomicRelocation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/e1.json")))

	err := store.UpdateEntry(ctx, "/e1.json", func(e IndexEntry) IndexEntry {
		e.DropboxPath = "/completed/e1.json"
		e.Status = StatusSubmitted
		return e
	})
	require.NoError(t, err)

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/completed/e1.json", entries[0].DropboxPath)
	assert.Equal(t, StatusSubmitted, entries[0].Status)
}

func TestUpdateEntryPreservesSubmittedAt(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	entry := testEntry("CA001", "/e1.json")
	require.NoError(t, store.AppendEntry(ctx, entry))

	err := store.UpdateEntry(ctx, "/e1.json", func(e IndexEntry) IndexEntry {
		e.SubmittedAt = time.Now().Add(time.Hour).Format(time.RFC3339)
		e.Status = StatusSubmitted
		return e
	})
	require.NoError(t, err)

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.SubmittedAt, entries[0].SubmittedAt)
}

// Default policy: updating an absent path is a no-op success and the
// document bytes stay untouched.
func TestUpdateEntryMissingPathIsNoop(t *testing.T) {
	store, mem := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/e1.json")))
	before, revBefore, err := mem.GetWithRevision(ctx, testIndexPath)
	require.NoError(t, err)

	err = store.UpdateEntry(ctx, "/nope.json", func(e IndexEntry) IndexEntry {
		e.Status = StatusApproved
		return e
	})
	require.NoError(t, err)

	after, revAfter, err := mem.GetWithRevision(ctx, testIndexPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, revBefore, revAfter)
}

func TestUpdateEntryMustExist(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateEntry(ctx, "/nope.json", func(e IndexEntry) IndexEntry {
		return e
	}, MustExist())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestUpdateEntryLossyFallback(t *testing.T) {
	mem := memory.NewStore()
	seeded := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()
	require.NoError(t, seeded.AppendEntry(ctx, testEntry("CA001", "/e1.json")))

	contended := &contendingStore{Store: mem}
	external := NewStore(mem, testIndexPath, logger.NewNopLogger())
	store := NewStore(contended, testIndexPath, logger.NewNopLogger())

	// Every conditional attempt loses the race.
	contended.before = func(attempt int) {
		path := fmt.Sprintf("/pending/ext-%d.json", attempt)
		require.NoError(t, external.AppendEntry(ctx, testEntry("EXT", path)))
	}

	mutate := func(e IndexEntry) IndexEntry {
		e.Status = StatusApproved
		e.Approved = true
		return e
	}

	// Without the fallback the conflict surfaces.
	err := store.UpdateEntry(ctx, "/e1.json", mutate)
	require.ErrorIs(t, err, ErrWriteConflict)

	// With the fallback the final fresh read wins unconditionally.
	require.NoError(t, store.UpdateEntry(ctx, "/e1.json", mutate, AllowLossyFallback()))

	entries, _, err := external.ReadIndex(ctx)
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.DropboxPath == "/e1.json" {
			assert.True(t, entry.Approved)
			assert.Equal(t, StatusApproved, entry.Status)
			return
		}
	}
	t.Fatal("updated entry missing from document")
}

func TestQueryByEmployeeFiltersWithoutMutation(t *testing.T) {
	store, mem := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/e1.json")))
	require.NoError(t, store.AppendEntry(ctx, testEntry("CA002", "/e2.json")))
	e3 := testEntry("CA001", "/e3.json")
	require.NoError(t, store.AppendEntry(ctx, e3))

	before, _, err := mem.GetWithRevision(ctx, testIndexPath)
	require.NoError(t, err)

	mine, err := store.QueryByEmployee(ctx, "CA001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "/e1.json", mine[0].DropboxPath)
	assert.Equal(t, "/e3.json", mine[1].DropboxPath)

	after, _, err := mem.GetWithRevision(ctx, testIndexPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	none, err := store.QueryByEmployee(ctx, "CA999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadIndexQuarantinesMalformedEntries(t *testing.T) {
	mem := memory.NewStore()
	store := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	good := testEntry("CA001", "/e1.json")
	goodJSON, err := json.Marshal(good)
	require.NoError(t, err)

	doc := fmt.Sprintf(`[%s, {"employeeId":"CA002"}, {"bogus":true}, 42]`, goodJSON)
	_, err = mem.Upload(ctx, testIndexPath, []byte(doc))
	require.NoError(t, err)

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CA001", entries[0].EmployeeID)
}

// A malformed row must survive unrelated writes byte for byte: quarantine
// hides it from readers, it never removes it from the document.
func TestWritesPreserveQuarantinedRows(t *testing.T) {
	mem := memory.NewStore()
	store := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	good := testEntry("CA001", "/e1.json")
	goodJSON, err := json.Marshal(good)
	require.NoError(t, err)

	legacy := `{"employeeId":"CA-LEGACY","dropboxPath":"/legacy.json","status":"archived"}`
	doc := fmt.Sprintf(`[%s, %s]`, goodJSON, legacy)
	_, err = mem.Upload(ctx, testIndexPath, []byte(doc))
	require.NoError(t, err)

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA002", "/e2.json")))
	require.NoError(t, store.UpdateEntry(ctx, "/e1.json", func(e IndexEntry) IndexEntry {
		e.Status = StatusReviewRequested
		return e
	}, MustExist()))

	content, _, err := mem.GetWithRevision(ctx, testIndexPath)
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &rows))
	require.Len(t, rows, 3)

	found := false
	for _, row := range rows {
		if row["employeeId"] == "CA-LEGACY" {
			found = true
			assert.Equal(t, "archived", row["status"])
			assert.Equal(t, "/legacy.json", row["dropboxPath"])
		}
	}
	assert.True(t, found, "legacy row must survive unrelated writes")

	// Readers still only see the well-formed entries.
	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdateEntryRejectsCollidingRename(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, testEntry("CA001", "/e1.json")))
	require.NoError(t, store.AppendEntry(ctx, testEntry("CA002", "/e2.json")))

	err := store.UpdateEntry(ctx, "/e1.json", func(e IndexEntry) IndexEntry {
		e.DropboxPath = "/e2.json"
		return e
	}, MustExist())
	assert.ErrorContains(t, err, "duplicate dropboxPath")

	entries, _, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/e1.json", entries[0].DropboxPath)
	assert.Equal(t, "/e2.json", entries[1].DropboxPath)
}

func TestReadIndexRejectsNonArrayDocument(t *testing.T) {
	mem := memory.NewStore()
	store := NewStore(mem, testIndexPath, logger.NewNopLogger())
	ctx := context.Background()

	_, err := mem.Upload(ctx, testIndexPath, []byte(`{"entries": []}`))
	require.NoError(t, err)

	_, _, err = store.ReadIndex(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestOperationsHonorContextCancellation(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.AppendEntry(ctx, testEntry("CA001", "/e1.json"))
	assert.Error(t, err)
}

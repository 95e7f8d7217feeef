package service

import (
	"context"
	"encoding/json"
	"testing"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/pkg/logger"
	blobMemory "broadcast-eval-be/pkg/blob/memory"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct{}

func (stubMailer) SendSubmissionNotice(toEmails []string, candidateName, language, category string) error {
	return nil
}

func (stubMailer) SendApprovalNotice(toEmail, candidateName, grade string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Dropbox: config.DropboxConfig{
			IndexPath:    "/evaluations/index.json",
			PendingDir:   "/evaluations/pending",
			CompletedDir: "/evaluations/completed",
			TrashDir:     "/evaluations/trash",
			RecordingDir: "/recordings",
		},
	}
}

func newTestEvaluationService(t *testing.T) (IEvaluationService, *blobMemory.Store, *evalindex.Store) {
	t.Helper()

	blobStore := blobMemory.NewStore()
	cfg := testConfig()
	index := evalindex.NewStore(blobStore, cfg.Dropbox.IndexPath, logger.NewNopLogger())

	svc := NewEvaluationService(blobStore, index, nil, nil, nil, stubMailer{}, cfg, logger.NewNopLogger())
	return svc, blobStore, index
}

func submitOne(t *testing.T, svc IEvaluationService) *dto.SubmitEvaluationResponse {
	t.Helper()

	res, err := svc.Submit(context.Background(), "CA1234", "Kim Jiyoon", &dto.SubmitEvaluationRequest{
		Language: "english",
		Category: "international",
		Script:   "Ladies and gentlemen, welcome aboard.",
	})
	require.NoError(t, err)
	return res
}

func TestSubmitCreatesRecordAndIndexEntry(t *testing.T) {
	svc, blobStore, index := newTestEvaluationService(t)

	res := submitOne(t, svc)

	assert.True(t, res.IndexSynced)
	assert.NotEmpty(t, res.SubmittedAt)
	assert.Contains(t, res.DropboxPath, "/evaluations/pending/CA1234_english_")

	content, err := blobStore.Download(context.Background(), res.DropboxPath)
	require.NoError(t, err)

	var record entity.EvaluationRecord
	require.NoError(t, json.Unmarshal(content, &record))
	assert.Equal(t, "CA1234", record.EmployeeID)
	assert.Equal(t, "pending", record.Status)

	entries, _, err := index.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, res.DropboxPath, entries[0].DropboxPath)
	assert.Equal(t, evalindex.StatusPending, entries[0].Status)
}

func TestSubmitRejectsUnknownLanguage(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)

	_, err := svc.Submit(context.Background(), "CA1234", "Kim Jiyoon", &dto.SubmitEvaluationRequest{
		Language: "klingon",
		Category: "international",
		Script:   "nuqneH",
	})
	assert.Error(t, err)
}

func TestRequestReviewRequiresOwnership(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.RequestReview(context.Background(), "CA9999", res.DropboxPath)
	assert.Error(t, err)

	out, err := svc.RequestReview(context.Background(), "CA1234", res.DropboxPath)
	require.NoError(t, err)
	assert.Equal(t, "review_requested", out.Status)
}

func TestFinalizeRelocatesRecordAndEntryTogether(t *testing.T) {
	svc, blobStore, index := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.RequestReview(context.Background(), "CA1234", res.DropboxPath)
	require.NoError(t, err)

	_, err = svc.SaveScores(context.Background(), "INST01", res.DropboxPath, &dto.SaveScoresRequest{
		Scores:     map[string]float64{"pronunciation": 4.5, "pacing": 4.0},
		TotalScore: 8.5,
		Grade:      "A",
	})
	require.NoError(t, err)

	out, err := svc.Finalize(context.Background(), "INST01", res.DropboxPath)
	require.NoError(t, err)
	assert.Equal(t, "submitted", out.Status)
	assert.Contains(t, out.DropboxPath, "/evaluations/completed/")

	// The old path holds nothing anymore; the index points at the new one
	// with the new status.
	assert.False(t, blobStore.Exists(res.DropboxPath))
	entries, _, err := index.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, out.DropboxPath, entries[0].DropboxPath)
	assert.Equal(t, evalindex.StatusSubmitted, entries[0].Status)
	require.NotNil(t, entries[0].TotalScore)
	assert.Equal(t, 8.5, *entries[0].TotalScore)
}

func TestFinalizeRefusesUnscoredRecord(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.Finalize(context.Background(), "INST01", res.DropboxPath)
	assert.Error(t, err)
}

func TestApproveRequiresFinalizedRecord(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.Approve(context.Background(), "INST01", res.DropboxPath, &dto.ApproveEvaluationRequest{
		TotalScore: 9.0,
		Grade:      "A",
	})
	assert.Error(t, err)
}

func TestApproveMarksEntryApproved(t *testing.T) {
	svc, _, index := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.SaveScores(context.Background(), "INST01", res.DropboxPath, &dto.SaveScoresRequest{
		Scores:     map[string]float64{"clarity": 4.2},
		TotalScore: 4.2,
		Grade:      "B",
	})
	require.NoError(t, err)

	finalized, err := svc.Finalize(context.Background(), "INST01", res.DropboxPath)
	require.NoError(t, err)

	out, err := svc.Approve(context.Background(), "INST01", finalized.DropboxPath, &dto.ApproveEvaluationRequest{
		TotalScore: 4.2,
		Grade:      "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)

	entries, _, err := index.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Approved)
	assert.Equal(t, "INST01", entries[0].EvaluatedBy)
}

func TestReevaluateSendsRecordBackToPending(t *testing.T) {
	svc, _, index := newTestEvaluationService(t)
	res := submitOne(t, svc)

	_, err := svc.SaveScores(context.Background(), "INST01", res.DropboxPath, &dto.SaveScoresRequest{
		Scores:     map[string]float64{"clarity": 3.0},
		TotalScore: 3.0,
		Grade:      "C",
	})
	require.NoError(t, err)

	finalized, err := svc.Finalize(context.Background(), "INST01", res.DropboxPath)
	require.NoError(t, err)

	out, err := svc.Reevaluate(context.Background(), finalized.DropboxPath)
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Contains(t, out.DropboxPath, "/evaluations/pending/")

	entries, _, err := index.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, evalindex.StatusPending, entries[0].Status)
	assert.False(t, entries[0].Approved)
}

func TestDeleteTrashesRecordAndMarksEntry(t *testing.T) {
	svc, blobStore, index := newTestEvaluationService(t)
	res := submitOne(t, svc)

	out, err := svc.Delete(context.Background(), res.DropboxPath)
	require.NoError(t, err)
	assert.Equal(t, "deleted", out.Status)
	assert.Contains(t, out.DropboxPath, "/evaluations/trash/")

	assert.False(t, blobStore.Exists(res.DropboxPath))
	assert.True(t, blobStore.Exists(out.DropboxPath))

	entries, _, err := index.ReadIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, evalindex.StatusDeleted, entries[0].Status)
	assert.Equal(t, out.DropboxPath, entries[0].DropboxPath)

	// Deleted submissions stay out of the candidate's own list.
	mine, err := svc.Mine(context.Background(), "CA1234")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestListPendingLoadsFullRecords(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)
	submitOne(t, svc)

	_, err := svc.Submit(context.Background(), "CA5678", "Lee Minho", &dto.SubmitEvaluationRequest{
		Language: "korean",
		Category: "emergency",
		Script:   "안내 말씀 드리겠습니다.",
	})
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.NotEmpty(t, pending[0].Script)

	completed, err := svc.ListCompleted(context.Background())
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestLoadRecordReturnsFullDocument(t *testing.T) {
	svc, _, _ := newTestEvaluationService(t)
	res := submitOne(t, svc)

	record, err := svc.LoadRecord(context.Background(), res.DropboxPath)
	require.NoError(t, err)
	assert.Equal(t, "CA1234", record.EmployeeID)
	assert.Equal(t, "Ladies and gentlemen, welcome aboard.", record.Script)
}

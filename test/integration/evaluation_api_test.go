package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/controller"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"
	blobMemory "broadcast-eval-be/pkg/blob/memory"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJwtSecret = "integration-test-secret"

type noopMailer struct{}

func (noopMailer) SendSubmissionNotice(toEmails []string, candidateName, language, category string) error {
	return nil
}

func (noopMailer) SendApprovalNotice(toEmail, candidateName, grade string) error {
	return nil
}

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJwtSecret)

	cfg := &config.Config{
		Dropbox: config.DropboxConfig{
			IndexPath:    "/evaluations/index.json",
			PendingDir:   "/evaluations/pending",
			CompletedDir: "/evaluations/completed",
			TrashDir:     "/evaluations/trash",
		},
	}

	blobStore := blobMemory.NewStore()
	index := evalindex.NewStore(blobStore, cfg.Dropbox.IndexPath, logger.NewNopLogger())
	evalService := service.NewEvaluationService(blobStore, index, nil, nil, nil, noopMailer{}, cfg, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	controller.NewEvaluationController(evalService).RegisterRoutes(api)

	return app
}

func signToken(t *testing.T, employeeID, name, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"name":        name,
		"role":        role,
		"exp":         time.Now().Add(time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func submitEvaluation(t *testing.T, app *fiber.App, token string) string {
	t.Helper()

	resp, envelope := doRequest(t, app, http.MethodPost, "/api/evaluation/v1", token,
		`{"language":"english","category":"international","script":"Welcome aboard flight 123."}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	path := data["dropbox_path"].(string)
	require.NotEmpty(t, path)
	return path
}

func TestEvaluationRoutesRequireToken(t *testing.T) {
	app := buildTestApp(t)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/evaluation/v1/mine", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestSubmitAndListOwnEvaluations(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")

	path := submitEvaluation(t, app, candidate)
	assert.Contains(t, path, "/evaluations/pending/CA1234_english_")

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/evaluation/v1/mine", candidate, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])

	items := envelope["data"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "CA1234", item["employee_id"])
	assert.Equal(t, "pending", item["status"])
}

func TestSubmitRejectsInvalidBody(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")

	resp, envelope := doRequest(t, app, http.MethodPost, "/api/evaluation/v1", candidate,
		`{"language":"english"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["error"])
}

func TestCandidateCannotReachReviewerRoutes(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/evaluation/v1/pending", candidate, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestReviewWorkflowOverHTTP(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")
	instructor := signToken(t, "INST01", "Park Sooyoung", "instructor")

	path := submitEvaluation(t, app, candidate)
	escaped := url.QueryEscape(path)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/evaluation/v1/request-review?path="+escaped, candidate, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/evaluation/v1/pending", instructor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := envelope["data"].([]interface{})
	require.Len(t, records, 1)

	resp, _ = doRequest(t, app, http.MethodPut, "/api/evaluation/v1/scores?path="+escaped, instructor,
		`{"scores":{"pronunciation":4.5,"pacing":4.0},"total_score":8.5,"grade":"A"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope = doRequest(t, app, http.MethodPost, "/api/evaluation/v1/finalize?path="+escaped, instructor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	finalized := envelope["data"].(map[string]interface{})
	assert.Equal(t, "submitted", finalized["status"])
	completedPath := finalized["dropbox_path"].(string)
	assert.Contains(t, completedPath, "/evaluations/completed/")

	resp, envelope = doRequest(t, app, http.MethodPost, "/api/evaluation/v1/approve?path="+url.QueryEscape(completedPath), instructor,
		`{"total_score":8.5,"grade":"A"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := envelope["data"].(map[string]interface{})
	assert.Equal(t, "approved", approved["status"])

	resp, envelope = doRequest(t, app, http.MethodGet, "/api/evaluation/v1/completed", instructor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := envelope["data"].([]interface{})
	require.Len(t, completed, 1)
	assert.Equal(t, true, completed[0].(map[string]interface{})["approved"])
}

func TestFinalizeUnscoredRecordReturnsBadRequest(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")
	instructor := signToken(t, "INST01", "Park Sooyoung", "instructor")

	path := submitEvaluation(t, app, candidate)

	resp, envelope := doRequest(t, app, http.MethodPost,
		"/api/evaluation/v1/finalize?path="+url.QueryEscape(path), instructor, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestShowRecordUnknownPathReturnsNotFound(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")

	resp, envelope := doRequest(t, app, http.MethodGet,
		"/api/evaluation/v1/record?path="+url.QueryEscape("/evaluations/pending/nope.json"), candidate, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestDeleteMarksEntryDeletedOverHTTP(t *testing.T) {
	app := buildTestApp(t)
	candidate := signToken(t, "CA1234", "Kim Jiyoon", "candidate")
	admin := signToken(t, "ADM01", "Choi Haneul", "admin")

	path := submitEvaluation(t, app, candidate)

	resp, envelope := doRequest(t, app, http.MethodDelete,
		"/api/evaluation/v1?path="+url.QueryEscape(path), admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "deleted", data["status"])
	assert.Contains(t, data["dropbox_path"], "/evaluations/trash/")

	resp, envelope = doRequest(t, app, http.MethodGet, "/api/evaluation/v1/mine", candidate, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, envelope["data"])
}

package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"broadcast-eval-be/pkg/blob"
)

const (
	contentURL = "https://content.dropboxapi.com/2"
	rpcURL     = "https://api.dropboxapi.com/2"
)

// Client implements blob.Store against the Dropbox HTTP API v2.
type Client struct {
	token      string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type fileMetadata struct {
	PathDisplay    string    `json:"path_display"`
	Rev            string    `json:"rev"`
	Size           int64     `json:"size"`
	ServerModified time.Time `json:"server_modified"`
}

type apiError struct {
	ErrorSummary string `json:"error_summary"`
}

func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	content, _, err := c.GetWithRevision(ctx, path)
	return content, err
}

func (c *Client) GetWithRevision(ctx context.Context, path string) ([]byte, blob.Revision, error) {
	arg, _ := json.Marshal(map[string]string{"path": path})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, contentURL+"/files/download", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Dropbox-API-Arg", string(arg))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("dropbox download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", c.mapError(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("dropbox download read failed: %w", err)
	}

	// Metadata rides in a response header on content endpoints.
	var meta fileMetadata
	if raw := resp.Header.Get("Dropbox-API-Result"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return nil, "", fmt.Errorf("dropbox metadata parse failed: %w", err)
		}
	}

	return content, blob.Revision(meta.Rev), nil
}

func (c *Client) ConditionalOverwrite(ctx context.Context, path string, content []byte, expected blob.Revision) (blob.Revision, error) {
	// mode "add" creates only; mode "update" requires the current rev to
	// still match, which is the compare-and-swap the index store relies on.
	var mode interface{}
	if expected == "" {
		mode = "add"
	} else {
		mode = map[string]string{".tag": "update", "update": string(expected)}
	}

	meta, err := c.upload(ctx, path, content, mode)
	if err != nil {
		return "", err
	}
	return blob.Revision(meta.Rev), nil
}

func (c *Client) Upload(ctx context.Context, path string, content []byte) (*blob.Metadata, error) {
	meta, err := c.upload(ctx, path, content, "overwrite")
	if err != nil {
		return nil, err
	}
	return toBlobMetadata(meta), nil
}

func (c *Client) upload(ctx context.Context, path string, content []byte, mode interface{}) (*fileMetadata, error) {
	arg, _ := json.Marshal(map[string]interface{}{
		"path":       path,
		"mode":       mode,
		"autorename": false,
		"mute":       true,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, contentURL+"/files/upload", bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Dropbox-API-Arg", string(arg))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dropbox upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	var meta fileMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("dropbox upload response parse failed: %w", err)
	}
	return &meta, nil
}

func (c *Client) Move(ctx context.Context, fromPath, toPath string) (*blob.Metadata, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"from_path":  fromPath,
		"to_path":    toPath,
		"autorename": false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL+"/files/move_v2", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dropbox move failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	var result struct {
		Metadata fileMetadata `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("dropbox move response parse failed: %w", err)
	}
	return toBlobMetadata(&result.Metadata), nil
}

// mapError translates a Dropbox error response into the blob taxonomy.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr apiError
	_ = json.Unmarshal(raw, &apiErr)

	switch {
	case strings.Contains(apiErr.ErrorSummary, "not_found"):
		return blob.ErrNotFound
	case strings.Contains(apiErr.ErrorSummary, "conflict"):
		return blob.ErrRevisionMismatch
	}

	return fmt.Errorf("dropbox api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}

func toBlobMetadata(m *fileMetadata) *blob.Metadata {
	return &blob.Metadata{
		Path:     m.PathDisplay,
		Revision: blob.Revision(m.Rev),
		Size:     m.Size,
		Modified: m.ServerModified,
	}
}

package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://huggingface.co"

// RepoFilePath is where the dataset file lands inside the repository.
// The hub's dataset viewer picks up data/train.jsonl as the train
// split automatically.
const RepoFilePath = "data/train.jsonl"

// ErrAuth indicates the hub rejected the token. It gets a distinct
// message so credential problems are not mistaken for network ones.
var ErrAuth = errors.New("Hugging Face authorization failed, check HF_TOKEN")

// Options configures an uploader
type Options struct {
	// Token is the hub access token (write scope)
	Token string
	// BaseURL overrides the hub endpoint, used in tests
	BaseURL string
	// Timeout for a single HTTP request (default 5m, commits carry the
	// whole file)
	Timeout time.Duration
}

// Uploader pushes a local file to a Hugging Face dataset repository
type Uploader struct {
	token   string
	baseURL string
	hc      *http.Client
}

// NewUploader creates a hub uploader
func NewUploader(opts Options) *Uploader {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &Uploader{
		token:   opts.Token,
		baseURL: opts.BaseURL,
		hc:      &http.Client{Timeout: opts.Timeout},
	}
}

// Upload pushes filePath to the dataset repository as RepoFilePath,
// creating the repository when it does not exist. The operation is
// idempotent: re-running replaces the file with identical content.
func (u *Uploader) Upload(ctx context.Context, repo, filePath string) error {
	if u.token == "" {
		return fmt.Errorf("%w: no token configured", ErrAuth)
	}
	if err := ValidateRepoID(repo); err != nil {
		return err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", filePath, err)
	}

	username, err := u.whoami(ctx)
	if err != nil {
		return err
	}

	if err := u.createRepo(ctx, repo, username); err != nil {
		return err
	}

	fmt.Printf("Uploading %s to %s (%d bytes)...\n", filePath, repo, len(content))
	if err := u.commitFile(ctx, repo, content); err != nil {
		return err
	}

	fmt.Printf("Successfully pushed dataset to the Hub\n")
	fmt.Printf("View it at: %s/datasets/%s\n", u.baseURL, repo)
	return nil
}

// whoami verifies the token and returns the account name, used to
// decide whether the target namespace is an organization.
func (u *Uploader) whoami(ctx context.Context) (string, error) {
	var resp struct {
		Name string `json:"name"`
	}
	if err := u.doJSON(ctx, http.MethodGet, "/api/whoami-v2", nil, &resp); err != nil {
		return "", err
	}
	if resp.Name == "" {
		return "", fmt.Errorf("hub did not return an account name")
	}
	return resp.Name, nil
}

// createRepo creates the dataset repository, treating "already
// exists" as success.
func (u *Uploader) createRepo(ctx context.Context, repo, username string) error {
	namespace, name, _ := strings.Cut(repo, "/")

	payload := map[string]any{
		"type": "dataset",
		"name": name,
	}
	if namespace != username {
		payload["organization"] = namespace
	}

	err := u.doJSON(ctx, http.MethodPost, "/api/repos/create", payload, nil)
	var statusErr *statusError
	if errors.As(err, &statusErr) && statusErr.code == http.StatusConflict {
		// Repository already exists
		return nil
	}
	return err
}

// commitFile uploads the file content through the NDJSON commit
// endpoint in a single commit on main.
func (u *Uploader) commitFile(ctx context.Context, repo string, content []byte) error {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)

	header := map[string]any{
		"key": "header",
		"value": map[string]any{
			"summary":     fmt.Sprintf("Upload %s", RepoFilePath),
			"description": "",
		},
	}
	file := map[string]any{
		"key": "file",
		"value": map[string]any{
			"path":     RepoFilePath,
			"content":  base64.StdEncoding.EncodeToString(content),
			"encoding": "base64",
		},
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to encode commit payload: %w", err)
	}
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode commit payload: %w", err)
	}

	path := fmt.Sprintf("/api/datasets/%s/commit/main", repo)
	return u.doRaw(ctx, http.MethodPost, path, "application/x-ndjson", &body, nil)
}

// statusError carries a non-2xx hub response
type statusError struct {
	code int
	url  string
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("hub returned %d for %s: %s", e.code, e.url, e.body)
}

func (u *Uploader) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return u.doRaw(ctx, method, path, "application/json", body, out)
}

func (u *Uploader) doRaw(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.token)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := u.hc.Do(req)
	if err != nil {
		return fmt.Errorf("hub request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w (status %d)", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, url: u.baseURL + path, body: string(snippet)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode hub response: %w", err)
		}
	}
	return nil
}

package hub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type hubCall struct {
	method string
	path   string
	body   []byte
}

// newHubServer fakes the three hub endpoints the uploader touches
func newHubServer(t *testing.T, username string, createStatus int) (*httptest.Server, *[]hubCall) {
	t.Helper()

	var calls []hubCall
	mux := http.NewServeMux()

	mux.HandleFunc("/api/whoami-v2", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, hubCall{r.Method, r.URL.Path, nil})
		json.NewEncoder(w).Encode(map[string]string{"name": username})
	})
	mux.HandleFunc("/api/repos/create", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, hubCall{r.Method, r.URL.Path, body})
		w.WriteHeader(createStatus)
		w.Write([]byte("{}"))
	})
	mux.HandleFunc("/api/datasets/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, hubCall{r.Method, r.URL.Path, body})
		w.Write([]byte("{}"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "complete.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploader_Upload(t *testing.T) {
	srv, calls := newHubServer(t, "someuser", http.StatusOK)
	path := writeTestFile(t, "{\"Response\":\"مرحبا\"}\n")

	uploader := NewUploader(Options{Token: "hf_test", BaseURL: srv.URL})
	if err := uploader.Upload(context.Background(), "someuser/finqa-arabic", path); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(*calls) != 3 {
		t.Fatalf("Expected whoami, create, commit; got %d calls", len(*calls))
	}
	if (*calls)[0].path != "/api/whoami-v2" {
		t.Errorf("First call was %s", (*calls)[0].path)
	}
	if (*calls)[1].path != "/api/repos/create" {
		t.Errorf("Second call was %s", (*calls)[1].path)
	}
	if (*calls)[2].path != "/api/datasets/someuser/finqa-arabic/commit/main" {
		t.Errorf("Commit path was %s", (*calls)[2].path)
	}

	// Personal namespace must not send an organization field
	var createPayload map[string]any
	if err := json.Unmarshal((*calls)[1].body, &createPayload); err != nil {
		t.Fatalf("Bad create payload: %v", err)
	}
	if _, ok := createPayload["organization"]; ok {
		t.Error("Personal upload set an organization field")
	}
	if createPayload["name"] != "finqa-arabic" || createPayload["type"] != "dataset" {
		t.Errorf("Unexpected create payload: %v", createPayload)
	}

	// The commit must carry the file content base64-encoded
	var fileLine struct {
		Key   string `json:"key"`
		Value struct {
			Path     string `json:"path"`
			Content  string `json:"content"`
			Encoding string `json:"encoding"`
		} `json:"value"`
	}
	lines := splitNDJSON(t, (*calls)[2].body)
	if len(lines) != 2 {
		t.Fatalf("Expected header and file lines, got %d", len(lines))
	}
	if err := json.Unmarshal(lines[1], &fileLine); err != nil {
		t.Fatalf("Bad commit file line: %v", err)
	}
	if fileLine.Key != "file" || fileLine.Value.Path != RepoFilePath {
		t.Errorf("Unexpected file line: %+v", fileLine)
	}
	decoded, err := base64.StdEncoding.DecodeString(fileLine.Value.Content)
	if err != nil {
		t.Fatalf("File content is not base64: %v", err)
	}
	if string(decoded) != "{\"Response\":\"مرحبا\"}\n" {
		t.Errorf("File content mangled: %q", decoded)
	}
}

func TestUploader_Upload_OrganizationNamespace(t *testing.T) {
	srv, calls := newHubServer(t, "someuser", http.StatusOK)
	path := writeTestFile(t, "{}\n")

	uploader := NewUploader(Options{Token: "hf_test", BaseURL: srv.URL})
	if err := uploader.Upload(context.Background(), "some-org/finqa-arabic", path); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	var createPayload map[string]any
	json.Unmarshal((*calls)[1].body, &createPayload)
	if createPayload["organization"] != "some-org" {
		t.Errorf("Expected organization 'some-org', got %v", createPayload["organization"])
	}
}

func TestUploader_Upload_RepoAlreadyExists(t *testing.T) {
	srv, _ := newHubServer(t, "someuser", http.StatusConflict)
	path := writeTestFile(t, "{}\n")

	uploader := NewUploader(Options{Token: "hf_test", BaseURL: srv.URL})
	if err := uploader.Upload(context.Background(), "someuser/finqa-arabic", path); err != nil {
		t.Errorf("Upload should treat 409 on create as success: %v", err)
	}
}

func TestUploader_Upload_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()
	path := writeTestFile(t, "{}\n")

	uploader := NewUploader(Options{Token: "hf_wrong", BaseURL: srv.URL})
	err := uploader.Upload(context.Background(), "someuser/finqa-arabic", path)
	if !errors.Is(err, ErrAuth) {
		t.Errorf("Expected ErrAuth, got %v", err)
	}
}

func TestUploader_Upload_NoToken(t *testing.T) {
	uploader := NewUploader(Options{Token: ""})
	err := uploader.Upload(context.Background(), "someuser/finqa-arabic", "missing.jsonl")
	if !errors.Is(err, ErrAuth) {
		t.Errorf("Expected ErrAuth, got %v", err)
	}
}

func TestUploader_Upload_MissingFile(t *testing.T) {
	srv, calls := newHubServer(t, "someuser", http.StatusOK)

	uploader := NewUploader(Options{Token: "hf_test", BaseURL: srv.URL})
	err := uploader.Upload(context.Background(), "someuser/finqa-arabic", filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no network calls for a missing file, got %d", len(*calls))
	}
}

func TestUploader_Upload_MalformedRepo(t *testing.T) {
	srv, calls := newHubServer(t, "someuser", http.StatusOK)
	path := writeTestFile(t, "{}\n")

	uploader := NewUploader(Options{Token: "hf_test", BaseURL: srv.URL})
	if err := uploader.Upload(context.Background(), "not-a-repo-id", path); err == nil {
		t.Fatal("Expected error for malformed repo id")
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no network calls for a malformed repo id, got %d", len(*calls))
	}
}

func splitNDJSON(t *testing.T, body []byte) [][]byte {
	t.Helper()
	var lines [][]byte
	for _, line := range splitLines(body) {
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitLines(body []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range body {
		if b == '\n' {
			lines = append(lines, body[start:i])
			start = i + 1
		}
	}
	if start < len(body) {
		lines = append(lines, body[start:])
	}
	return lines
}

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	c, err := New("gsk-test", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("baseURL mismatch: %s", c.BaseURL())
	}
	if c.APIKey() != "gsk-test" {
		t.Fatalf("apikey mismatch")
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.MultipartForm.Value["model"]; len(got) == 0 || got[0] != "whisper-large-v3" {
			t.Errorf("model field: %v", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "I have a persistent cough"})
	}))
	defer srv.Close()

	c, err := New("gsk-test", srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	audioPath := filepath.Join(t.TempDir(), "symptom.mp3")
	if err := os.WriteFile(audioPath, []byte("mp3bytes"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	text, err := c.Transcribe(context.Background(), "whisper-large-v3", audioPath)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "I have a persistent cough" {
		t.Fatalf("transcript mismatch: %q", text)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	c, err := New("gsk-test", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Transcribe(context.Background(), "whisper-large-v3", "nope.mp3"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDiagnoseWithImage(t *testing.T) {
	var captured struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Looks like a mild rash."}}]}`))
	}))
	defer srv.Close()

	c, err := New("gsk-test", srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Diagnose(context.Background(), "test-model", "You are a doctor.", "Patient says: hello.", "data:image/png;base64,aGk=")
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if out != "Looks like a mild rash." {
		t.Fatalf("response mismatch: %q", out)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(captured.Messages))
	}
	if !strings.Contains(string(captured.Messages[1].Content), "image_url") {
		t.Fatalf("expected image part in user message: %s", captured.Messages[1].Content)
	}
}

func TestDiagnoseWithoutImageOmitsImageField(t *testing.T) {
	var rawBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rawBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c, err := New("gsk-test", srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Diagnose(context.Background(), "test-model", "sys", "prompt", ""); err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if strings.Contains(rawBody, "image_url") {
		t.Fatalf("text-only request must not reference an image field: %s", rawBody)
	}
}

func TestDiagnoseEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := New("gsk-test", srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Diagnose(context.Background(), "test-model", "", "prompt", ""); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

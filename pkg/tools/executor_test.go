package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"ai-docchat-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestExecuteApiGetSendsQueryParams(t *testing.T) {
	var gotCity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("city")
		w.Write([]byte("sunny, 30C"))
	}))
	defer srv.Close()

	exec := NewExecutor(nopLogger{})
	inv := &Invocation{
		Tool: &entity.SessionTool{
			Name:       "weather",
			Type:       entity.ToolTypeApi,
			ApiUrl:     srv.URL,
			HttpMethod: "GET",
		},
		Payload: map[string]interface{}{"city": "Bandung"},
	}

	out := exec.Execute(context.Background(), inv)
	if out != "sunny, 30C" {
		t.Errorf("output = %q", out)
	}
	if gotCity != "Bandung" {
		t.Errorf("query param city = %q, want Bandung", gotCity)
	}
}

func TestExecuteApiPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	exec := NewExecutor(nopLogger{})
	inv := &Invocation{
		Tool: &entity.SessionTool{
			Name:       "notify",
			Type:       entity.ToolTypeApi,
			ApiUrl:     srv.URL,
			HttpMethod: "POST",
		},
		Payload: map[string]interface{}{"message": "hello"},
	}

	out := exec.Execute(context.Background(), inv)
	if out != "ok" {
		t.Errorf("output = %q", out)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"message":"hello"`) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestExecuteApiErrorStatusBecomesFailureText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	exec := NewExecutor(nopLogger{})
	inv := &Invocation{
		Tool: &entity.SessionTool{
			Name:   "flaky",
			Type:   entity.ToolTypeApi,
			ApiUrl: srv.URL,
		},
	}

	out := exec.Execute(context.Background(), inv)
	if !strings.HasPrefix(out, "Tool 'flaky' failed:") {
		t.Errorf("output = %q, want failure text", out)
	}
}

func TestExecuteTruncatesLongOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	exec := NewExecutor(nopLogger{})
	inv := &Invocation{
		Tool: &entity.SessionTool{
			Name:   "verbose",
			Type:   entity.ToolTypeApi,
			ApiUrl: srv.URL,
		},
	}

	out := exec.Execute(context.Background(), inv)
	if len(out) != maxOutputLength {
		t.Errorf("len(output) = %d, want %d", len(out), maxOutputLength)
	}
}

func TestExecuteUnknownTypeFails(t *testing.T) {
	exec := NewExecutor(nopLogger{})
	inv := &Invocation{
		Tool: &entity.SessionTool{Name: "odd", Type: "binary"},
	}

	out := exec.Execute(context.Background(), inv)
	if !strings.Contains(out, "failed") {
		t.Errorf("output = %q, want failure text", out)
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
	}{
		{"two-byte runes", strings.Repeat("é", maxOutputLength), maxOutputLength - 1},
		{"three-byte runes", strings.Repeat("€", 1000), 2000},
		{"four-byte runes", strings.Repeat("𝔸", 600), 2001},
		{"ascii unaffected", strings.Repeat("x", 3000), 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := truncate(tt.in, tt.max)
			if len(out) > tt.max {
				t.Errorf("len = %d, want <= %d", len(out), tt.max)
			}
			if !utf8.ValidString(out) {
				t.Errorf("truncate produced invalid UTF-8: %q", out[len(out)-4:])
			}
		})
	}
}

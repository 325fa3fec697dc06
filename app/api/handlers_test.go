package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okozhin/notion-ics/app/calendar"
	"github.com/okozhin/notion-ics/app/cfg"
)

func setupTestConfig() {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	if os.Getenv("NOTION_TOKEN") == "" {
		os.Setenv("NOTION_TOKEN", "secret_test")
	}

	cfg.Load()
}

type mockAssembler struct {
	result *calendar.Result
	err    error
}

func (m *mockAssembler) Run(ctx context.Context, viewConfig *calendar.Config) (*calendar.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func testConfigCache(t *testing.T) *calendar.ConfigCache {
	t.Helper()

	tempDir := t.TempDir()
	content := `
database_id: "a1b2c3d4e5f67890abcdef1234567890"
date_property: "Date"
`
	if err := os.WriteFile(filepath.Join(tempDir, "team.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	configCache := calendar.NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}
	return configCache
}

func TestGetCalendar(t *testing.T) {
	setupTestConfig()

	assembler := &mockAssembler{
		result: &calendar.Result{
			Events: []calendar.Event{
				{
					ID:    "abc123",
					Title: "Team Standup",
					Start: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				},
			},
			Fetched: 2,
			Skipped: 1,
		},
	}

	handler := NewHandler(testConfigCache(t), assembler)
	server := NewServer(handler, "")

	req := httptest.NewRequest("GET", "/calendars/team.ics", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Expected text/calendar content type, got '%s'", ct)
	}
	if w.Header().Get("X-Feed-Events") != "1" {
		t.Errorf("Expected X-Feed-Events '1', got '%s'", w.Header().Get("X-Feed-Events"))
	}
	if w.Header().Get("X-Feed-Skipped") != "1" {
		t.Errorf("Expected X-Feed-Skipped '1', got '%s'", w.Header().Get("X-Feed-Skipped"))
	}
	if !strings.Contains(w.Body.String(), "SUMMARY:Team Standup") {
		t.Error("Expected event summary in ICS body")
	}
}

func TestGetCalendarUnknownView(t *testing.T) {
	setupTestConfig()

	handler := NewHandler(testConfigCache(t), &mockAssembler{result: &calendar.Result{}})
	server := NewServer(handler, "")

	req := httptest.NewRequest("GET", "/calendars/unknown.ics", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestGetCalendarFetchFailure(t *testing.T) {
	setupTestConfig()

	handler := NewHandler(testConfigCache(t), &mockAssembler{err: errors.New("notion unavailable")})
	server := NewServer(handler, "")

	req := httptest.NewRequest("GET", "/calendars/team.ics", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
}

func TestAPIRequiresKey(t *testing.T) {
	setupTestConfig()

	handler := NewHandler(testConfigCache(t), &mockAssembler{result: &calendar.Result{}})
	server := NewServer(handler, "test-key")

	req := httptest.NewRequest("GET", "/api/views", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/views", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/views", nil)
	req.Header.Set("X-API-Key", "test-key")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with valid key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "\"total\":1") {
		t.Errorf("Expected one view listed, got: %s", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	setupTestConfig()

	handler := NewHandler(testConfigCache(t), &mockAssembler{result: &calendar.Result{}})
	server := NewServer(handler, "")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loaded_configurations") {
		t.Error("Expected configuration count in health response")
	}
}

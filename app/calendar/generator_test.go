package calendar

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okozhin/notion-ics/app/cfg"
)

func setupTestConfig() {
	// Clear os.Args to prevent config parsing from failing
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	if os.Getenv("NOTION_TOKEN") == "" {
		os.Setenv("NOTION_TOKEN", "secret_test")
	}

	cfg.Load()
}

func TestGenerateCalendar(t *testing.T) {
	setupTestConfig()
	generator := NewGenerator()

	viewConfig := &Config{
		Name:         "team",
		CalendarName: "Team Calendar",
		Timezone:     "UTC",
	}

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	created := time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC)

	events := []Event{
		{
			ID:          "abc123",
			Title:       "Team Standup",
			Description: "Weekly sync\n\nNotion: https://www.notion.so/abc123",
			Location:    "Room 4B",
			URL:         "https://www.notion.so/abc123",
			Start:       start,
			End:         &end,
			CreatedAt:   &created,
			UpdatedAt:   &created,
			PageID:      "abc-123",
		},
	}

	ical, err := generator.Run(viewConfig, events)
	if err != nil {
		t.Fatal(err)
	}

	expectations := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Team Calendar",
		"BEGIN:VEVENT",
		"UID:abc123@notion-ics",
		"SUMMARY:Team Standup",
		"LOCATION:Room 4B",
		"DTSTART:20240301T090000Z",
		"DTEND:20240301T103000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, expected := range expectations {
		if !strings.Contains(ical, expected) {
			t.Errorf("Expected ICS output to contain '%s'", expected)
		}
	}
}

func TestGenerateCalendarDefaultDuration(t *testing.T) {
	setupTestConfig()
	generator := NewGenerator()

	viewConfig := &Config{Name: "team", Timezone: "UTC"}

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "abc123", Title: "Open Ended", Start: start},
	}

	ical, err := generator.Run(viewConfig, events)
	if err != nil {
		t.Fatal(err)
	}

	// Timed event without an end gets exactly one hour
	if !strings.Contains(ical, "DTSTART:20240301T090000Z") {
		t.Error("Expected DTSTART at 09:00 UTC")
	}
	if !strings.Contains(ical, "DTEND:20240301T100000Z") {
		t.Error("Expected implicit one-hour DTEND at 10:00 UTC")
	}
}

func TestGenerateCalendarAllDay(t *testing.T) {
	setupTestConfig()
	generator := NewGenerator()

	viewConfig := &Config{Name: "team", Timezone: "UTC"}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	events := []Event{
		{ID: "abc123", Title: "Company Holiday", Start: start, End: &end, AllDay: true},
	}

	ical, err := generator.Run(viewConfig, events)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(ical, "DTSTART;VALUE=DATE:20240301") {
		t.Error("Expected all-day DTSTART as a calendar date")
	}
	if !strings.Contains(ical, "DTEND;VALUE=DATE:20240302") {
		t.Error("Expected all-day DTEND on the next calendar date")
	}
}

func TestGenerateCalendarTruncatesDescription(t *testing.T) {
	setupTestConfig()
	generator := NewGenerator()

	viewConfig := &Config{Name: "team", Timezone: "UTC"}

	events := []Event{
		{
			ID:          "abc123",
			Title:       "Long One",
			Description: strings.Repeat("x", 3000),
			Start:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	ical, err := generator.Run(viewConfig, events)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(ical, "DESCRIPTION:") {
		t.Fatal("Expected DESCRIPTION in output")
	}
	if strings.Contains(ical, strings.Repeat("x", 2001)) {
		t.Error("Expected description truncated to 2000 characters")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 2000); got != "short" {
		t.Errorf("Expected 'short', got '%s'", got)
	}

	long := strings.Repeat("y", 2500)
	got := truncate(long, 2000)
	if len([]rune(got)) != 2003 {
		t.Errorf("Expected 2000 runes plus ellipsis, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected truncated string to end with '...'")
	}
}

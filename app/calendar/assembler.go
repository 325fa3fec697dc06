package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okozhin/notion-ics/app/notion"
)

// ClientInterface is the slice of the Notion client the assembler needs.
type ClientInterface interface {
	FetchAll(ctx context.Context, databaseID string, filter *notion.Expr, pageSize int) ([]notion.Page, error)
}

var _ ClientInterface = (*notion.Client)(nil)

// Result carries the assembled events plus the fetch/skip tally so the
// caller can observe how many records were dropped.
type Result struct {
	Events  []Event
	Fetched int
	Skipped int
}

type Assembler struct {
	client ClientInterface
}

func NewAssembler(client ClientInterface) *Assembler {
	return &Assembler{client: client}
}

// Run fetches all records for the view's window and normalizes them into
// events, preserving provider order. Records that cannot become events
// are skipped and tallied, never fatal; a fetch failure is fatal for the
// whole call.
func (a *Assembler) Run(ctx context.Context, cfg *Config) (*Result, error) {
	window := windowFromConfig(cfg, time.Now().UTC())
	filter := notion.MergeFilters(notion.BuildWindowFilter(window, cfg.DateProperty), cfg.Filters)

	pages, err := a.client.FetchAll(ctx, cfg.DatabaseID, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for view %s: %w", cfg.Name, err)
	}

	events := make([]Event, 0, len(pages))
	skipped := 0

	for _, page := range pages {
		event, err := normalizePage(page, cfg)
		if err != nil {
			slog.Warn("Skipping record", "view", cfg.Name, "page", page.ID, "error", err)
			skipped++
			continue
		}
		events = append(events, *event)
	}

	slog.Info("Feed assembled", "view", cfg.Name, "fetched", len(pages), "events", len(events), "skipped", skipped)

	return &Result{
		Events:  events,
		Fetched: len(pages),
		Skipped: skipped,
	}, nil
}

func windowFromConfig(cfg *Config, now time.Time) notion.Window {
	var window notion.Window

	if cfg.QueryDaysBack != nil {
		start := now.AddDate(0, 0, -*cfg.QueryDaysBack)
		window.Start = &start
	}
	if cfg.QueryDaysForward != nil {
		end := now.AddDate(0, 0, *cfg.QueryDaysForward)
		window.End = &end
	}

	return window
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/okozhin/notion-ics/app/notion"
)

const untitledEvent = "Untitled Event"

// normalizePage converts one Notion page into an Event. A nil error with
// a nil event never happens: either the page becomes an event or the
// returned error says why it must be skipped. Skips never abort a batch;
// the assembler decides what to do with them.
func normalizePage(page notion.Page, cfg *Config) (*Event, error) {
	dateProp, ok := page.Properties[cfg.DateProperty]
	if !ok || dateProp.Date == nil || dateProp.Date.Start == "" {
		return nil, fmt.Errorf("missing date property %q", cfg.DateProperty)
	}

	loc := cfg.Location()

	start, allDay, err := notion.ResolveDate(dateProp.Date.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("unparseable start date: %w", err)
	}

	var end *time.Time
	if dateProp.Date.End != nil && *dateProp.Date.End != "" {
		resolved, _, err := notion.ResolveDate(*dateProp.Date.End, loc)
		if err != nil {
			return nil, fmt.Errorf("unparseable end date: %w", err)
		}
		end = &resolved
	}

	// All-day events without an explicit end span exactly one day
	if allDay && end == nil {
		next := start.AddDate(0, 0, 1)
		end = &next
	}

	title := untitledEvent
	if value, ok := extractProperty(page, cfg.TitleProperty); ok {
		title = value
	}
	if cfg.TitlePrefix != "" {
		title = cfg.TitlePrefix + title
	}

	description, _ := extractProperty(page, cfg.DescriptionProperty)
	location, _ := extractProperty(page, cfg.LocationProperty)
	url, _ := extractProperty(page, cfg.URLProperty)

	pageLink := "https://www.notion.so/" + strings.ReplaceAll(page.ID, "-", "")
	linkLine := "Notion: " + pageLink
	if description != "" {
		description = description + "\n\n" + linkLine
	} else {
		description = linkLine
	}
	if url == "" {
		url = pageLink
	}

	event := &Event{
		ID:          strings.ReplaceAll(page.ID, "-", ""),
		Title:       title,
		Description: description,
		Location:    location,
		URL:         url,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		PageID:      page.ID,
	}

	// Page timestamps are always time-bearing
	if page.CreatedTime != "" {
		created, _, err := notion.ResolveDate(page.CreatedTime, loc)
		if err != nil {
			return nil, fmt.Errorf("unparseable created time: %w", err)
		}
		event.CreatedAt = &created
	}
	if page.LastEditedTime != "" {
		edited, _, err := notion.ResolveDate(page.LastEditedTime, loc)
		if err != nil {
			return nil, fmt.Errorf("unparseable last edited time: %w", err)
		}
		event.UpdatedAt = &edited
	}

	return event, nil
}

// extractProperty looks up a configured property by name and renders it
// as text. An unconfigured name, a missing property, or an empty value
// all read as "no value".
func extractProperty(page notion.Page, propertyName string) (string, bool) {
	if propertyName == "" {
		return "", false
	}
	prop, ok := page.Properties[propertyName]
	if !ok {
		return "", false
	}
	return notion.Text(prop)
}

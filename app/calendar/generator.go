package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/okozhin/notion-ics/app/cfg"
)

const (
	uidSuffix         = "@notion-ics"
	maxDescriptionLen = 2000
	defaultDuration   = time.Hour
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the event list as a complete ICS document for one view.
func (g *Generator) Run(viewConfig *Config, events []Event) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId("-//Notion ICS " + cfg.Get().Version + "//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	calName := viewConfig.CalendarName
	if calName == "" {
		calName = viewConfig.Name
	}
	cal.SetXWRCalName(calName)
	if viewConfig.CalendarDescription != "" {
		cal.SetXWRCalDesc(viewConfig.CalendarDescription)
	}
	cal.SetXWRTimezone(viewConfig.Timezone)

	now := time.Now().UTC()

	for _, event := range events {
		g.writeEvent(cal, event, now)
	}

	return cal.Serialize(), nil
}

func (g *Generator) writeEvent(cal *ics.Calendar, event Event, now time.Time) {
	ve := cal.AddEvent(event.ID + uidSuffix)

	ve.SetDtStampTime(now)
	ve.SetSummary(event.Title)

	if event.Description != "" {
		ve.SetDescription(truncate(event.Description, maxDescriptionLen))
	}
	if event.Location != "" {
		ve.SetLocation(event.Location)
	}
	if event.URL != "" {
		ve.SetURL(event.URL)
	}
	if event.CreatedAt != nil {
		ve.SetCreatedTime(event.CreatedAt.UTC())
	}
	if event.UpdatedAt != nil {
		ve.SetModifiedAt(event.UpdatedAt.UTC())
	}

	if event.AllDay {
		ve.SetAllDayStartAt(event.Start)
		if event.End != nil {
			ve.SetAllDayEndAt(*event.End)
		} else {
			ve.SetAllDayEndAt(event.Start.AddDate(0, 0, 1))
		}
		return
	}

	ve.SetStartAt(event.Start.UTC())
	if event.End != nil {
		ve.SetEndAt(event.End.UTC())
	} else {
		// Timed events without an explicit end last one hour
		ve.SetEndAt(event.Start.UTC().Add(defaultDuration))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

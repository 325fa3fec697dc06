package calendar

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Event is one normalized calendar entry derived from a single Notion
// page. Immutable once built.
type Event struct {
	ID          string // page id with hyphens stripped
	Title       string // never empty
	Description string
	Location    string
	URL         string
	Start       time.Time
	End         *time.Time
	AllDay      bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	PageID      string // original page id, separators intact
}

// Config describes one calendar view over a Notion database.
type Config struct {
	Name string // Derived from filename (without .yml extension)

	DatabaseID   string `yaml:"database_id"`
	DateProperty string `yaml:"date_property"`

	TitleProperty       string `yaml:"title_property"`
	DescriptionProperty string `yaml:"description_property"`
	LocationProperty    string `yaml:"location_property"`
	URLProperty         string `yaml:"url_property"`

	// nil means unbounded on that side
	QueryDaysBack    *int `yaml:"query_days_back"`
	QueryDaysForward *int `yaml:"query_days_forward"`

	Filters RawFilters `yaml:"filters"`

	CalendarName        string `yaml:"calendar_name"`
	CalendarDescription string `yaml:"calendar_description"`
	Timezone            string `yaml:"timezone"`
	TitlePrefix         string `yaml:"title_prefix"`

	location *time.Location
}

// Location returns the view's display timezone, resolved at load time.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// RawFilters holds extra Notion filter objects passed through to the
// query verbatim. The YAML form may be a single mapping or a list; both
// normalize to a list.
type RawFilters []map[string]any

func (f *RawFilters) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []map[string]any
		if err := value.Decode(&list); err != nil {
			return err
		}
		*f = list
		return nil
	case yaml.MappingNode:
		var one map[string]any
		if err := value.Decode(&one); err != nil {
			return err
		}
		*f = RawFilters{one}
		return nil
	default:
		return fmt.Errorf("filters must be a mapping or a list of mappings")
	}
}

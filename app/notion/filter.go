package notion

import (
	"encoding/json"
	"time"
)

// Window is the [start, end] instant range used to constrain the date
// property of queried records. A nil side means unbounded.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// DateCondition is a comparison on a date property. Exactly one of the
// operators is set per node.
type DateCondition struct {
	OnOrAfter  string `json:"on_or_after,omitempty"`
	OnOrBefore string `json:"on_or_before,omitempty"`
}

// Expr is a node of a Notion filter expression: either a date comparison
// on a property, an "and" over child expressions, or an opaque raw filter
// supplied verbatim by view configuration.
type Expr struct {
	Property string
	Date     *DateCondition
	And      []*Expr
	Raw      map[string]any
}

func (e *Expr) MarshalJSON() ([]byte, error) {
	if e.Raw != nil {
		return json.Marshal(e.Raw)
	}

	if len(e.And) > 0 {
		return json.Marshal(struct {
			And []*Expr `json:"and"`
		}{e.And})
	}

	return json.Marshal(struct {
		Property string         `json:"property"`
		Date     *DateCondition `json:"date"`
	}{e.Property, e.Date})
}

// BuildWindowFilter converts a time window into a filter on the given
// date property. Returns nil when both sides are unbounded.
func BuildWindowFilter(w Window, dateProperty string) *Expr {
	onOrAfter := func() *Expr {
		return &Expr{
			Property: dateProperty,
			Date:     &DateCondition{OnOrAfter: w.Start.Format(time.RFC3339)},
		}
	}
	onOrBefore := func() *Expr {
		return &Expr{
			Property: dateProperty,
			Date:     &DateCondition{OnOrBefore: w.End.Format(time.RFC3339)},
		}
	}

	switch {
	case w.Start != nil && w.End != nil:
		return &Expr{And: []*Expr{onOrAfter(), onOrBefore()}}
	case w.Start != nil:
		return onOrAfter()
	case w.End != nil:
		return onOrBefore()
	default:
		return nil
	}
}

// MergeFilters combines the window filter with extra raw filters from
// view configuration. When the window filter is already an "and" node the
// extras are appended into its list instead of nesting another level.
func MergeFilters(window *Expr, extra []map[string]any) *Expr {
	if len(extra) == 0 {
		return window
	}

	extraExprs := make([]*Expr, 0, len(extra))
	for _, raw := range extra {
		extraExprs = append(extraExprs, &Expr{Raw: raw})
	}

	if window == nil {
		if len(extraExprs) == 1 {
			return extraExprs[0]
		}
		return &Expr{And: extraExprs}
	}

	if len(window.And) > 0 {
		window.And = append(window.And, extraExprs...)
		return window
	}

	return &Expr{And: append([]*Expr{window}, extraExprs...)}
}

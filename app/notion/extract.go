package notion

import (
	"strconv"
	"strings"
)

// Text converts one property value into its display string. The second
// return is false when the property is unset, empty, or of a kind this
// service does not render. An unknown kind is never an error.
func Text(p PropertyValue) (string, bool) {
	switch p.Type {
	case "title":
		return joinRichText(p.Title)

	case "rich_text":
		return joinRichText(p.RichText)

	case "select":
		if p.Select == nil || p.Select.Name == "" {
			return "", false
		}
		return p.Select.Name, true

	case "multi_select":
		if len(p.MultiSelect) == 0 {
			return "", false
		}
		labels := make([]string, 0, len(p.MultiSelect))
		for _, option := range p.MultiSelect {
			labels = append(labels, option.Name)
		}
		return strings.Join(labels, ", "), true

	case "url":
		return derefString(p.URL)

	case "email":
		return derefString(p.Email)

	case "phone_number":
		return derefString(p.PhoneNumber)

	case "number":
		if p.Number == nil {
			return "", false
		}
		return strconv.FormatFloat(*p.Number, 'f', -1, 64), true

	case "checkbox":
		if p.Checkbox == nil {
			return "", false
		}
		if *p.Checkbox {
			return "Yes", true
		}
		return "No", true
	}

	return "", false
}

func joinRichText(runs []RichText) (string, bool) {
	if len(runs) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.PlainText)
	}
	return b.String(), true
}

func derefString(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

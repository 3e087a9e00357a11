package propstore

import (
	"encoding/json"
	"strings"
)

// Property is one typed value in a page's property map. The store accepts a
// small closed set of variants; each knows how to serialize itself into the
// wire shape the store expects for its declared type. Callers must emit
// exactly the declared type per field, and a date with no value is omitted
// from the map entirely rather than sent as null, since the store treats
// presence and null differently.
type Property interface {
	json.Marshaler
}

// Properties is the property map sent on page create and patch.
type Properties map[string]Property

// textSpans builds the single-span rich text array used by Title and RichText.
func textSpans(content string) []any {
	return []any{
		map[string]any{
			"type": "text",
			"text": map[string]any{"content": content},
		},
	}
}

// Title is the page's title property.
type Title string

func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":  "title",
		"title": textSpans(string(t)),
	})
}

// DateMentionTitle is a title composed of a single date mention, used as the
// heading of daily playtime records.
type DateMentionTitle string

func (t DateMentionTitle) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": "title",
		"title": []any{
			map[string]any{
				"type": "mention",
				"mention": map[string]any{
					"type": "date",
					"date": map[string]any{"start": string(t)},
				},
			},
		},
	})
}

// RichText is a plain rich-text property.
type RichText string

func (r RichText) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":      "rich_text",
		"rich_text": textSpans(string(r)),
	})
}

// Number is a numeric property.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":   "number",
		"number": float64(n),
	})
}

// Date is a date property holding an ISO-8601 start value.
type Date string

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": "date",
		"date": map[string]any{"start": string(d)},
	})
}

// Select is a single-choice property.
type Select string

func (s Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":   "select",
		"select": map[string]any{"name": string(s)},
	})
}

// MultiSelect is a multi-choice property. Elements containing commas are
// split into separate options and whitespace is trimmed, so both
// ["A", "B, C"] and ["A, B"] normalize to distinct options.
type MultiSelect []string

func (m MultiSelect) MarshalJSON() ([]byte, error) {
	options := []any{}
	for _, raw := range m {
		for _, part := range strings.Split(raw, ",") {
			if name := strings.TrimSpace(part); name != "" {
				options = append(options, map[string]any{"name": name})
			}
		}
	}
	return json.Marshal(map[string]any{
		"type":         "multi_select",
		"multi_select": options,
	})
}

// URL is a link property.
type URL string

func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": "url",
		"url":  string(u),
	})
}

// Relation is a single-page relation property holding the target page id.
type Relation string

func (r Relation) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":     "relation",
		"relation": []any{map[string]any{"id": string(r)}},
	})
}

// Media holds the external cover/icon attached to a page on creation.
// An empty field is omitted from the request.
type Media struct {
	CoverURL  string
	IconURL   string
	IconEmoji string
}

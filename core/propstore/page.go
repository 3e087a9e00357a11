package propstore

// Page is one page of a database query response.
type Page struct {
	Results    []Entity `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

// Entity is a single persisted page with its raw property values.
type Entity struct {
	ID         string           `json:"id"`
	Properties map[string]Value `json:"properties"`
}

// Value is the decoded wire form of one property. Only the field matching
// Type is populated; accessors on Entity return an explicit present/absent
// pair instead of nested nil checks.
type Value struct {
	Type        string      `json:"type"`
	Title       []Span      `json:"title"`
	RichText    []Span      `json:"rich_text"`
	Number      *float64    `json:"number"`
	Date        *DateValue  `json:"date"`
	Select      *NameValue  `json:"select"`
	MultiSelect []NameValue `json:"multi_select"`
	URL         *string     `json:"url"`
	Relation    []IDValue   `json:"relation"`
}

// Span is one segment of a title or rich-text value.
type Span struct {
	PlainText string `json:"plain_text"`
}

// DateValue is the wire form of a date property.
type DateValue struct {
	Start string `json:"start"`
}

// NameValue is the wire form of a select or multi-select option.
type NameValue struct {
	Name string `json:"name"`
}

// IDValue is the wire form of a relation target.
type IDValue struct {
	ID string `json:"id"`
}

// PlainTitle returns the first title span of the named property.
func (e Entity) PlainTitle(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || len(v.Title) == 0 || v.Title[0].PlainText == "" {
		return "", false
	}
	return v.Title[0].PlainText, true
}

// PlainText returns the first rich-text span of the named property.
func (e Entity) PlainText(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || len(v.RichText) == 0 || v.RichText[0].PlainText == "" {
		return "", false
	}
	return v.RichText[0].PlainText, true
}

// NumberValue returns the named number property.
func (e Entity) NumberValue(name string) (float64, bool) {
	v, ok := e.Properties[name]
	if !ok || v.Number == nil {
		return 0, false
	}
	return *v.Number, true
}

// DateStart returns the start of the named date property.
func (e Entity) DateStart(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || v.Date == nil || v.Date.Start == "" {
		return "", false
	}
	return v.Date.Start, true
}

// SelectName returns the chosen option of the named select property.
func (e Entity) SelectName(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || v.Select == nil || v.Select.Name == "" {
		return "", false
	}
	return v.Select.Name, true
}

// RelationID returns the first related page id of the named relation property.
func (e Entity) RelationID(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || len(v.Relation) == 0 || v.Relation[0].ID == "" {
		return "", false
	}
	return v.Relation[0].ID, true
}

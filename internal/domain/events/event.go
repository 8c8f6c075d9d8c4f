package events

import (
	"encoding/json"
	"time"
)

// DateFormat is the wire format of the scheduling date. Listings sort
// ascending by this value.
const DateFormat = "2006-01-02"

// reservedKeys are document fields managed by the store; they are never
// folded into Attrs when parsing client input.
var reservedKeys = map[string]struct{}{
	"id":         {},
	"_id":        {},
	"hr_email":   {},
	"title":      {},
	"date":       {},
	"created_at": {},
	"updated_at": {},
}

// Event is a postable activity record. Beyond the typed fields, creators may
// attach arbitrary fields; those persist opaquely in Attrs and round-trip
// through the API as part of the flat document.
type Event struct {
	ID         string
	OwnerEmail string
	Title      string
	Date       time.Time
	Attrs      map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Document renders the event as the flat JSON object the API serves.
func (e Event) Document() map[string]any {
	doc := make(map[string]any, len(e.Attrs)+6)
	for key, value := range e.Attrs {
		doc[key] = value
	}
	doc["id"] = e.ID
	doc["hr_email"] = e.OwnerEmail
	doc["title"] = e.Title
	doc["date"] = e.Date.Format(DateFormat)
	doc["created_at"] = e.CreatedAt.UTC().Format(time.RFC3339)
	doc["updated_at"] = e.UpdatedAt.UTC().Format(time.RFC3339)
	return doc
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Document())
}

// EventInput is the payload accepted when creating an event. Unknown fields
// are preserved in Attrs.
type EventInput struct {
	OwnerEmail string
	Title      string
	Date       time.Time
	Attrs      map[string]any
}

func (in *EventInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := decodeString(raw, "hr_email", &in.OwnerEmail); err != nil {
		return err
	}
	if err := decodeString(raw, "title", &in.Title); err != nil {
		return err
	}
	date, present, err := decodeDate(raw, "date")
	if err != nil {
		return err
	}
	if present {
		in.Date = date
	}
	in.Attrs = extraAttrs(raw)
	return nil
}

// Validate applies the presence checks the API performs before writing.
func (in EventInput) Validate() error {
	if in.OwnerEmail == "" {
		return ValidationError{Field: "hr_email", Message: "required"}
	}
	if in.Title == "" {
		return ValidationError{Field: "title", Message: "required"}
	}
	if in.Date.IsZero() {
		return ValidationError{Field: "date", Message: "required"}
	}
	return nil
}

// EventPatch carries a partial field replacement: nil pointers leave the
// stored value untouched, Attrs entries overwrite field-by-field.
type EventPatch struct {
	OwnerEmail *string
	Title      *string
	Date       *time.Time
	Attrs      map[string]any
}

func (p *EventPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if _, ok := raw["hr_email"]; ok {
		var value string
		if err := decodeString(raw, "hr_email", &value); err != nil {
			return err
		}
		p.OwnerEmail = &value
	}
	if _, ok := raw["title"]; ok {
		var value string
		if err := decodeString(raw, "title", &value); err != nil {
			return err
		}
		p.Title = &value
	}
	if _, ok := raw["date"]; ok {
		date, _, err := decodeDate(raw, "date")
		if err != nil {
			return err
		}
		p.Date = &date
	}
	p.Attrs = extraAttrs(raw)
	return nil
}

func decodeString(raw map[string]json.RawMessage, key string, dst *string) error {
	message, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(message, dst); err != nil {
		return ValidationError{Field: key, Message: "must be a string"}
	}
	return nil
}

func decodeDate(raw map[string]json.RawMessage, key string) (time.Time, bool, error) {
	message, ok := raw[key]
	if !ok {
		return time.Time{}, false, nil
	}
	var value string
	if err := json.Unmarshal(message, &value); err != nil {
		return time.Time{}, true, ValidationError{Field: key, Message: "must be a string"}
	}
	if date, err := time.Parse(DateFormat, value); err == nil {
		return date, true, nil
	}
	// Frontends occasionally send full timestamps; keep the date part.
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC().Truncate(24 * time.Hour), true, nil
	}
	return time.Time{}, true, ValidationError{Field: key, Message: "must be an ISO8601 date"}
}

func extraAttrs(raw map[string]json.RawMessage) map[string]any {
	attrs := make(map[string]any)
	for key, message := range raw {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		var value any
		if err := json.Unmarshal(message, &value); err != nil {
			continue
		}
		attrs[key] = value
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/unity-hands/server/internal/domain/events"
)

func marshalAttrs(attrs map[string]any) ([]byte, error) {
	if len(attrs) == 0 {
		return []byte("{}"), nil
	}
	payload, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal attrs: %w", err)
	}
	return payload, nil
}

func unmarshalAttrs(payload []byte) (map[string]any, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var attrs map[string]any
	if err := json.Unmarshal(payload, &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal attrs: %w", err)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

type eventRow struct {
	ID         string
	OwnerEmail string
	Title      string
	Date       pgtype.Date
	Attrs      []byte
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

func (row eventRow) toEvent() (events.Event, error) {
	attrs, err := unmarshalAttrs(row.Attrs)
	if err != nil {
		return events.Event{}, err
	}
	event := events.Event{
		ID:         row.ID,
		OwnerEmail: row.OwnerEmail,
		Title:      row.Title,
		Attrs:      attrs,
	}
	if row.Date.Valid {
		event.Date = row.Date.Time
	}
	if row.CreatedAt.Valid {
		event.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		event.UpdatedAt = row.UpdatedAt.Time
	}
	return event, nil
}

// patchDate converts an optional patch date into a value pgx can bind as a
// nullable DATE parameter.
func patchDate(date *time.Time) any {
	if date == nil {
		return nil
	}
	return *date
}

func patchString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

// patchAttrs marshals patch attrs, binding NULL when nothing was supplied so
// the SQL merge leaves stored attrs untouched.
func patchAttrs(attrs map[string]any) (any, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	return json.Marshal(attrs)
}

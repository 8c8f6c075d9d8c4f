package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/unity-hands/server/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `id, hr_email, title, event_date, attrs, created_at, updated_at`

func (r *EventRepository) List(ctx context.Context, filters events.Filters) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE ($1 = '' OR hr_email = $1)
   AND ($2 = '' OR title ILIKE '%' || $2 || '%')
 ORDER BY event_date ASC, id ASC
`, filters.Owner, filters.TitleSearch)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE id = $1
`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Insert(ctx context.Context, event events.Event) error {
	attrs, err := marshalAttrs(event.Attrs)
	if err != nil {
		return err
	}

	_, err = r.queryer().Exec(ctx, `
INSERT INTO events (id, hr_email, title, event_date, attrs, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
`, event.ID, event.OwnerEmail, event.Title, event.Date, attrs, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch events.EventPatch) (*events.Event, error) {
	attrs, err := patchAttrs(patch.Attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal patch attrs: %w", err)
	}

	row := r.queryer().QueryRow(ctx, `
UPDATE events
   SET hr_email   = COALESCE($2, hr_email),
       title      = COALESCE($3, title),
       event_date = COALESCE($4::date, event_date),
       attrs      = attrs || COALESCE($5::jsonb, '{}'::jsonb),
       updated_at = now()
 WHERE id = $1
RETURNING `+eventColumns+`
`, id, patchString(patch.OwnerEmail), patchString(patch.Title), patchDate(patch.Date), attrs)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Upsert(ctx context.Context, id string, patch events.EventPatch) (*events.Event, error) {
	attrs, err := patchAttrs(patch.Attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal patch attrs: %w", err)
	}

	// The insert arm fills typed fields the patch omitted with empty values;
	// a patch is not required to be a complete document.
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (id, hr_email, title, event_date, attrs, created_at, updated_at)
VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4::date, now()::date),
        COALESCE($5::jsonb, '{}'::jsonb), now(), now())
    ON CONFLICT (id) DO UPDATE
   SET hr_email   = COALESCE($2, events.hr_email),
       title      = COALESCE($3, events.title),
       event_date = COALESCE($4::date, events.event_date),
       attrs      = events.attrs || COALESCE($5::jsonb, '{}'::jsonb),
       updated_at = now()
RETURNING `+eventColumns+`
`, id, patchString(patch.OwnerEmail), patchString(patch.Title), patchDate(patch.Date), attrs)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("upsert event: %w", err)
	}
	return &event, nil
}

// Delete removes the event and its applications in one transaction; there is
// no window where the event is gone but applications still reference it.
func (r *EventRepository) Delete(ctx context.Context, id string) (events.DeleteResult, error) {
	if r.tx != nil {
		return deleteEventCascade(ctx, r.tx, id)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return events.DeleteResult{}, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := deleteEventCascade(ctx, tx, id)
	if err != nil {
		return events.DeleteResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return events.DeleteResult{}, fmt.Errorf("commit delete tx: %w", err)
	}
	return result, nil
}

// deleteEventCascade removes applications first, then the event. Because
// application.job_id carries no foreign key, applications may reference an
// id with no event row; those are removed even when EventsDeleted comes back
// 0, which doubles as orphan cleanup.
func deleteEventCascade(ctx context.Context, tx pgx.Tx, id string) (events.DeleteResult, error) {
	applicationsTag, err := tx.Exec(ctx, `DELETE FROM application WHERE job_id = $1`, id)
	if err != nil {
		return events.DeleteResult{}, fmt.Errorf("cascade applications: %w", err)
	}
	eventsTag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return events.DeleteResult{}, fmt.Errorf("delete event: %w", err)
	}
	return events.DeleteResult{
		EventsDeleted:       eventsTag.RowsAffected(),
		ApplicationsDeleted: applicationsTag.RowsAffected(),
	}, nil
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var er eventRow
	if err := row.Scan(&er.ID, &er.OwnerEmail, &er.Title, &er.Date, &er.Attrs, &er.CreatedAt, &er.UpdatedAt); err != nil {
		return events.Event{}, err
	}
	return er.toEvent()
}

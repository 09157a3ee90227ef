package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blynk_bridge/internal/models"

	"github.com/google/uuid"
)

// occurredAtLayout is fixed-width so text comparison in SQL orders correctly.
const occurredAtLayout = "2006-01-02T15:04:05.000000000Z"

const (
	insertEventSQL = `
		INSERT INTO command_events (id, occurred_at, type, pin, value, success, message, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, type, pin, value, success, message, meta FROM command_events`
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

func formatOccurredAt(t time.Time) string {
	return t.UTC().Format(occurredAtLayout)
}

// Append inserts a new event. Missing EventID or OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.CommandEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		formatOccurredAt(e.OccurredAt),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Pin,
		e.Value,
		e.Success,
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert command event %s: %w", e.EventID, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, oldest first.
// Zero times mean no bound; an empty type matches all.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.CommandEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatOccurredAt(from))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatOccurredAt(to))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query command events: %w", err)
	}
	defer rows.Close()

	out := make([]models.CommandEvent, 0, 64)
	for rows.Next() {
		var (
			ev         models.CommandEvent
			occurredAt string
			metaStr    sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &occurredAt, &ev.Type, &ev.Pin, &ev.Value, &ev.Success, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan command event: %w", err)
		}
		ts, err := time.Parse(occurredAtLayout, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurredAt, err)
		}
		ev.OccurredAt = ts.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

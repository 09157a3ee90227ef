package service

import (
	"context"
	"errors"

	"blynk_bridge/internal/models"
	"blynk_bridge/internal/repository"
)

// EventSink receives command events (journal, MQTT).
type EventSink interface {
	Record(ctx context.Context, e models.CommandEvent) error
}

// Sinks fans an event out to every sink and joins their errors.
type Sinks []EventSink

func (s Sinks) Record(ctx context.Context, e models.CommandEvent) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// JournalSink appends events to the command journal.
type JournalSink struct {
	Repo repository.EventRepo
}

func (j JournalSink) Record(ctx context.Context, e models.CommandEvent) error {
	return j.Repo.Append(ctx, e)
}

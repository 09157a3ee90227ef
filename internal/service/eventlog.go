package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"blynk_bridge/internal/models"
	"blynk_bridge/internal/repository"
)

// ErrJournalDisabled is returned by EventLogService.List without a journal.
var ErrJournalDisabled = errors.New("command journal is disabled")

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// LogFilter narrows journal listings by time range and event type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "" or one of the models.Event* types
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, strings.TrimSpace(strings.ToUpper(f.Type)), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.CommandEvent, error) {
	if s.eventRepo == nil {
		return nil, ErrJournalDisabled
	}
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

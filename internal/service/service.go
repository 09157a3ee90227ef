package service

import (
	"context"
	"time"

	"blynk_bridge/internal/config"
	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/models"
	"blynk_bridge/internal/repository"
	"blynk_bridge/internal/scheduler"
)

// PinClient is the remote key/value API the bridge talks to.
type PinClient interface {
	Get(ctx context.Context, pin string) (models.PinReading, error)
	Update(ctx context.Context, pin string, value int) error
	ReadURL(pin string) string
}

// Scheduler runs deferred compensating writes.
type Scheduler interface {
	Schedule(name, pin string, delay time.Duration, fn scheduler.TaskFunc) (scheduler.TaskInfo, error)
}

// Status aggregates the monitored pins into one snapshot.
type Status interface {
	GetStatus(ctx context.Context) models.StatusSnapshot
}

// Commands writes through to the remote pins.
type Commands interface {
	TriggerDoorbell(ctx context.Context) models.CommandResult
	TriggerSmoke(ctx context.Context) models.CommandResult
	ResetSmoke(ctx context.Context) models.CommandResult
}

// Diagnostics covers health and remote connectivity probes.
type Diagnostics interface {
	TestConnection(ctx context.Context) models.ConnectionProbe
	Health() models.Health
}

// EventLog exposes the command journal.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CommandEvent, error)
}

// Tasks exposes pending deferred writes.
type Tasks interface {
	Pending() []scheduler.TaskInfo
	Cancel(id string) bool
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Status
	Commands
	Diagnostics
	EventLog
	Tasks
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Config *config.Config
	Pins   PinClient
	Tasks  *scheduler.Registry
	// Journal is nil when the journal is disabled.
	Journal repository.EventRepo
	// Sinks receive every command event in addition to the journal.
	Sinks []EventSink
	Log   *logger.Logger
}

func NewService(d Deps) *Service {
	log := logger.OrNop(d.Log)

	sinks := Sinks(nil)
	if d.Journal != nil {
		sinks = append(sinks, JournalSink{Repo: d.Journal})
	}
	sinks = append(sinks, d.Sinks...)

	return &Service{
		Status:      NewStatusService(d.Pins, d.Config.Blynk, log),
		Commands:    NewCommandService(d.Pins, d.Config.Blynk, d.Config.Commands, d.Tasks, sinks, log),
		Diagnostics: NewDiagnosticsService(d.Pins, d.Config.Server, d.Config.Blynk),
		EventLog:    NewEventLogService(d.Journal),
		Tasks:       d.Tasks,
	}
}

package service

import (
	"context"
	"time"

	"blynk_bridge/internal/blynk"
	"blynk_bridge/internal/config"
	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/models"

	"github.com/google/uuid"
)

const (
	msgDoorbellTriggered = "Doorbell triggered"
	msgDoorbellFailed    = "Failed to trigger doorbell"
	msgSmokeTriggered    = "Smoke alarm triggered"
	msgSmokeFailed       = "Failed to trigger smoke alarm"
	msgSmokeReset        = "Smoke sensor reset"
	msgSmokeResetFailed  = "Failed to reset"
	msgDoorbellAutoReset = "Doorbell auto-reset"

	taskDoorbellReset = "doorbell_auto_reset"

	// recordTimeout bounds journal/MQTT delivery of one event.
	recordTimeout = 2 * time.Second
)

type CommandService struct {
	pins  PinClient
	blynk config.BlynkConfig
	cmds  config.CommandsConfig
	tasks Scheduler
	sink  EventSink
	log   *logger.Logger
	now   func() time.Time
}

func NewCommandService(pins PinClient, blynkCfg config.BlynkConfig, cmds config.CommandsConfig, tasks Scheduler, sink EventSink, log *logger.Logger) *CommandService {
	return &CommandService{
		pins:  pins,
		blynk: blynkCfg,
		cmds:  cmds,
		tasks: tasks,
		sink:  sink,
		log:   logger.OrNop(log),
		now:   time.Now,
	}
}

// TriggerDoorbell pulses the doorbell pin: 1 now, 0 after the reset delay.
// The result reflects the first write only; the reset runs detached from ctx.
func (s *CommandService) TriggerDoorbell(ctx context.Context) models.CommandResult {
	pin := s.blynk.Pins.Doorbell
	if err := s.write(ctx, pin, 1); err != nil {
		s.log.Errorw("command_failed", "command", models.EventTriggerDoorbell, "pin", pin, "err", err)
		s.record(ctx, models.EventTriggerDoorbell, pin, 1, err, msgDoorbellFailed, nil)
		return models.CommandResult{Success: false, Message: msgDoorbellFailed}
	}

	meta := map[string]any{"reset_after_ms": s.cmds.DoorbellResetDelay.Milliseconds()}
	task, err := s.tasks.Schedule(taskDoorbellReset, pin, s.cmds.DoorbellResetDelay, func(tctx context.Context) error {
		return s.resetDoorbell(tctx, pin)
	})
	if err != nil {
		// still a successful trigger; the pin stays high until reset by hand
		s.log.Warnw("doorbell_reset_not_scheduled", "pin", pin, "err", err)
	} else {
		meta["reset_task_id"] = task.ID
	}

	s.record(ctx, models.EventTriggerDoorbell, pin, 1, nil, msgDoorbellTriggered, meta)
	return models.CommandResult{Success: true, Message: msgDoorbellTriggered}
}

func (s *CommandService) resetDoorbell(ctx context.Context, pin string) error {
	err := s.write(ctx, pin, 0)
	s.record(ctx, models.EventResetDoorbell, pin, 0, err, msgDoorbellAutoReset, nil)
	return err
}

// TriggerSmoke sets the smoke state pin high. There is no auto-reset.
func (s *CommandService) TriggerSmoke(ctx context.Context) models.CommandResult {
	return s.setPin(ctx, models.EventTriggerSmoke, s.blynk.Pins.SmokeState, 1, msgSmokeTriggered, msgSmokeFailed)
}

// ResetSmoke sets the smoke state pin low.
func (s *CommandService) ResetSmoke(ctx context.Context) models.CommandResult {
	return s.setPin(ctx, models.EventResetSmoke, s.blynk.Pins.SmokeState, 0, msgSmokeReset, msgSmokeResetFailed)
}

func (s *CommandService) setPin(ctx context.Context, eventType, pin string, value int, okMsg, failMsg string) models.CommandResult {
	if err := s.write(ctx, pin, value); err != nil {
		s.log.Errorw("command_failed", "command", eventType, "pin", pin, "value", value, "err", err)
		s.record(ctx, eventType, pin, value, err, failMsg, nil)
		return models.CommandResult{Success: false, Message: failMsg}
	}
	s.log.Infow("command_done", "command", eventType, "pin", pin, "value", value)
	s.record(ctx, eventType, pin, value, nil, okMsg, nil)
	return models.CommandResult{Success: true, Message: okMsg}
}

func (s *CommandService) write(ctx context.Context, pin string, value int) error {
	wctx, cancel := blynk.WithTimeout(ctx, s.blynk.WriteTimeout)
	defer cancel()
	return s.pins.Update(wctx, pin, value)
}

// record delivers a command event to the sinks. Delivery failures are logged
// and never change the command result.
func (s *CommandService) record(ctx context.Context, eventType, pin string, value int, cmdErr error, desc string, meta map[string]any) {
	if s.sink == nil {
		return
	}
	if cmdErr != nil {
		if meta == nil {
			meta = map[string]any{}
		}
		meta["error"] = cmdErr.Error()
	}
	ev := models.CommandEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        eventType,
		Pin:         pin,
		Value:       value,
		Success:     cmdErr == nil,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.sink.Record(rctx, ev); err != nil {
		s.log.Warnw("command_event_not_recorded", "event_id", ev.EventID, "type", eventType, "err", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"blynk_bridge/internal/blynk"
	"blynk_bridge/internal/config"
	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/models"

	"golang.org/x/sync/errgroup"
)

// Synthetic snapshot parameters used when the remote cannot be reached.
const (
	fallbackDoorbellProbability = 0.10
	fallbackSmokeProbability    = 0.05
	fallbackSmokeValueMax       = 500
)

var errAllReadsFailed = errors.New("all pin reads failed")

// Randomizer is the entropy source for fallback snapshots.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

// globalRand uses the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type StatusService struct {
	pins PinClient
	cfg  config.BlynkConfig
	rnd  Randomizer
	log  *logger.Logger
	now  func() time.Time
}

func NewStatusService(pins PinClient, cfg config.BlynkConfig, log *logger.Logger) *StatusService {
	return &StatusService{
		pins: pins,
		cfg:  cfg,
		rnd:  globalRand{},
		log:  logger.OrNop(log),
		now:  time.Now,
	}
}

// GetStatus reads the doorbell, smoke state and smoke value pins concurrently
// and normalizes them. A failed pin reads as 0. When the fetch stage as a whole
// fails (every read failed, or ctx ended) a synthetic snapshot with
// Connected=false is returned instead.
func (s *StatusService) GetStatus(ctx context.Context) models.StatusSnapshot {
	readings, err := s.fetch(ctx)
	if err != nil {
		s.log.Warnw("status_fetch_failed_using_fallback", "err", err)
		return s.fallback()
	}
	snap := models.StatusSnapshot{
		Doorbell:   readings[0].Int(),
		Smoke:      readings[1].Int(),
		SmokeValue: readings[2].Int(),
		Timestamp:  models.FormatTimestamp(s.now()),
		Connected:  true,
	}
	s.log.Debugw("status_fetched", "doorbell", snap.Doorbell, "smoke", snap.Smoke, "smoke_value", snap.SmokeValue)
	return snap
}

// fetch issues all three reads before waiting on any of them.
func (s *StatusService) fetch(ctx context.Context) ([3]models.PinReading, error) {
	pins := [3]string{s.cfg.Pins.Doorbell, s.cfg.Pins.SmokeState, s.cfg.Pins.SmokeValue}

	var (
		readings [3]models.PinReading
		failed   atomic.Int32
		g        errgroup.Group
	)
	for i, pin := range pins {
		g.Go(func() error {
			rctx, cancel := blynk.WithTimeout(ctx, s.cfg.ReadTimeout)
			defer cancel()

			r, err := s.pins.Get(rctx, pin)
			if err != nil {
				failed.Add(1)
				readings[i] = models.Absent()
				s.log.Infow("pin_read_failed", "pin", pin, "err", err)
				// only the caller going away aborts the stage
				return ctx.Err()
			}
			readings[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return readings, fmt.Errorf("status fetch aborted: %w", err)
	}
	if int(failed.Load()) == len(pins) {
		return readings, errAllReadsFailed
	}
	return readings, nil
}

func (s *StatusService) fallback() models.StatusSnapshot {
	snap := models.StatusSnapshot{
		SmokeValue: s.rnd.IntN(fallbackSmokeValueMax),
		Timestamp:  models.FormatTimestamp(s.now()),
		Connected:  false,
	}
	if s.rnd.Float64() < fallbackDoorbellProbability {
		snap.Doorbell = 1
	}
	if s.rnd.Float64() < fallbackSmokeProbability {
		snap.Smoke = 1
	}
	return snap
}

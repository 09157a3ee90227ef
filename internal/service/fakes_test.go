package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"blynk_bridge/internal/config"
	"blynk_bridge/internal/models"
	"blynk_bridge/internal/scheduler"
)

var errRemoteDown = errors.New("remote down")

type pinWrite struct {
	Pin   string
	Value int
	At    time.Time
}

// fakePins is an in-memory PinClient.
type fakePins struct {
	mu       sync.Mutex
	bodies   map[string]string
	readErrs map[string]error
	writeErr error
	writes   []pinWrite
	delay    time.Duration

	reads atomic.Int32
}

func newFakePins() *fakePins {
	return &fakePins{bodies: map[string]string{}, readErrs: map[string]error{}}
}

func (f *fakePins) Get(ctx context.Context, pin string) (models.PinReading, error) {
	f.reads.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.Absent(), ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readErrs[pin]; err != nil {
		return models.Absent(), err
	}
	body, ok := f.bodies[pin]
	if !ok {
		return models.Absent(), errRemoteDown
	}
	return models.ParsePinReading([]byte(body)), nil
}

func (f *fakePins) Update(ctx context.Context, pin string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, pinWrite{Pin: pin, Value: value, At: time.Now()})
	return nil
}

func (f *fakePins) ReadURL(pin string) string { return "https://example.test/get?token=abcd***&pin=" + pin }

func (f *fakePins) Writes() []pinWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pinWrite(nil), f.writes...)
}

// fakeSink collects recorded events.
type fakeSink struct {
	mu     sync.Mutex
	events []models.CommandEvent
	err    error
}

func (s *fakeSink) Record(ctx context.Context, e models.CommandEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *fakeSink) Events() []models.CommandEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CommandEvent(nil), s.events...)
}

// failingScheduler refuses every task.
type failingScheduler struct{}

func (failingScheduler) Schedule(string, string, time.Duration, scheduler.TaskFunc) (scheduler.TaskInfo, error) {
	return scheduler.TaskInfo{}, scheduler.ErrClosed
}

// seqRand returns scripted values.
type seqRand struct {
	floats []float64
	n      int
}

func (r *seqRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *seqRand) IntN(int) int { return r.n }

func testBlynkConfig() config.BlynkConfig {
	return config.BlynkConfig{
		BaseURL:      "https://example.test",
		Token:        "abcdefgh",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		Pins:         config.PinsConfig{Doorbell: "V1", SmokeState: "V0", SmokeValue: "V2"},
	}
}

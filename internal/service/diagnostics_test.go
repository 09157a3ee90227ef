package service

import (
	"context"
	"strings"
	"testing"

	"blynk_bridge/internal/config"
)

func TestTestConnection(t *testing.T) {
	pins := newFakePins()
	pins.bodies["V1"] = `["1"]`
	svc := NewDiagnosticsService(pins, config.ServerConfig{}, testBlynkConfig())

	probe := svc.TestConnection(context.Background())
	if !probe.Success || probe.Message != msgProbeOK {
		t.Fatalf("unexpected probe: %+v", probe)
	}
	seq, ok := probe.Data.([]string)
	if !ok || len(seq) != 1 || seq[0] != "1" {
		t.Fatalf("data should echo the raw reading, got %#v", probe.Data)
	}
	if strings.Contains(probe.URL, "abcdefgh") || !strings.HasSuffix(probe.URL, "pin=V1") {
		t.Fatalf("unexpected url: %s", probe.URL)
	}
}

func TestTestConnection_Failure(t *testing.T) {
	pins := newFakePins()
	svc := NewDiagnosticsService(pins, config.ServerConfig{}, testBlynkConfig())

	probe := svc.TestConnection(context.Background())
	if probe.Success || probe.Message != msgProbeFailed {
		t.Fatalf("unexpected probe: %+v", probe)
	}
	if probe.Error == "" || probe.URL == "" || probe.Data != nil {
		t.Fatalf("failure probe must carry error and url only: %+v", probe)
	}
}

func TestHealth_NeverCallsRemote(t *testing.T) {
	pins := newFakePins()
	svc := NewDiagnosticsService(pins, config.ServerConfig{Name: "Blynk API Bridge", Port: "3001"}, testBlynkConfig())

	h := svc.Health()
	if h.Status != "online" || h.Server != "Blynk API Bridge" || h.Port != "3001" || h.Timestamp == "" {
		t.Fatalf("unexpected health: %+v", h)
	}
	if pins.reads.Load() != 0 || len(pins.Writes()) != 0 {
		t.Fatalf("health must not touch the remote")
	}
}

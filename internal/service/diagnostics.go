package service

import (
	"context"
	"time"

	"blynk_bridge/internal/blynk"
	"blynk_bridge/internal/config"
	"blynk_bridge/internal/models"
)

const (
	healthStatusOnline = "online"

	msgProbeOK     = "Blynk connection successful!"
	msgProbeFailed = "Blynk connection failed"
)

type DiagnosticsService struct {
	pins   PinClient
	server config.ServerConfig
	blynk  config.BlynkConfig
	now    func() time.Time
}

func NewDiagnosticsService(pins PinClient, server config.ServerConfig, blynkCfg config.BlynkConfig) *DiagnosticsService {
	return &DiagnosticsService{pins: pins, server: server, blynk: blynkCfg, now: time.Now}
}

// TestConnection performs one read of the doorbell pin and reports the raw
// answer. The URL in the result has the token redacted.
func (s *DiagnosticsService) TestConnection(ctx context.Context) models.ConnectionProbe {
	pin := s.blynk.Pins.Doorbell
	url := s.pins.ReadURL(pin)

	rctx, cancel := blynk.WithTimeout(ctx, s.blynk.ReadTimeout)
	defer cancel()

	r, err := s.pins.Get(rctx, pin)
	if err != nil {
		return models.ConnectionProbe{Success: false, Message: msgProbeFailed, Error: err.Error(), URL: url}
	}
	return models.ConnectionProbe{Success: true, Message: msgProbeOK, Data: r.Value(), URL: url}
}

// Health never touches the remote API.
func (s *DiagnosticsService) Health() models.Health {
	return models.Health{
		Status:    healthStatusOnline,
		Server:    s.server.Name,
		Port:      s.server.Port,
		Timestamp: models.FormatTimestamp(s.now()),
	}
}

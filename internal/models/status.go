package models

import "time"

// TimestampLayout is ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// StatusSnapshot is the normalized view of all monitored pins.
type StatusSnapshot struct {
	Doorbell   int    `json:"doorbell" example:"0"`
	Smoke      int    `json:"smoke" example:"1"`
	SmokeValue int    `json:"smokeValue" example:"342"`
	Timestamp  string `json:"timestamp" example:"2025-01-02T15:04:05.000Z"`
	Connected  bool   `json:"connected" example:"true"`
}

// FormatTimestamp renders t the way snapshots and health responses carry it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Health is the liveness/identity payload.
type Health struct {
	Status    string `json:"status" example:"online"`
	Server    string `json:"server" example:"Blynk API Bridge"`
	Port      string `json:"port" example:"3001"`
	Timestamp string `json:"timestamp"`
}

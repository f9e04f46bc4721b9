package web

import (
	"encoding/json"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/status"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
)

// StatusJSON is the JSON representation of the prop status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Device        string     `json:"device"`
	Puzzle        string     `json:"puzzle"`
	Link          ConnJSON   `json:"link"`
	Bus           ConnJSON   `json:"bus"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Config        ConfigJSON `json:"config"`
}

// ConnJSON reports one supervised connection.
type ConnJSON struct {
	State     string `json:"state"`
	Connected bool   `json:"connected"`
}

// ConfigJSON is the JSON representation of prop config.
type ConfigJSON struct {
	Broker        string `json:"broker"`
	InboxTopic    string `json:"inbox_topic"`
	HostTopic     string `json:"host_topic"`
	TickMs        int64  `json:"tick_ms"`
	LinkTimeoutMs int64  `json:"link_timeout_ms"`
	BusTimeoutMs  int64  `json:"bus_timeout_ms"`
}

func connJSON(s supervisor.ConnState) ConnJSON {
	return ConnJSON{
		State:     string(s),
		Connected: s == supervisor.Connected,
	}
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			Device:        snap.Device,
			Puzzle:        string(snap.Puzzle),
			Link:          connJSON(snap.LinkState),
			Bus:           connJSON(snap.BusState),
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			Config: ConfigJSON{
				Broker:        snap.Config.Broker,
				InboxTopic:    snap.Config.InboxTopic,
				HostTopic:     snap.Config.HostTopic,
				TickMs:        snap.Config.TickMs,
				LinkTimeoutMs: snap.Config.LinkTimeoutMs,
				BusTimeoutMs:  snap.Config.BusTimeoutMs,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}

package swarm

import (
	"context"

	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/tracker"
)

// MonitorInput requests a context and lifecycle snapshot. WaveID narrows the
// reservation report to one wave; Threshold defaults to 0.8.
type MonitorInput struct {
	WaveID    string  `json:"waveId,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// MonitorOutput is a point-in-time observability snapshot.
type MonitorOutput struct {
	Ledger          ledger.Status         `json:"ledger"`
	WaveReservation int                   `json:"waveReservation,omitempty"`
	OverThreshold   bool                  `json:"overThreshold"`
	Agents          []tracker.AgentStatus `json:"agents,omitempty"`
	Metrics         tracker.Metrics       `json:"metrics"`
}

func (s *Service) monitorContext(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*MonitorInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*MonitorOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}

	threshold := input.Threshold
	if threshold <= 0 {
		threshold = 0.8
	}
	output.Ledger = s.ledger.Status()
	output.OverThreshold = s.ledger.IsOverThreshold(threshold)
	if input.WaveID != "" {
		output.WaveReservation = s.ledger.Reservation(input.WaveID)
	}
	lifecycle := s.scheduler.Tracker()
	output.Agents = lifecycle.Statuses()
	output.Metrics = lifecycle.Metrics()
	return nil
}

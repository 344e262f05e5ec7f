package domain

import (
	"encoding/json"
	"fmt"
)

type SignalKind string

const (
	SignalOffer     SignalKind = "offer"
	SignalAnswer    SignalKind = "answer"
	SignalCandidate SignalKind = "candidate"
)

func ParseSignalKind(s string) (SignalKind, error) {
	switch k := SignalKind(s); k {
	case SignalOffer, SignalAnswer, SignalCandidate:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSignalKind, s)
	}
}

// SignalEnvelope carries negotiation metadata between two connections.
// Payload is opaque and never inspected.
type SignalEnvelope struct {
	From    ConnectionID    `json:"fromConnectionId"`
	To      ConnectionID    `json:"toConnectionId"`
	Kind    SignalKind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Validate checks shape only.
func (e SignalEnvelope) Validate() error {
	if e.To == "" {
		return fmt.Errorf("%w: missing target", ErrInvalidSignal)
	}
	if _, err := ParseSignalKind(string(e.Kind)); err != nil {
		return err
	}
	if len(e.Payload) == 0 || !json.Valid(e.Payload) {
		return fmt.Errorf("%w: payload must be JSON", ErrInvalidSignal)
	}
	return nil
}

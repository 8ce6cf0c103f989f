package service

import (
	"fmt"

	"ulascansenturk/weather-widget/internal/providers"
)

type Kind int

const (
	Idle Kind = iota
	Loading
	Searching
	Success
	Error
)

var kindNames = map[Kind]string{
	Idle:      "idle",
	Loading:   "loading",
	Searching: "searching",
	Success:   "success",
	Error:     "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// State is the single source of truth for what the widget shows. Snapshot is
// set only for Success; Message and Animated only for Error.
type State struct {
	Kind       Kind                `json:"kind"`
	Generation uint64              `json:"generation"`
	Snapshot   *providers.Snapshot `json:"snapshot,omitempty"`
	Message    string              `json:"message,omitempty"`
	Animated   bool                `json:"animated,omitempty"`
}

func (s State) InFlight() bool {
	return s.Kind == Loading || s.Kind == Searching
}

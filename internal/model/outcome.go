package model

import (
	"fmt"
	"strings"
)

type OutcomeStatus string

const (
	OutcomeNoInput     OutcomeStatus = "NO_INPUT"
	OutcomeNoCandidate OutcomeStatus = "NO_CANDIDATE"
	OutcomeInvalid     OutcomeStatus = "INVALID"
	OutcomeValid       OutcomeStatus = "VALID"
)

var outcomeStatuses = []OutcomeStatus{
	OutcomeNoInput,
	OutcomeNoCandidate,
	OutcomeInvalid,
	OutcomeValid,
}

func ParseOutcomeStatus(raw string) (OutcomeStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, status := range outcomeStatuses {
		if string(status) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown outcome status %q", raw)
}

// Outcome is the terminal classification of one pipeline run.
// Plate is empty for NO_INPUT and NO_CANDIDATE.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Plate  string        `json:"plate,omitempty"`
}

func NoInput() Outcome {
	return Outcome{Status: OutcomeNoInput}
}

func NoCandidate() Outcome {
	return Outcome{Status: OutcomeNoCandidate}
}

func Invalid(plate string) Outcome {
	return Outcome{Status: OutcomeInvalid, Plate: plate}
}

func Valid(plate string) Outcome {
	return Outcome{Status: OutcomeValid, Plate: plate}
}

func (o Outcome) IsValid() bool {
	return o.Status == OutcomeValid
}

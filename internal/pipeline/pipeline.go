// Package pipeline turns one set of OCR detections into one Outcome.
package pipeline

import (
	"github.com/rs/zerolog"

	"plate-service/internal/model"
	"plate-service/internal/plate"
)

type Pipeline struct {
	corrector *plate.Corrector
	log       zerolog.Logger
}

func New(corrector *plate.Corrector, log zerolog.Logger) *Pipeline {
	if corrector == nil {
		corrector = plate.NewCorrector(nil)
	}
	return &Pipeline{
		corrector: corrector,
		log:       log,
	}
}

// Run makes a single pass: select a candidate, correct it, validate it.
// A nil set means no frame was available and yields NO_INPUT.
func (p *Pipeline) Run(set *model.DetectionSet) model.Outcome {
	if set == nil {
		p.log.Debug().Msg("no frame available")
		return model.NoInput()
	}

	candidate, ok := plate.SelectCandidate(set)
	if !ok {
		p.log.Debug().Int("detections", set.Len()).Msg("no plate candidate")
		return model.NoCandidate()
	}

	corrected := p.corrector.Correct(candidate)
	if !plate.IsValid(corrected) {
		p.log.Debug().Str("candidate", candidate).Str("plate", corrected).Msg("plate rejected by grammar")
		return model.Invalid(corrected)
	}

	p.log.Debug().Str("candidate", candidate).Str("plate", corrected).Msg("plate accepted")
	return model.Valid(corrected)
}

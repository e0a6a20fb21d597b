package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"plate-service/internal/capture"
	"plate-service/internal/client"
	"plate-service/internal/model"
	"plate-service/internal/ocr"
	"plate-service/internal/pipeline"
	"plate-service/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

type Notifier interface {
	Notify(ctx context.Context, n client.Notification) error
}

type PlateJournal interface {
	Append(plate string) error
}

type PlateReadStore interface {
	Create(ctx context.Context, read *model.PlateRead) error
	List(ctx context.Context, filter repository.PlateReadListFilter) ([]model.PlateRead, error)
}

// Collaborators holds the optional side-effect targets. A nil field disables
// that side effect.
type Collaborators struct {
	Source   capture.Source
	Notifier Notifier
	Journal  PlateJournal
	Store    PlateReadStore
}

type RecognitionService struct {
	pipeline *pipeline.Pipeline
	engine   ocr.Engine
	deps     Collaborators
	policy   NotifyPolicy
	now      func() time.Time
	log      zerolog.Logger
}

func NewRecognitionService(
	p *pipeline.Pipeline,
	engine ocr.Engine,
	deps Collaborators,
	policy NotifyPolicy,
	log zerolog.Logger,
) *RecognitionService {
	if policy == nil {
		policy = DefaultNotifyPolicy()
	}
	return &RecognitionService{
		pipeline: p,
		engine:   engine,
		deps:     deps,
		policy:   policy,
		now:      time.Now,
		log:      log,
	}
}

// Scan runs one observation cycle against the configured frame source. Any
// capture failure counts as a missing frame.
func (s *RecognitionService) Scan(ctx context.Context) (model.Outcome, error) {
	if s.deps.Source == nil {
		return s.Evaluate(ctx, nil, "none"), nil
	}

	frame, err := s.deps.Source.Capture(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.Outcome{}, ctx.Err()
		}
		if errors.Is(err, capture.ErrNoFrame) {
			s.log.Info().Err(err).Msg("capture returned no frame")
		} else {
			s.log.Warn().Err(err).Msg("capture failed")
		}
		return s.Evaluate(ctx, nil, "none"), nil
	}

	return s.recognizeFrame(ctx, frame)
}

// RecognizeImage runs one observation cycle on an uploaded image.
func (s *RecognitionService) RecognizeImage(ctx context.Context, image []byte, source string) (model.Outcome, error) {
	frame, err := capture.DecodeFrame(image, source)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.recognizeFrame(ctx, frame)
}

func (s *RecognitionService) recognizeFrame(ctx context.Context, frame *capture.Frame) (model.Outcome, error) {
	if s.engine == nil {
		return model.Outcome{}, errors.New("ocr engine is not configured")
	}

	set, err := s.engine.Recognize(ctx, frame.Data)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s recognition failed: %w", s.engine.Name(), err)
	}
	if set == nil {
		set = &model.DetectionSet{}
	}

	s.log.Debug().
		Str("source", frame.Source).
		Str("format", frame.Format).
		Int("detections", set.Len()).
		Msg("frame recognized")

	return s.Evaluate(ctx, set, frame.Source), nil
}

// Evaluate classifies set and performs the side effects for its outcome.
// Side-effect failures are logged and never change the outcome.
func (s *RecognitionService) Evaluate(ctx context.Context, set *model.DetectionSet, source string) model.Outcome {
	outcome := s.pipeline.Run(set)
	s.report(outcome)

	if err := s.dispatch(ctx, outcome, set.Len(), source); err != nil {
		s.log.Error().Err(err).Str("status", string(outcome.Status)).Msg("outcome side effects failed")
	}

	return outcome
}

func (s *RecognitionService) ListReads(ctx context.Context, filter repository.PlateReadListFilter) ([]model.PlateRead, error) {
	if s.deps.Store == nil {
		return []model.PlateRead{}, nil
	}
	return s.deps.Store.List(ctx, filter)
}

func (s *RecognitionService) report(outcome model.Outcome) {
	switch outcome.Status {
	case model.OutcomeNoInput:
		s.log.Info().Str("status", string(outcome.Status)).Msg("no input available")
	case model.OutcomeNoCandidate:
		s.log.Info().Str("status", string(outcome.Status)).Msg("number plate not visible")
	case model.OutcomeInvalid:
		s.log.Info().Str("status", string(outcome.Status)).Str("plate", outcome.Plate).Msg("invalid plate")
	case model.OutcomeValid:
		s.log.Info().Str("status", string(outcome.Status)).Str("plate", outcome.Plate).Msg("valid plate")
	}
}

func (s *RecognitionService) dispatch(ctx context.Context, outcome model.Outcome, detections int, source string) error {
	var errs []error

	if outcome.IsValid() && s.deps.Journal != nil {
		if err := s.deps.Journal.Append(outcome.Plate); err != nil {
			errs = append(errs, err)
		}
	}

	if s.deps.Notifier != nil && s.policy.Allows(outcome.Status) {
		if err := s.deps.Notifier.Notify(ctx, NotificationFor(outcome)); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}

	if s.deps.Store != nil {
		read := model.NewPlateRead(outcome, source, detections, s.now())
		if err := s.deps.Store.Create(ctx, read); err != nil {
			errs = append(errs, fmt.Errorf("store plate read: %w", err))
		}
	}

	return errors.Join(errs...)
}

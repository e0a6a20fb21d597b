package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plate-service/internal/capture"
	"plate-service/internal/client"
	"plate-service/internal/model"
	"plate-service/internal/ocr"
	"plate-service/internal/pipeline"
	"plate-service/internal/repository"
)

type fakeSource struct {
	frame *capture.Frame
	err   error
}

func (f *fakeSource) Capture(ctx context.Context) (*capture.Frame, error) {
	return f.frame, f.err
}

type fakeNotifier struct {
	sent []client.Notification
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, n client.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type fakeJournal struct {
	lines []string
	err   error
}

func (f *fakeJournal) Append(plate string) error {
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, plate)
	return nil
}

type fakeStore struct {
	reads []*model.PlateRead
	err   error
}

func (f *fakeStore) Create(ctx context.Context, read *model.PlateRead) error {
	f.reads = append(f.reads, read)
	return f.err
}

func (f *fakeStore) List(ctx context.Context, filter repository.PlateReadListFilter) ([]model.PlateRead, error) {
	out := make([]model.PlateRead, 0, len(f.reads))
	for _, r := range f.reads {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func staticEngine(texts ...string) ocr.Engine {
	return ocr.EngineFunc(func(ctx context.Context, image []byte) (*model.DetectionSet, error) {
		return model.NewDetectionSet(texts...), nil
	})
}

func testFrame() *capture.Frame {
	return &capture.Frame{Data: []byte{1}, Format: "png", Width: 1, Height: 1, Source: "file:wel.jpg"}
}

type harness struct {
	notifier *fakeNotifier
	journal  *fakeJournal
	store    *fakeStore
}

func newService(t *testing.T, source capture.Source, engine ocr.Engine, policy NotifyPolicy) (*RecognitionService, *harness) {
	t.Helper()
	h := &harness{notifier: &fakeNotifier{}, journal: &fakeJournal{}, store: &fakeStore{}}
	svc := NewRecognitionService(
		pipeline.New(nil, zerolog.Nop()),
		engine,
		Collaborators{Source: source, Notifier: h.notifier, Journal: h.journal, Store: h.store},
		policy,
		zerolog.Nop(),
	)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }
	return svc, h
}

func TestScan_ValidPlate(t *testing.T) {
	svc, h := newService(t, &fakeSource{frame: testFrame()}, staticEngine("INDIA", "MH 12 AB 1234"), nil)

	outcome, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.Valid("MH12AB1234"), outcome)
	assert.Equal(t, []string{"MH12AB1234"}, h.journal.lines)
	assert.Equal(t, []client.Notification{{Plate: "MH12AB1234", Status: "OK"}}, h.notifier.sent)
	require.Len(t, h.store.reads, 1)
	assert.Equal(t, model.OutcomeValid, h.store.reads[0].Status)
	assert.Equal(t, "MH12AB1234", *h.store.reads[0].Plate)
	assert.Equal(t, 2, h.store.reads[0].Detections)
	assert.Equal(t, "file:wel.jpg", h.store.reads[0].Source)
}

func TestScan_CorrectedPlate(t *testing.T) {
	svc, h := newService(t, &fakeSource{frame: testFrame()}, staticEngine("MH120B1234"), nil)

	outcome, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.Valid("MH12QB1234"), outcome)
	assert.Equal(t, []string{"MH12QB1234"}, h.journal.lines)
}

func TestScan_NoFrame(t *testing.T) {
	sources := map[string]capture.Source{
		"no frame":       &fakeSource{err: fmt.Errorf("%w: image wel.jpg not found", capture.ErrNoFrame)},
		"camera failure": &fakeSource{err: errors.New("device busy")},
		"no source":      nil,
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			svc, h := newService(t, source, staticEngine("MH12AB1234"), nil)

			outcome, err := svc.Scan(context.Background())
			require.NoError(t, err)

			assert.Equal(t, model.NoInput(), outcome)
			assert.Empty(t, h.journal.lines)
			assert.Equal(t, []client.Notification{{Plate: "NONE", Status: "INVALID"}}, h.notifier.sent)
			require.Len(t, h.store.reads, 1)
			assert.Nil(t, h.store.reads[0].Plate)
		})
	}
}

func TestScan_DefaultPolicySkipsRejections(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  model.Outcome
	}{
		{name: "signage only", texts: []string{"STOP", "EXIT"}, want: model.NoCandidate()},
		{name: "empty frame", texts: nil, want: model.NoCandidate()},
		{name: "grammar failure", texts: []string{"AB12XYZ99"}, want: model.Invalid("AB12XYZ99")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, h := newService(t, &fakeSource{frame: testFrame()}, staticEngine(tt.texts...), nil)

			outcome, err := svc.Scan(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.want, outcome)
			assert.Empty(t, h.journal.lines)
			assert.Empty(t, h.notifier.sent)
			assert.Len(t, h.store.reads, 1)
		})
	}
}

func TestScan_ConfiguredPolicy(t *testing.T) {
	policy := NewNotifyPolicy(model.OutcomeNoCandidate, model.OutcomeInvalid)

	svc, h := newService(t, &fakeSource{frame: testFrame()}, staticEngine("AB12XYZ99"), policy)
	_, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []client.Notification{{Plate: "AB12XYZ99", Status: "INVALID"}}, h.notifier.sent)

	svc, h = newService(t, &fakeSource{frame: testFrame()}, staticEngine("STOP"), policy)
	_, err = svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []client.Notification{{Plate: "NONE", Status: "INVALID"}}, h.notifier.sent)

	svc, h = newService(t, &fakeSource{frame: testFrame()}, staticEngine("MH12AB1234"), policy)
	_, err = svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h.notifier.sent)
	assert.Equal(t, []string{"MH12AB1234"}, h.journal.lines, "the plate log does not depend on the notify policy")
}

func TestScan_SideEffectFailuresKeepOutcome(t *testing.T) {
	svc, h := newService(t, &fakeSource{frame: testFrame()}, staticEngine("MH12AB1234"), nil)
	h.notifier.err = errors.New("actuator offline")
	h.journal.err = errors.New("disk full")
	h.store.err = errors.New("db down")

	outcome, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Valid("MH12AB1234"), outcome)
	assert.Len(t, h.notifier.sent, 1)
}

func TestScan_EngineFailure(t *testing.T) {
	engine := ocr.EngineFunc(func(ctx context.Context, image []byte) (*model.DetectionSet, error) {
		return nil, errors.New("model not loaded")
	})
	svc, h := newService(t, &fakeSource{frame: testFrame()}, engine, nil)

	_, err := svc.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
	assert.Empty(t, h.notifier.sent)
	assert.Empty(t, h.store.reads)
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc, h := newService(t, &fakeSource{err: context.Canceled}, staticEngine(), nil)

	_, err := svc.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.notifier.sent)
}

func TestRecognizeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))

	svc, h := newService(t, nil, staticEngine("KA05MN0001"), nil)

	outcome, err := svc.RecognizeImage(context.Background(), buf.Bytes(), "upload:gate.png")
	require.NoError(t, err)
	assert.Equal(t, model.Valid("KA05MN0001"), outcome)
	assert.Equal(t, "upload:gate.png", h.store.reads[0].Source)

	_, err = svc.RecognizeImage(context.Background(), []byte("plain text"), "upload:notes.txt")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluate_DetectionSets(t *testing.T) {
	svc, _ := newService(t, nil, nil, nil)

	assert.Equal(t, model.NoInput(), svc.Evaluate(context.Background(), nil, "api"))
	assert.Equal(t, model.NoCandidate(), svc.Evaluate(context.Background(), model.NewDetectionSet(), "api"))
	assert.Equal(t, model.Valid("MH12AB1234"), svc.Evaluate(context.Background(), model.NewDetectionSet("MH12AB1234"), "api"))
}

func TestListReads(t *testing.T) {
	svc, _ := newService(t, nil, nil, nil)
	svc.Evaluate(context.Background(), model.NewDetectionSet("MH12AB1234"), "api")
	svc.Evaluate(context.Background(), model.NewDetectionSet("STOP"), "api")

	valid := model.OutcomeValid
	reads, err := svc.ListReads(context.Background(), repository.PlateReadListFilter{Status: &valid})
	require.NoError(t, err)
	require.Len(t, reads, 1)
	assert.Equal(t, time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC), reads[0].DetectedAt)

	noStore := NewRecognitionService(pipeline.New(nil, zerolog.Nop()), nil, Collaborators{}, nil, zerolog.Nop())
	reads, err = noStore.ListReads(context.Background(), repository.PlateReadListFilter{})
	require.NoError(t, err)
	assert.Empty(t, reads)
}

func TestNotificationFor(t *testing.T) {
	assert.Equal(t, client.Notification{Plate: "MH12AB1234", Status: "OK"}, NotificationFor(model.Valid("MH12AB1234")))
	assert.Equal(t, client.Notification{Plate: "AB12XYZ99", Status: "INVALID"}, NotificationFor(model.Invalid("AB12XYZ99")))
	assert.Equal(t, client.Notification{Plate: "NONE", Status: "INVALID"}, NotificationFor(model.NoCandidate()))
	assert.Equal(t, client.Notification{Plate: "NONE", Status: "INVALID"}, NotificationFor(model.NoInput()))
}

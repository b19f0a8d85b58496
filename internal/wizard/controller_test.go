package wizard

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	last    Profile
	answers []fakeAnswer
	block   chan struct{}
	started chan struct{}
}

type fakeAnswer struct {
	gen *Generation
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, profile Profile) (*Generation, error) {
	f.mu.Lock()
	f.calls++
	f.last = profile
	var answer fakeAnswer
	if len(f.answers) > 0 {
		answer = f.answers[0]
		f.answers = f.answers[1:]
	}
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return answer.gen, answer.err
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func intPtr(v int) *int { return &v }

func newController(t *testing.T, gen Generator, opts ...Option) *Controller {
	t.Helper()
	c, err := New(gen, Config{}, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func fill(t *testing.T, c *Controller, fields Fields) {
	t.Helper()
	for name, value := range fields {
		if err := c.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func walkToLast(t *testing.T, c *Controller) {
	t.Helper()
	for c.Snapshot().Index < len(c.Steps())-1 {
		if err := c.Next(); err != nil {
			t.Fatalf("next from %d: %v", c.Snapshot().Index, err)
		}
	}
}

func TestControllerStartsEditingFirstStep(t *testing.T) {
	c := newController(t, &fakeGenerator{})

	s := c.Snapshot()
	if s.Phase != PhaseEditing || s.Index != 0 {
		t.Fatalf("expected Editing(0), got %s(%d)", s.Phase, s.Index)
	}
	if len(s.Fields) != 7 {
		t.Fatalf("expected 7 empty fields, got %d", len(s.Fields))
	}
	for name, value := range s.Fields {
		if value != "" {
			t.Fatalf("expected %s to be empty, got %q", name, value)
		}
	}
}

func TestNextSucceedsIffStepValid(t *testing.T) {
	for i, step := range DefaultSteps()[:6] {
		c := newController(t, &fakeGenerator{})
		valid := filledFields()

		for j := 0; j < i; j++ {
			fill(t, c, Fields{DefaultSteps()[j].Field: valid[DefaultSteps()[j].Field]})
			if err := c.Next(); err != nil {
				t.Fatalf("step %d: %v", j, err)
			}
		}

		before := c.Snapshot().Fields
		err := c.Next()
		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Has(step.Field) {
			t.Fatalf("step %s: expected validation error for empty field, got %v", step.Name, err)
		}
		after := c.Snapshot()
		if after.Index != i {
			t.Fatalf("step %s: index moved to %d on failed validation", step.Name, after.Index)
		}
		if !maps.Equal(before, after.Fields) {
			t.Fatalf("step %s: fields changed by Next", step.Name)
		}
		if after.Valid[step.Field] {
			t.Fatalf("step %s: expected field flagged invalid", step.Name)
		}

		fill(t, c, Fields{step.Field: valid[step.Field]})
		if err := c.Next(); err != nil {
			t.Fatalf("step %s: expected success, got %v", step.Name, err)
		}
		if got := c.Snapshot(); got.Index != i+1 || !got.Valid[step.Field] {
			t.Fatalf("step %s: expected Editing(%d) with valid flag, got %d %v", step.Name, i+1, got.Index, got.Valid)
		}
	}
}

func TestNavigationKeepsFields(t *testing.T) {
	c := newController(t, &fakeGenerator{})
	fields := filledFields()
	fill(t, c, fields)
	walkToLast(t, c)

	if err := c.Next(); !errors.Is(err, ErrNoNextStep) {
		t.Fatalf("expected ErrNoNextStep, got %v", err)
	}

	for c.Snapshot().Index > 0 {
		if err := c.Prev(); err != nil {
			t.Fatalf("prev: %v", err)
		}
		if !maps.Equal(c.Snapshot().Fields, fields) {
			t.Fatalf("fields changed on Prev")
		}
	}

	if err := c.Prev(); !errors.Is(err, ErrNoPrevStep) {
		t.Fatalf("expected ErrNoPrevStep, got %v", err)
	}
}

func TestPrevDoesNotValidate(t *testing.T) {
	c := newController(t, &fakeGenerator{})
	fill(t, c, Fields{FieldFullName: "Ada"})
	if err := c.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	fill(t, c, Fields{FieldEmail: "not-an-email"})

	if err := c.Prev(); err != nil {
		t.Fatalf("expected unconditional Prev, got %v", err)
	}
	if got := c.Snapshot().Fields[FieldEmail]; got != "not-an-email" {
		t.Fatalf("expected invalid draft to be kept, got %q", got)
	}
}

func TestNextRecomputesScore(t *testing.T) {
	c := newController(t, &fakeGenerator{})
	fill(t, c, Fields{FieldFullName: "Ada"})

	if err := c.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := c.Snapshot().Score; got != 10 {
		t.Fatalf("expected score 10, got %d", got)
	}
}

func TestSubmitRequiresLastStep(t *testing.T) {
	gen := &fakeGenerator{}
	c := newController(t, gen)

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitUnavailable) {
		t.Fatalf("expected ErrSubmitUnavailable, got %v", err)
	}
	if gen.Calls() != 0 {
		t.Fatalf("expected no generator call")
	}
}

func TestSubmitRevalidatesEveryStep(t *testing.T) {
	gen := &fakeGenerator{}
	c := newController(t, gen)
	fill(t, c, filledFields())
	walkToLast(t, c)

	// Break an earlier step after having passed it.
	fill(t, c, Fields{FieldPhone: "0812345678"})

	_, err := c.Submit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.Has(FieldPhone) || len(verr.Fields) != 1 {
		t.Fatalf("expected only phone to be flagged, got %+v", verr.Fields)
	}
	if gen.Calls() != 0 {
		t.Fatalf("expected no network call, got %d", gen.Calls())
	}

	s := c.Snapshot()
	if s.Phase != PhaseEditing || s.Index != 6 {
		t.Fatalf("expected Editing(6), got %s(%d)", s.Phase, s.Index)
	}
	if s.Valid[FieldPhone] {
		t.Fatalf("expected phone flagged invalid")
	}
	if s.View().Message == "" {
		t.Fatalf("expected aggregate error to be surfaced")
	}
}

func TestSubmitSuccess(t *testing.T) {
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{
		Content:     "# Title\ntext",
		Score:       intPtr(88),
		Suggestions: []string{"Add numbers"},
	}}}}
	c := newController(t, gen)
	fields := filledFields()
	fields[FieldFullName] = "  Ada Lovelace  "
	fill(t, c, fields)
	walkToLast(t, c)

	doc, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Score != 88 || doc.Format != FormatMarkdown {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if gen.last.FullName != "Ada Lovelace" {
		t.Fatalf("expected trimmed profile, got %q", gen.last.FullName)
	}

	s := c.Snapshot()
	if s.Phase != PhaseResult || s.Score != 88 {
		t.Fatalf("expected Result with score 88, got %s %d", s.Phase, s.Score)
	}

	v := s.View()
	if !v.ExportEnabled || v.SubmitEnabled {
		t.Fatalf("expected export enabled and submit disabled: %+v", v)
	}

	if err := c.SetField(FieldSummary, "x"); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("expected result to be terminal, got %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitUnavailable) {
		t.Fatalf("expected resubmit to be rejected, got %v", err)
	}
}

func TestSubmitDefaultsScoreWhenMissing(t *testing.T) {
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{Content: "<h1>CV</h1>"}}}}
	c := newController(t, gen)
	fill(t, c, filledFields())
	walkToLast(t, c)

	doc, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Score != 85 {
		t.Fatalf("expected fallback score 85, got %d", doc.Score)
	}
	if doc.Format != FormatMarkup {
		t.Fatalf("expected markup format, got %s", doc.Format)
	}
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name    string
		answer  fakeAnswer
		check   func(error) bool
		message string
	}{
		{
			name:   "transport",
			answer: fakeAnswer{err: errors.New("connection refused")},
			check: func(err error) bool {
				var target *TransportError
				return errors.As(err, &target)
			},
			message: "request failed: connection refused",
		},
		{
			name:   "server error field",
			answer: fakeAnswer{gen: &Generation{Error: "quota exceeded"}},
			check: func(err error) bool {
				var target *ServerError
				return errors.As(err, &target)
			},
			message: "quota exceeded",
		},
		{
			name:   "missing content",
			answer: fakeAnswer{gen: &Generation{Score: intPtr(70)}},
			check: func(err error) bool {
				var target *ContentMissingError
				return errors.As(err, &target)
			},
			message: "CV content is missing from the server response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answers: []fakeAnswer{tt.answer}}
			c := newController(t, gen)
			fields := filledFields()
			fill(t, c, fields)
			walkToLast(t, c)

			_, err := c.Submit(context.Background())
			if !tt.check(err) {
				t.Fatalf("unexpected error type: %T %v", err, err)
			}

			s := c.Snapshot()
			if s.Phase != PhaseError {
				t.Fatalf("expected Error phase, got %s", s.Phase)
			}
			if s.View().Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, s.View().Message)
			}
			if !maps.Equal(s.Fields, fields) {
				t.Fatalf("fields changed by failed submission")
			}
			if s.Result != nil {
				t.Fatalf("expected no partial result")
			}
		})
	}
}

func TestSubmitRetryAfterError(t *testing.T) {
	gen := &fakeGenerator{answers: []fakeAnswer{
		{err: errors.New("timeout")},
		{gen: &Generation{Content: "# CV", Score: intPtr(90)}},
	}}
	c := newController(t, gen)
	fill(t, c, filledFields())
	walkToLast(t, c)

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatalf("expected first submission to fail")
	}

	doc, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed without navigation, got %v", err)
	}
	if doc.Score != 90 || gen.Calls() != 2 {
		t.Fatalf("unexpected retry result: score %d calls %d", doc.Score, gen.Calls())
	}
}

func TestEditAfterErrorReturnsToLastStep(t *testing.T) {
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{Error: "boom"}}}}
	c := newController(t, gen)
	fill(t, c, filledFields())
	walkToLast(t, c)

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}

	if err := c.SetField(FieldEducation, "MSc"); err != nil {
		t.Fatalf("expected error state to be editable, got %v", err)
	}

	s := c.Snapshot()
	if s.Phase != PhaseEditing || s.Index != 6 || s.Err != nil {
		t.Fatalf("expected clean Editing(6), got %s(%d) err=%v", s.Phase, s.Index, s.Err)
	}
}

func TestSubmitIsSingleFlight(t *testing.T) {
	gen := &fakeGenerator{
		answers: []fakeAnswer{{gen: &Generation{Content: "# CV"}}},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	c := newController(t, gen)
	fill(t, c, filledFields())
	walkToLast(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-gen.started

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	if err := c.SetField(FieldSummary, "x"); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected edits to be rejected while submitting, got %v", err)
	}
	if v := c.View(); v.SubmitEnabled {
		t.Fatalf("expected submit disabled while submitting")
	}

	close(gen.block)

	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if gen.Calls() != 1 {
		t.Fatalf("expected exactly one call, got %d", gen.Calls())
	}
}

func TestSubmitTimeout(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	c, err := New(gen, Config{SubmitTimeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fill(t, c, filledFields())
	walkToLast(t, c)

	_, err = c.Submit(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected transport error wrapping deadline, got %v", err)
	}
	if c.Snapshot().Phase != PhaseError {
		t.Fatalf("expected Error phase after timeout")
	}
}

type recordingExporter struct {
	got *Document
	err error
}

func (r *recordingExporter) Name() string { return "recording" }

func (r *recordingExporter) Export(_ context.Context, doc *Document) (string, error) {
	r.got = doc
	return "memory", r.err
}

func TestExportRequiresResult(t *testing.T) {
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{Content: "# CV", Score: intPtr(77)}}}}
	c := newController(t, gen)
	exp := &recordingExporter{}

	if _, err := c.Export(context.Background(), exp); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
	if _, err := c.Edit(); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult from Edit, got %v", err)
	}

	fill(t, c, filledFields())
	walkToLast(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	before := c.Snapshot()
	location, err := c.Export(context.Background(), exp)
	if err != nil || location != "memory" {
		t.Fatalf("unexpected export result %q %v", location, err)
	}
	if exp.got.Content != "# CV" {
		t.Fatalf("unexpected exported content %q", exp.got.Content)
	}

	exp.err = errors.New("clipboard unavailable")
	if _, err := c.Export(context.Background(), exp); err == nil {
		t.Fatalf("expected export error")
	}

	if _, err := c.Edit(); err != nil {
		t.Fatalf("edit: %v", err)
	}

	after := c.Snapshot()
	if after.Phase != before.Phase || after.Score != before.Score {
		t.Fatalf("export actions changed state")
	}
}

func TestViewNavigation(t *testing.T) {
	c := newController(t, &fakeGenerator{})

	v := c.View()
	if v.ShowPrev || !v.ShowNext || v.ShowSubmit {
		t.Fatalf("unexpected first step buttons: %+v", v)
	}
	if v.Progress != 1.0/7.0 {
		t.Fatalf("unexpected progress %v", v.Progress)
	}

	fill(t, c, filledFields())
	walkToLast(t, c)

	v = c.View()
	if !v.ShowPrev || v.ShowNext || !v.ShowSubmit || !v.SubmitEnabled {
		t.Fatalf("unexpected last step buttons: %+v", v)
	}
	if v.Progress != 1.0 {
		t.Fatalf("expected full progress, got %v", v.Progress)
	}
	if v.Feedback == "" {
		t.Fatalf("expected feedback once score is positive")
	}
}

func TestSetFieldUnknown(t *testing.T) {
	c := newController(t, &fakeGenerator{})
	if err := c.SetField("linkedin", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestNewRejectsDuplicateFields(t *testing.T) {
	steps := []Step{{Name: "a", Field: "x"}, {Name: "b", Field: "x"}}
	if _, err := New(&fakeGenerator{}, Config{Steps: steps}); err == nil {
		t.Fatalf("expected duplicate field error")
	}
	if _, err := New(nil, Config{}); err == nil {
		t.Fatalf("expected nil generator to be rejected")
	}
}

func TestControllerLogsSubmission(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{Content: "# CV", Score: intPtr(80)}}}}
	c := newController(t, gen, WithLogger(zap.New(core)))
	fill(t, c, filledFields())
	walkToLast(t, c)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries := observed.FilterMessage("cv generated").All()
	if len(entries) != 1 {
		t.Fatalf("expected one submission log, got %d", len(entries))
	}
	if entries[0].ContextMap()["outcome"] != OutcomeSuccess {
		t.Fatalf("unexpected outcome field: %v", entries[0].ContextMap())
	}
}

type countingObserver struct {
	mu          sync.Mutex
	transitions int
	outcomes    []string
	scores      []int
}

func (o *countingObserver) ObserveTransition(string, Phase, Phase, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions++
}

func (o *countingObserver) ObserveSubmission(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *countingObserver) ObserveScore(score int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scores = append(o.scores, score)
}

func TestObserverReceivesEvents(t *testing.T) {
	obs := &countingObserver{}
	gen := &fakeGenerator{answers: []fakeAnswer{{gen: &Generation{Error: "quota exceeded"}}}}
	c := newController(t, gen, WithObserver(obs))
	fill(t, c, filledFields())
	walkToLast(t, c)

	_, _ = c.Submit(context.Background())

	if obs.transitions < 7 {
		t.Fatalf("expected transitions to be observed, got %d", obs.transitions)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != OutcomeServerError {
		t.Fatalf("unexpected outcomes: %v", obs.outcomes)
	}
	if len(obs.scores) == 0 {
		t.Fatalf("expected score updates")
	}
}

package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/logger"
)

const (
	defaultSubmitTimeout = 60 * time.Second
	defaultResultScore   = 85
	maxResultScore       = 100

	opSetField = "set_field"
	opNext     = "next"
	opPrev     = "prev"
	opSubmit   = "submit"
)

// Submission outcomes reported to the Observer.
const (
	OutcomeSuccess         = "success"
	OutcomeTransportError  = "transport_error"
	OutcomeServerError     = "server_error"
	OutcomeContentMissing  = "content_missing"
	OutcomeValidationError = "validation_error"
)

// Phase is the coarse state of the wizard.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config configures a Controller. Zero values fall back to the defaults.
type Config struct {
	Steps              []Step
	Rules              Rules
	Score              ScoreConfig
	SubmitTimeout      time.Duration
	DefaultResultScore int
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition and submission logs.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer for controller events.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// Snapshot is a copy of the wizard state.
type Snapshot struct {
	Phase  Phase
	Index  int
	Total  int
	Step   Step
	Fields Fields
	Valid  map[string]bool
	Score  int
	Err    error
	Result *Document
}

// Controller owns the wizard state. All methods are safe for concurrent use;
// the Submitting phase guarantees a single generation call in flight.
type Controller struct {
	generator Generator
	steps     []Step
	rules     Rules
	scoring   ScoreConfig
	timeout   time.Duration
	fallback  int
	logger    *zap.Logger
	observer  Observer
	now       func() time.Time

	mu     sync.Mutex
	phase  Phase
	index  int
	fields Fields
	valid  map[string]bool
	score  int
	err    error
	result *Document
}

// New creates a controller in Editing(0) with empty fields.
func New(generator Generator, cfg Config, opts ...Option) (*Controller, error) {
	if generator == nil {
		return nil, errors.New("generator is required")
	}

	steps := cfg.Steps
	if len(steps) == 0 {
		steps = DefaultSteps()
	}

	c := &Controller{
		generator: generator,
		steps:     append([]Step(nil), steps...),
		rules:     cfg.Rules.WithDefaults(),
		scoring:   cfg.Score.WithDefaults(),
		timeout:   cfg.SubmitTimeout,
		fallback:  cfg.DefaultResultScore,
		logger:    zap.NewNop(),
		observer:  nopObserver{},
		now:       time.Now,
		phase:     PhaseEditing,
		fields:    make(Fields),
		valid:     make(map[string]bool),
	}

	if c.timeout <= 0 {
		c.timeout = defaultSubmitTimeout
	}
	if c.fallback <= 0 || c.fallback > maxResultScore {
		c.fallback = defaultResultScore
	}

	for _, step := range c.steps {
		if step.Field == "" {
			continue
		}
		if _, dup := c.fields[step.Field]; dup {
			return nil, fmt.Errorf("field %q is used by more than one step", step.Field)
		}
		c.fields[step.Field] = ""
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Rules returns the validation rules in use.
func (c *Controller) Rules() Rules { return c.rules }

// Steps returns a copy of the step sequence.
func (c *Controller) Steps() []Step { return append([]Step(nil), c.steps...) }

// SetField stores value for field. Editing from the Error phase returns the
// wizard to editing the last step.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fields[field]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	from := c.phase
	if err := c.enterEditing(); err != nil {
		return err
	}

	c.fields[field] = value
	if from != c.phase {
		c.transition(opSetField, from, nil)
	}

	return nil
}

// Next validates the current step and advances on success. A failed
// validation leaves the position unchanged and flags the field.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.phase
	if err := c.enterEditing(); err != nil {
		return err
	}

	if c.index >= len(c.steps)-1 {
		c.transition(opNext, from, ErrNoNextStep)
		return ErrNoNextStep
	}

	if ferr := c.validate(c.steps[c.index]); ferr != nil {
		verr := &ValidationError{Fields: []FieldError{*ferr}}
		c.transition(opNext, from, verr)
		return verr
	}

	c.index++
	c.err = nil
	c.updateScore(c.scoring.Score(c.fields))
	c.transition(opNext, from, nil)

	return nil
}

// Prev moves one step back without validating.
func (c *Controller) Prev() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.phase
	if err := c.enterEditing(); err != nil {
		return err
	}

	if c.index == 0 {
		c.transition(opPrev, from, ErrNoPrevStep)
		return ErrNoPrevStep
	}

	c.index--
	c.err = nil
	c.transition(opPrev, from, nil)

	return nil
}

// Submit re-validates every step and, when all are valid, sends the profile
// to the generator. It blocks until the generator answers or the submit
// timeout expires. On failure the returned error is one of
// *ValidationError, *TransportError, *ServerError or *ContentMissingError.
func (c *Controller) Submit(ctx context.Context) (*Document, error) {
	c.mu.Lock()

	from := c.phase
	switch c.phase {
	case PhaseSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	case PhaseResult:
		c.mu.Unlock()
		return nil, ErrSubmitUnavailable
	}

	if c.index != len(c.steps)-1 {
		c.mu.Unlock()
		return nil, ErrSubmitUnavailable
	}

	var invalid []FieldError
	for _, step := range c.steps {
		if ferr := c.validate(step); ferr != nil {
			invalid = append(invalid, *ferr)
		}
	}

	if len(invalid) > 0 {
		verr := &ValidationError{Fields: invalid}
		c.phase = PhaseEditing
		c.err = verr
		c.transition(opSubmit, from, verr)
		c.observer.ObserveSubmission(OutcomeValidationError, 0)
		c.mu.Unlock()
		return nil, verr
	}

	c.updateScore(c.scoring.Score(c.fields))
	profile := NewProfile(c.fields)
	c.phase = PhaseSubmitting
	c.err = nil
	c.transition(opSubmit, from, nil)
	c.mu.Unlock()

	started := c.now()
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	generation, genErr := c.generator.Generate(callCtx, profile)
	cancel()
	took := c.now().Sub(started)

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, outcome, err := c.settle(generation, genErr)
	c.observer.ObserveSubmission(outcome, took)

	if err != nil {
		c.phase = PhaseError
		c.err = err
		c.transition(opSubmit, PhaseSubmitting, err)
		c.logger.Info("cv generation failed",
			zap.String("outcome", outcome),
			zap.Duration("took", took),
			zap.Error(err),
		)
		return nil, err
	}

	c.phase = PhaseResult
	c.result = doc
	c.updateScore(doc.Score)
	c.transition(opSubmit, PhaseSubmitting, nil)
	c.logger.Info("cv generated",
		zap.String("outcome", outcome),
		zap.Duration("took", took),
		zap.Int("score", doc.Score),
		zap.String("format", string(doc.Format)),
	)

	return doc, nil
}

// Export hands the result document to exp. It does not change the state.
func (c *Controller) Export(ctx context.Context, exp Exporter) (string, error) {
	c.mu.Lock()
	doc := c.result
	c.mu.Unlock()

	if doc == nil {
		return "", ErrNoResult
	}

	copied := *doc
	copied.Suggestions = append([]string(nil), doc.Suggestions...)

	location, err := exp.Export(ctx, &copied)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", exp.Name(), err)
	}

	c.logger.Info("cv exported", zap.String("exporter", exp.Name()), zap.String("location", location))

	return location, nil
}

// Edit returns the submitted fields for review. It is only available once a
// document was generated and does not change the state.
func (c *Controller) Edit() (Fields, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result == nil {
		return nil, ErrNoResult
	}

	return c.fields.Clone(), nil
}

// Score recomputes the completeness score from the current fields.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.scoring.Score(c.fields)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	valid := make(map[string]bool, len(c.valid))
	for k, v := range c.valid {
		valid[k] = v
	}

	var result *Document
	if c.result != nil {
		copied := *c.result
		result = &copied
	}

	return Snapshot{
		Phase:  c.phase,
		Index:  c.index,
		Total:  len(c.steps),
		Step:   c.steps[c.index],
		Fields: c.fields.Clone(),
		Valid:  valid,
		Score:  c.score,
		Err:    c.err,
		Result: result,
	}
}

// enterEditing leaves the Error phase for editing and rejects edits in any
// phase other than Editing.
func (c *Controller) enterEditing() error {
	switch c.phase {
	case PhaseEditing:
		return nil
	case PhaseError:
		c.phase = PhaseEditing
		c.err = nil
		return nil
	case PhaseSubmitting:
		return ErrSubmitInFlight
	default:
		return ErrNotEditable
	}
}

func (c *Controller) validate(step Step) *FieldError {
	if step.Field == "" {
		return nil
	}
	ferr := c.rules.Check(step, c.fields[step.Field])
	c.valid[step.Field] = ferr == nil
	return ferr
}

func (c *Controller) settle(g *Generation, err error) (*Document, string, error) {
	if err != nil {
		return nil, OutcomeTransportError, &TransportError{Err: err}
	}
	if g == nil {
		return nil, OutcomeContentMissing, &ContentMissingError{}
	}
	if msg := strings.TrimSpace(g.Error); msg != "" {
		return nil, OutcomeServerError, &ServerError{Message: msg}
	}
	if strings.TrimSpace(g.Content) == "" {
		return nil, OutcomeContentMissing, &ContentMissingError{}
	}

	return &Document{
		Content:     g.Content,
		Format:      DetectFormat(g.Content),
		Score:       c.resultScore(g.Score),
		Suggestions: append([]string(nil), g.Suggestions...),
		CreatedAt:   c.now().UTC(),
	}, OutcomeSuccess, nil
}

func (c *Controller) resultScore(score *int) int {
	if score == nil || *score <= 0 {
		return c.fallback
	}
	return min(*score, maxResultScore)
}

func (c *Controller) updateScore(score int) {
	if score == c.score {
		return
	}
	c.score = score
	c.observer.ObserveScore(score)
}

func (c *Controller) transition(op string, from Phase, err error) {
	c.observer.ObserveTransition(op, from, c.phase, err)

	step := c.steps[c.index]
	fields := logger.WithFields(c.logger, logger.StepFields(c.index, len(c.steps), step.Name, c.phase.String())...)
	if err != nil {
		fields.Debug("wizard transition rejected",
			zap.String("operation", op),
			zap.String("from", from.String()),
			zap.Error(err),
		)
		return
	}

	fields.Debug("wizard transition",
		zap.String("operation", op),
		zap.String("from", from.String()),
		zap.Int("score", c.score),
	)
}

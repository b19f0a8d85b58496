package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/export"
	"github.com/spigell/cvwizard/internal/profile"
	"github.com/spigell/cvwizard/internal/render"
	"github.com/spigell/cvwizard/internal/ui"
	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	PromptNext      = "Next"
	PromptBack      = "Back"
	PromptSubmit    = "Generate CV"
	PromptEdit      = "Edit answer"
	PromptSaveDraft = "Save draft"
	PromptQuit      = "Quit"
	PromptRetry     = "Retry"
	PromptCopy      = "Copy to clipboard"
	PromptDownload  = "Download"
	PromptUpload    = "Upload to S3"
	PromptShow      = "Show CV"
	PromptEditCV    = "Edit details"

	defaultTerminalWidth = 80
)

var errQuit = errors.New("quit requested")

// session drives a controller from promptui prompts. Every menu is derived
// from the controller view.
type session struct {
	ctx     context.Context
	logger  *zap.Logger
	config  *Config
	out     io.Writer
	width   int
	c       *wizard.Controller
	rebuild func(wizard.Fields) (*wizard.Controller, error)
}

func (s *session) run() error {
	for {
		v := s.c.View()

		var err error
		switch v.Phase {
		case wizard.PhaseEditing:
			err = s.edit(v)
		case wizard.PhaseResult:
			err = s.result()
		case wizard.PhaseError:
			err = s.failed(v)
		default:
			err = fmt.Errorf("unexpected wizard phase %s", v.Phase)
		}

		if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			s.logger.Info("exiting", zap.String("reason", "quit requested"))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) edit(v wizard.View) error {
	fmt.Fprint(s.out, "\n"+ui.Step(v, s.width))

	input := promptui.Prompt{
		Label:     v.Step.Label,
		Default:   v.Value,
		AllowEdit: true,
	}
	value, err := input.Run()
	if err != nil {
		return err
	}
	if err := s.c.SetField(v.Step.Field, value); err != nil {
		return err
	}

	v = s.c.View()
	items := make([]string, 0, 6)
	if v.ShowNext {
		items = append(items, PromptNext)
	}
	if v.ShowSubmit && v.SubmitEnabled {
		items = append(items, PromptSubmit)
	}
	if v.ShowPrev {
		items = append(items, PromptBack)
	}
	items = append(items, PromptEdit, PromptSaveDraft, PromptQuit)

	action, err := s.choose(fmt.Sprintf("Completeness %d%%", s.c.Score()), items)
	if err != nil {
		return err
	}

	switch action {
	case PromptNext:
		s.warn(s.c.Next())
	case PromptBack:
		s.warn(s.c.Prev())
	case PromptSubmit:
		s.submit()
	case PromptEdit:
	case PromptSaveDraft:
		filename, err := profile.SaveDraft("", s.c.Snapshot().Fields)
		if err != nil {
			return fmt.Errorf("save draft: %w", err)
		}
		s.logger.Info("draft saved", zap.String("filename", filename))
	case PromptQuit:
		return errQuit
	}

	return nil
}

func (s *session) submit() {
	fmt.Fprintln(s.out, "Generating your CV...")

	doc, err := s.c.Submit(s.ctx)
	if err != nil {
		s.warn(err)
		return
	}

	s.show(doc)
}

func (s *session) show(doc *wizard.Document) {
	text, err := render.Terminal(doc.Content, s.width)
	if err != nil {
		s.logger.Warn("rendering the cv", zap.Error(err))
		text = doc.Content
	}
	fmt.Fprintln(s.out, text)
	fmt.Fprintln(s.out, ui.Result(doc))
}

func (s *session) result() error {
	items := []string{PromptCopy, PromptDownload}
	if s.config.Export.S3 != nil {
		items = append(items, PromptUpload)
	}
	items = append(items, PromptShow, PromptEditCV, PromptQuit)

	action, err := s.choose("What next?", items)
	if err != nil {
		return err
	}

	switch action {
	case PromptCopy:
		msg, err := s.c.Export(s.ctx, export.NewClipboard())
		if err != nil {
			s.warn(err)
			return nil
		}
		return ignoreCancel(ui.Notice(s.ctx, s.out, msg, ui.NoticeDuration))
	case PromptDownload:
		s.exportTo(exportFile)
	case PromptUpload:
		s.exportTo(exportS3)
	case PromptShow:
		s.show(s.c.Snapshot().Result)
	case PromptEditCV:
		fields, err := s.c.Edit()
		if err != nil {
			return err
		}
		c, err := s.rebuild(fields)
		if err != nil {
			return err
		}
		s.c = c
	case PromptQuit:
		return errQuit
	}

	return nil
}

func (s *session) exportTo(target string) {
	exp, err := newExporter(s.ctx, target, s.config.Export)
	if err != nil {
		s.warn(err)
		return
	}

	location, err := s.c.Export(s.ctx, exp)
	if err != nil {
		s.warn(err)
		return
	}
	fmt.Fprintf(s.out, "CV saved to %s\n", location)
}

func (s *session) failed(v wizard.View) error {
	fmt.Fprintln(s.out, ui.Error(v.Message))

	action, err := s.choose("Generation failed", []string{PromptRetry, PromptEdit, PromptQuit})
	if err != nil {
		return err
	}

	switch action {
	case PromptRetry:
		s.submit()
		return nil
	case PromptEdit:
		// Re-setting the current value is enough to leave the Error phase.
		return s.c.SetField(v.Step.Field, v.Value)
	default:
		return errQuit
	}
}

func (s *session) choose(label string, items []string) (string, error) {
	menu := promptui.Select{
		Label: label,
		Items: items,
	}
	_, action, err := menu.Run()
	return action, err
}

func (s *session) warn(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(s.out, ui.Error(err.Error()))
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return errQuit
	}
	return err
}

func terminalWidth() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return defaultTerminalWidth
}

package wizard

// View is the presentation derived from the state. Renderers read it and
// never hold state of their own.
type View struct {
	Phase         Phase
	Index         int
	Total         int
	Step          Step
	Value         string
	Invalid       bool
	Progress      float64
	ShowPrev      bool
	ShowNext      bool
	ShowSubmit    bool
	SubmitEnabled bool
	ExportEnabled bool
	Score         int
	Feedback      string
	Message       string
}

// View derives the current presentation.
func (c *Controller) View() View {
	s := c.Snapshot()
	return s.View()
}

// View derives the presentation of the snapshot.
func (s Snapshot) View() View {
	last := s.Index == s.Total-1

	v := View{
		Phase:         s.Phase,
		Index:         s.Index,
		Total:         s.Total,
		Step:          s.Step,
		Value:         s.Fields[s.Step.Field],
		Progress:      float64(s.Index+1) / float64(s.Total),
		ShowPrev:      s.Index > 0,
		ShowNext:      !last,
		ShowSubmit:    last,
		SubmitEnabled: last && (s.Phase == PhaseEditing || s.Phase == PhaseError),
		ExportEnabled: s.Phase == PhaseResult,
		Score:         s.Score,
	}

	if s.Step.Field != "" {
		if ok, checked := s.Valid[s.Step.Field]; checked && !ok {
			v.Invalid = true
		}
	}

	if s.Score > 0 {
		v.Feedback = Feedback(s.Score)
	}

	if s.Err != nil {
		v.Message = s.Err.Error()
	}

	return v
}

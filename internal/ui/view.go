// Package ui renders wizard views for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	defaultBarWidth = 40
	minBarWidth     = 10
)

// ProgressBar renders progress in [0, 1] as a bar with a percentage.
func ProgressBar(progress float64, width int) string {
	barWidth := defaultBarWidth
	if width > 0 && width < 80 {
		barWidth = max(width-30, minBarWidth)
	}

	progress = min(max(progress, 0), 1)
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

// ScorePanel renders the completeness score with its feedback line.
func ScorePanel(score int, feedback string) string {
	value := titleStyle.Foreground(scoreColor(score)).Render(fmt.Sprintf("%d%%", score))
	body := "Score: " + value
	if feedback != "" {
		body += "\n" + dimStyle.Render(feedback)
	}
	return panelStyle.BorderForeground(scoreColor(score)).Render(body)
}

// Step renders the header shown above a step prompt.
func Step(v wizard.View, width int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("Step %d of %d", v.Index+1, v.Total)), titleStyle.Render(v.Step.Label))
	b.WriteString(ProgressBar(v.Progress, width))
	b.WriteString("\n")

	if v.Message != "" {
		b.WriteString(errorStyle.Render(v.Message))
		b.WriteString("\n")
	} else if v.Invalid {
		b.WriteString(errorStyle.Render("This field needs attention"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result renders the score panel and the improvement suggestions of doc.
func Result(doc *wizard.Document) string {
	if doc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(ScorePanel(doc.Score, wizard.Feedback(doc.Score)))
	b.WriteString("\n")

	if len(doc.Suggestions) > 0 {
		b.WriteString(labelStyle.Render("Suggestions"))
		b.WriteString("\n")
		for _, s := range doc.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}

	return b.String()
}

// Error renders msg as an inline error line.
func Error(msg string) string {
	return errorStyle.Render(msg)
}

package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// displayedStages are shown in the spinner line, in order
var displayedStages = []usecase.ExecutionStage{
	usecase.StageResolving,
	usecase.StageSubmitting,
	usecase.StageConfirming,
}

// SpinnerProgressReporter renders deployment stages with a spinner on stderr
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
	title   cases.Caser
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo creates a reporter writing to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
		title:   cases.Title(language.English),
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() && r.stages[n-1].Stage != event.Stage {
		r.stages[n-1].EndTime = time.Now()
	}
	if n := len(r.stages); n == 0 || r.stages[n-1].Stage != event.Stage {
		r.stages = append(r.stages, stageInfo{Stage: event.Stage, StartTime: time.Now()})
	}
	r.stages[len(r.stages)-1].Message = event.Message

	switch event.Stage {
	case usecase.StageCompleted, usecase.StageFailed:
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	r.spinner.Lock()
	r.spinner.Suffix = " " + r.display()
	r.spinner.Unlock()
	if event.Spinner && !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// printPaused prints a line without interleaving with the spinner
func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// display renders the stage trail, e.g. "✓ Resolving → ● Submitting (2s)"
func (r *SpinnerProgressReporter) display() string {
	var parts []string
	for _, stage := range r.stages {
		if !lo.Contains(displayedStages, stage.Stage) {
			continue
		}

		name := r.title.String(string(stage.Stage))
		if stage.EndTime.IsZero() {
			parts = append(parts, fmt.Sprintf("● %s (%s)",
				color.New(color.FgYellow).Sprint(name),
				time.Since(stage.StartTime).Round(time.Second)))
			continue
		}
		parts = append(parts, fmt.Sprintf("✓ %s (%s)",
			color.New(color.FgGreen).Sprint(name),
			stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)))
	}

	display := strings.Join(parts, " → ")
	if n := len(r.stages); n > 0 && r.stages[n-1].Message != "" {
		display += " " + color.New(color.Faint).Sprint(r.stages[n-1].Message)
	}
	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)

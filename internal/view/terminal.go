// Package view implements the controller's view handles for the terminal
// and for the web page.
package view

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"booksearch/internal/render"
	"booksearch/internal/search"
)

const spinnerInterval = 100 * time.Millisecond

// Terminal drives a line-oriented terminal. Results and errors go to out;
// the loading indicator goes to status.
type Terminal struct {
	out     io.Writer
	status  io.Writer
	animate bool

	mu      sync.Mutex
	enabled bool
	label   string
	stop    chan struct{}
	done    chan struct{}
}

// NewTerminal builds terminal handles. With animate unset (status is not a
// TTY) the loading text is printed once instead of spinning.
func NewTerminal(out, status io.Writer, animate bool) *Terminal {
	return &Terminal{out: out, status: status, animate: animate, enabled: true}
}

// Handles exposes t as every view handle.
func (t *Terminal) Handles() search.Handles {
	return search.Handles{Submit: t, Loading: t, Error: t, Results: t}
}

func (t *Terminal) SetSubmit(enabled bool, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled, t.label = enabled, label
}

// Prompt is the shell prompt for the current submit state.
func (t *Terminal) Prompt() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label + "> "
}

// Ready reports whether a new submission is accepted.
func (t *Terminal) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *Terminal) SetLoading(visible bool, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !visible {
		t.stopSpinner()
		return
	}
	if !t.animate {
		fmt.Fprintln(t.status, text)
		return
	}
	if t.stop != nil {
		return
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(t.status),
		progressbar.OptionSetDescription(text),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go spin(bar, t.stop, t.done)
}

// stopSpinner must be called with mu held.
func (t *Terminal) stopSpinner() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop, t.done = nil, nil
}

func spin(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			_ = bar.Finish()
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

func (t *Terminal) SetError(text string) {
	if text == "" {
		return
	}
	if err := render.WriteError(t.out, text); err != nil {
		logrus.WithError(err).Warn("terminal.write_error")
	}
}

func (t *Terminal) Replace(set search.ResultSet) {
	if err := render.WriteResults(t.out, set); err != nil {
		logrus.WithError(err).Warn("terminal.write_results")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"booksearch/internal/search"
	"booksearch/internal/view"
)

// shell reads one submission per line until exit, quit, Ctrl-C or EOF.
// Each line is searched to completion before the next prompt.
func shell(ctx context.Context, c *search.Controller, t *view.Terminal, historyFile string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer saveHistory(line, historyFile)
	}

	fmt.Println("Booksearch interactive shell")
	for {
		input, err := line.Prompt(t.Prompt())
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		line.AppendHistory(input)

		c.SubmitQuery(ctx, input)
		c.Wait()
	}
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		logrus.WithError(err).Warn("history not saved")
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		logrus.WithError(err).Warn("history not saved")
	}
}

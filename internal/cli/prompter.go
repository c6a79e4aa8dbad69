package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Prompter implements the blocking interactive prompts for the budget shell.
// Every prompt suspends until the user supplies an explicit response; there
// are no timeouts and no defaults.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question and blocks for an explicit answer. Anything
// other than yes/y or no/n re-prompts: an unrecognized response never counts
// as either answer.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		if _, err := fmt.Fprintf(p.writer, "%s ", FormatPrompt(question+" (yes/no)")); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("input terminated")
			}
			return false, err
		}

		switch strings.ToLower(input) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Please answer yes or no.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// ReadLine prompts for a free-form line of input.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprintf(p.writer, "%s ", FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input terminated")
		}
		return "", err
	}
	return input, nil
}

// ReadDecimal prompts until the user supplies a parseable amount.
func (p *Prompter) ReadDecimal(ctx context.Context, prompt string) (decimal.Decimal, error) {
	for {
		input, err := p.ReadLine(ctx, prompt)
		if err != nil {
			return decimal.Decimal{}, err
		}

		amount, err := decimal.NewFromString(input)
		if err != nil {
			if _, err := fmt.Fprintln(p.writer, FormatError("Please enter a valid number.")); err != nil {
				slog.Warn("Failed to write error message", "error", err)
			}
			continue
		}
		return amount, nil
	}
}

// ReadChoice prompts until the user picks one of the valid choices.
func (p *Prompter) ReadChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.ReadLine(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

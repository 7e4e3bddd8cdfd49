package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/edit"
)

// ErrEditCancelled is returned when the user abandons a quantity edit.
var ErrEditCancelled = errors.New("edit canceled")

// QuantityPrompter drives an edit session from line-based terminal input.
//
// Each line is one command: "+" and "-" step the quantity, a number replaces
// it, "s" or an empty line saves and "c" or "q" cancels. A failed save keeps
// the prompt open so the user can retry or cancel.
type QuantityPrompter struct {
	writer io.Writer
	reader *NonBlockingReader
	step   float64
}

// NewQuantityPrompter creates a prompter reading commands from reader. The
// step is the amount added or removed by "+" and "-".
func NewQuantityPrompter(reader io.Reader, writer io.Writer, step float64) *QuantityPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	if step <= 0 {
		step = 1
	}
	return &QuantityPrompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
		step:   step,
	}
}

// Run reads commands until the session opened on editor is committed or
// cancelled.
func (p *QuantityPrompter) Run(ctx context.Context, editor *edit.Editor) (edit.Outcome, error) {
	if _, ok := editor.View(); !ok {
		return edit.OutcomeNoop, edit.ErrNoActiveSession
	}

	p.printf("%s\n", SubtleStyle.Render(fmt.Sprintf("+/- change by %s, type a number, enter to save, c to cancel", FormatQuantity(p.step, ""))))
	for {
		p.render(editor)

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			if cancelErr := editor.Cancel(); cancelErr != nil {
				slog.Warn("Failed to cancel edit session", "error", cancelErr)
			}
			if errors.Is(err, io.EOF) {
				return edit.OutcomeNoop, ErrEditCancelled
			}
			return edit.OutcomeNoop, err
		}

		outcome, done, err := p.handle(ctx, editor, line)
		if done {
			return outcome, err
		}
		if err != nil {
			p.printf("%s\n", FormatError(DescribeError(err)))
		}
	}
}

func (p *QuantityPrompter) handle(ctx context.Context, editor *edit.Editor, line string) (edit.Outcome, bool, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "+":
		_, err := editor.Adjust(p.step)
		return edit.OutcomeNoop, false, err
	case "-":
		_, err := editor.Adjust(-p.step)
		return edit.OutcomeNoop, false, err
	case "", "s", "save":
		outcome, err := editor.Commit(ctx)
		if err != nil {
			return outcome, false, err
		}
		return outcome, true, nil
	case "c", "q", "cancel":
		if err := editor.Cancel(); err != nil {
			return edit.OutcomeNoop, false, err
		}
		return edit.OutcomeNoop, true, ErrEditCancelled
	default:
		return edit.OutcomeNoop, false, editor.SetInput(line)
	}
}

func (p *QuantityPrompter) render(editor *edit.Editor) {
	view, ok := editor.View()
	if !ok {
		return
	}
	line := fmt.Sprintf("%s: %s → %s",
		BoldStyle.Render(view.Item.Name),
		FormatQuantity(view.Item.Quantity, view.Item.Unit),
		FormatQuantity(view.Working, view.Item.Unit))
	if view.Working == 0 {
		line += " " + WarningStyle.Render("(will be removed)")
	}
	if view.Status == edit.StatusError {
		line += " " + ErrorStyle.Render("[save failed]")
	}
	p.printf("%s\n%s", line, FormatPrompt("Quantity"))
}

func (p *QuantityPrompter) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.writer, format, args...); err != nil {
		slog.Warn("Failed to write prompt", "error", err)
	}
}

// DescribeError returns the message shown to the user for a failed edit command.
func DescribeError(err error) string {
	var commitErr *common.CommitError
	if errors.As(err, &commitErr) {
		return commitErr.UserMessage
	}
	var validation *common.ValidationError
	if errors.As(err, &validation) {
		return "Invalid quantity: " + validation.Reason
	}
	return err.Error()
}

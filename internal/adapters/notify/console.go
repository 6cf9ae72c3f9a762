package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ConsoleNotifier implements secondary.Notifier by printing to a
// terminal writer.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Notify prints the reminder.
func (n *ConsoleNotifier) Notify(ctx context.Context, title, body string) error {
	heading := color.New(color.FgHiYellow).Sprintf("⏰ %s", title)
	_, err := fmt.Fprintf(n.out, "%s\n   %s\n", heading, body)
	return err
}

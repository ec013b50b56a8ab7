package handler

import (
	"fmt"
	"io"
)

// ConsoleNotifier presents crash notices on a terminal stream.
// The default notification presenter for headless and CLI contexts.
type ConsoleNotifier struct {
	w io.Writer
}

// NewConsoleNotifier creates a notifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(title, message string) {
	fmt.Fprintf(n.w, "\n*** %s ***\n%s\n", title, message)
}

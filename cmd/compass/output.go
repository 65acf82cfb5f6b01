package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kalambet/careercompass/internal/notify"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

// printNotifications renders toasts the server attached to a response.
// Destructive ones go out in red.
func printNotifications(w io.Writer, notes []notify.Notification) {
	for _, n := range notes {
		line := n.Title
		if n.Description != "" {
			line += ": " + n.Description
		}
		if n.Variant == notify.VariantDestructive {
			fmt.Fprintln(w, colorize(colorRed, "✗ "+line))
			continue
		}
		fmt.Fprintln(w, colorize(colorCyan, "• "+line))
	}
}

// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#5F87FF") // Blue
	accentColor  = lipgloss.Color("#AF87FF") // Violet
	successColor = lipgloss.Color("#00AA00") // Green
	errorColor   = lipgloss.Color("#D70000") // Red
	warnColor    = lipgloss.Color("#FFAF00") // Amber
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)
)

// Status messages go to stderr so that stdout stays free for audio.
var out io.Writer = os.Stderr

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Fprintln(out, TitleStyle.Render("dsdplay"))
	fmt.Fprintf(out, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(out, "%s %s\n", ErrorStyle.Render("ERROR:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(out, "%s %s\n", WarningStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key/value line
func PrintInfo(key, value string) {
	fmt.Fprintf(out, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// FormatRate formats a sample rate in kHz, naming the common DSD rates.
func FormatRate(hz int) string {
	switch hz {
	case 64 * 44100:
		return "DSD64 (2.8224 MHz)"
	case 128 * 44100:
		return "DSD128 (5.6448 MHz)"
	case 256 * 44100:
		return "DSD256 (11.2896 MHz)"
	case 512 * 44100:
		return "DSD512 (22.5792 MHz)"
	}
	return fmt.Sprintf("%g kHz", float64(hz)/1000)
}

// FormatPosition formats a millisecond position as mm:ss.fff.
func FormatPosition(ms uint64) string {
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

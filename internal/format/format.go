package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")) // White
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")) // Blue
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	grayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray
)

// colorsEnabled controls whether output is colorized.
var colorsEnabled = true

// SetColorsEnabled enables or disables color output.
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

func styled(s lipgloss.Style, text string) string {
	if !colorsEnabled {
		return text
	}
	return s.Render(text)
}

// TemplateLine is one row of the template listing.
type TemplateLine struct {
	Name        string
	Description string
	Destination string
}

// FormatTemplates formats templates as "name  description (destination)" lines.
func FormatTemplates(templates []TemplateLine) string {
	if len(templates) == 0 {
		return ""
	}

	width := 0
	for _, t := range templates {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}

	var sb strings.Builder
	for _, t := range templates {
		pad := strings.Repeat(" ", width-len(t.Name)+2)
		sb.WriteString(styled(keyStyle, t.Name) + pad + styled(valueStyle, t.Description))
		if t.Destination != "" {
			sb.WriteString(" " + styled(pathStyle, "("+t.Destination+")"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSettings formats settings as colorized key: value lines sorted by key.
func FormatSettings(settings map[string]any) string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(styled(keyStyle, k) + ": " + styled(valueStyle, fmt.Sprint(settings[k])) + "\n")
	}
	return sb.String()
}

// Success formats a success message with a green checkmark prefix.
func Success(msg string) string {
	return styled(successStyle, "✓ ") + msg
}

// Error formats an error message with a red X prefix.
func Error(msg string) string {
	return styled(errorStyle, "✗ ") + msg
}

// Warning formats a warning message with a yellow warning prefix.
func Warning(msg string) string {
	return styled(warningStyle, "⚠ ") + msg
}

// Gray returns gray-styled text.
func Gray(text string) string {
	return styled(grayStyle, text)
}

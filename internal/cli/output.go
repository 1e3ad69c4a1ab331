package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	OKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Render writes v as JSON or YAML, or calls text for the human format.
func (c *Context) Render(format string, v any, text func(w io.Writer) error) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(c.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputText, "":
		return text(c.Out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Field renders an aligned "label: value" line.
func Field(label string, value any) string {
	return fmt.Sprintf("  %s %s", LabelStyle.Render(fmt.Sprintf("%-16s", label+":")), ValueStyle.Render(fmt.Sprint(value)))
}

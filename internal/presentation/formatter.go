package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be text, json or yaml)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// FormatRegistrations writes the registrations in the formatter's format.
func (f *Formatter) FormatRegistrations(registrations []RegistrationDTO) error {
	switch f.format {
	case FormatJSON:
		return f.json(registrations)
	case FormatYAML:
		return f.yaml(registrations)
	default:
		return f.table(registrations)
	}
}

// FormatResult writes the outcome of a shown popup.
func (f *Formatter) FormatResult(name string, result any) error {
	payload := map[string]any{"popup": name, "result": result}
	switch f.format {
	case FormatJSON:
		return f.json(payload)
	case FormatYAML:
		return f.yaml(payload)
	default:
		_, err := fmt.Fprintf(f.writer, "%v\n", result)
		return err
	}
}

func (f *Formatter) json(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) yaml(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func (f *Formatter) table(registrations []RegistrationDTO) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "VIEW MODEL", "VIEW", "ARGUMENTS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, r := range registrations {
		t.Row(r.Name, r.ViewModel, r.View, strings.Join(r.Arguments, ", "))
	}
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	YAML Format = "yaml"
	Text Format = "text"
)

// ParseFormat accepts yaml or text in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case YAML, Text:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be 'yaml' or 'text'", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// WriteFacts renders f to w.
func WriteFacts(w io.Writer, format Format, f *Facts) error {
	if format == YAML {
		return writeYAML(w, f)
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%s)", f.Target, f.View)))
	if len(f.Facts) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no facts"))
		return nil
	}
	for _, e := range f.Facts {
		fmt.Fprintf(w, "  %s %s\n", keyStyle.Render(e.Key), mutedStyle.Render("["+e.Order+"]"))
		for _, v := range e.Values {
			fmt.Fprintf(w, "    %s\n", v)
		}
	}
	return nil
}

// WriteKeys renders the key catalog to w.
func WriteKeys(w io.Writer, format Format, keys []KeyInfo) error {
	if format == YAML {
		return writeYAML(w, keys)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tORDER\tEXPORT")
	for _, k := range keys {
		export := k.Export
		if export == "" {
			export = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Name, k.Type, k.Order, export)
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

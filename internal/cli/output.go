package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/hashicorp/go-multierror"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatTemplate = "template"
)

// Result is the record printed for a match.
type Result struct {
	Path     string   `json:"path"`
	Dir      string   `json:"dir"`
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// validateFormat reports every problem with --format and --template at once.
func validateFormat(format, tmpl string) error {
	var result *multierror.Error

	switch format {
	case formatText, formatJSON:
	case formatTemplate:
		if strings.TrimSpace(tmpl) == "" {
			result = multierror.Append(result, errors.New("--template is required with --format template"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown format %q (expected text, json or template)", format))
	}

	if strings.TrimSpace(tmpl) != "" {
		if _, err := parseTemplate(tmpl); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func parseTemplate(tmpl string) (*template.Template, error) {
	t, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return t, nil
}

func writeResult(w io.Writer, format, tmpl string, result Result) error {
	return render(w, format, tmpl, result, func() string {
		return result.Path + "\n"
	})
}

// render writes data as JSON, through a sprig-enabled template, or as the
// plain text produced by text.
func render(w io.Writer, format, tmpl string, data interface{}, text func() string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case formatTemplate:
		t, err := parseTemplate(tmpl)
		if err != nil {
			return err
		}
		var sb strings.Builder
		if err := t.Execute(&sb, data); err != nil {
			return fmt.Errorf("failed to render template: %w", err)
		}
		out := sb.String()
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err = io.WriteString(w, out)
		return err

	default:
		_, err := io.WriteString(w, text())
		return err
	}
}

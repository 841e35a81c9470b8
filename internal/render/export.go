// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quotewise/pkg/types"
)

// Format is an export file format, named by its file extension.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatMarkdown, FormatYAML, FormatJSON}

// ParseFormat accepts a format name or common alias ("markdown", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q: use md, yaml, or json", s)
}

// FileName returns the export file name for q, Quotation_<number>.<ext>.
func FileName(q types.Quote, format Format) string {
	number := q.Number
	if number == "" {
		number = "draft"
	}
	return fmt.Sprintf("Quotation_%s.%s", number, format)
}

// Encode returns q in format. Markdown uses the company details of cfg.
func Encode(q types.Quote, format Format, cfg types.QuoteConfig) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := NewMarkdown(cfg).Render(&buf, q); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(q)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Export writes q to dir in format and returns the file path. The
// directory is created if needed; an existing file is overwritten.
func Export(q types.Quote, dir string, format Format, cfg types.QuoteConfig) (string, error) {
	data, err := Encode(q, format, cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(q, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

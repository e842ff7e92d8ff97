package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Output formats for ls.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var validFormats = []string{FormatText, FormatJSON, FormatYAML}

func writeItems(w io.Writer, format string, items []model.Item, theme ui.Theme, group bool) error {
	if items == nil {
		items = []model.Item{}
	}
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, theme.RenderList(items, group))
		return err
	}
}

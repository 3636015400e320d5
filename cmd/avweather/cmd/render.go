package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"avweather/internal/config"
)

// render writes v as a single JSON or YAML document.
func render(w io.Writer, v any, out config.OutputConfig) error {
	if out.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("YAML encode error: %w", err)
		}
		return enc.Close()
	}

	var (
		b   []byte
		err error
	)
	if out.Pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("JSON encode error: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

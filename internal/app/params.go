package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
	"gopkg.in/yaml.v3"
)

// LoadParams reads business parameters for a call from a YAML or JSON file.
// An empty path yields no parameters.
func LoadParams(path string) (pdd.Params, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return pdd.Params{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params file: %w", err)
	}
	return ParseParams(raw, filepath.Ext(path))
}

// ParseParams decodes a params document. ext selects the decoder; an empty
// ext tries each known format in turn.
func ParseParams(data []byte, ext string) (pdd.Params, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "json", ext: ".json", fn: unmarshalJSON},
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var m map[string]any
		if err := d.fn(data, &m); err != nil {
			errs = append(errs, fmt.Errorf("decode %s params: %w", d.name, err))
			continue
		}
		return pdd.ParamsOf(m), nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("params file extension %q not recognized (expected YAML or JSON)", ext)
	}
	return nil, errors.Join(errs...)
}

type unmarshalFn func([]byte, any) error

// unmarshalJSON keeps numbers exact so 64-bit ids sign correctly.
func unmarshalJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

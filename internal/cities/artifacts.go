package cities

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cities-cli/internal/geonames"
)

// encodeJSON renders v with two-space indentation, no HTML escaping, and no
// trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeJSON replaces the file at path with the JSON encoding of v, creating
// parent directories as needed.
func writeJSON(path string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return eris.Wrapf(err, "cities: encode %s", filepath.Base(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "cities: create dir for %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "cities: write %s", filepath.Base(path))
	}
	return nil
}

// ReadRecords decodes the full record artifact written by Build.
func ReadRecords(layout Layout) ([]geonames.Record, error) {
	data, err := os.ReadFile(layout.RecordsFile())
	if err != nil {
		return nil, eris.Wrap(err, "cities: read records")
	}
	var records []geonames.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "cities: decode records")
	}
	return records, nil
}

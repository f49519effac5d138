package meta

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadMetadata decodes an introspection payload from r.
//
// The input must be a JSON object with a "tables" and a "columns" array;
// "indexes", "primary_keys", and "views" are optional. Shape validation
// beyond JSON well-formedness is the import surface's concern: a table with
// zero matching columns is a valid payload.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var md Metadata
	if err := json.NewDecoder(r).Decode(&md); err != nil {
		return Metadata{}, fmt.Errorf("decode: %w", err)
	}
	return md, nil
}

// ReadMetadataFile reads an introspection payload from a JSON file.
func ReadMetadataFile(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMetadata(f)
}

// WriteMetadata encodes an introspection payload as indented JSON to w.
// Mostly useful for fixtures and for echoing payloads in debug tooling.
func WriteMetadata(md Metadata, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(md); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

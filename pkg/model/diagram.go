package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Diagram - Canonical Serialization Format
// =============================================================================

// Diagram is the canonical serialization format for a positioned diagram:
// the tables produced by the normalizer (with layout coordinates applied)
// plus the relationships between them.
//
// The format is designed for round-trip fidelity: import → arrange →
// export → re-import produces identical results.
type Diagram struct {
	Name          string         `json:"name,omitempty"`
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
}

// Table returns the table with the given ID and true, or nil and false.
func (d *Diagram) Table(id string) (*Table, bool) {
	for i := range d.Tables {
		if d.Tables[i].ID == id {
			return &d.Tables[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the diagram.
func (d Diagram) Clone() Diagram {
	return Diagram{
		Name:          d.Name,
		Tables:        CloneTables(d.Tables),
		Relationships: CloneRelationships(d.Relationships),
	}
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalDiagram serializes a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDiagram deserializes JSON bytes into a Diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	return d, nil
}

// WriteDiagram writes a Diagram as indented JSON to w.
func WriteDiagram(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDiagram decodes a JSON diagram from r.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// WriteDiagramFile writes a Diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDiagram(d, f)
}

// ReadDiagramFile reads a Diagram from a JSON file.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDiagram(f)
}

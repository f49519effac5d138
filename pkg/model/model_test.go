package model

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleDiagram() Diagram {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Diagram{
		Name: "shop",
		Tables: []Table{
			{
				ID: "t1", Name: "users", X: 100, Y: 100, Color: "#f03c3c", CreatedAt: now,
				Fields: []Field{
					{ID: "f1", Name: "id", Type: FieldType{ID: "bigint", Name: "BIGINT"}, PrimaryKey: true, CreatedAt: now},
					{ID: "f2", Name: "email", Type: FieldType{ID: "varchar", Name: "VARCHAR"}, Unique: true, CreatedAt: now},
				},
				Indexes: []Index{
					{ID: "i1", Name: "ux_email", Unique: true, FieldIDs: []string{"f2"}, CreatedAt: now},
				},
			},
			{ID: "t2", Name: "orders", X: 480, Y: 100, CreatedAt: now},
		},
		Relationships: []Relationship{
			{
				ID: "r1", SourceTableID: "t2", TargetTableID: "t1",
				SourceCardinality: CardinalityMany, TargetCardinality: CardinalityOne,
			},
		},
	}
}

func TestTableClone(t *testing.T) {
	orig := sampleDiagram().Tables[0]
	clone := orig.Clone()

	clone.Fields[0].Name = "mutated"
	clone.Indexes[0].FieldIDs[0] = "mutated"

	if orig.Fields[0].Name != "id" {
		t.Error("Clone shares the fields slice with the original")
	}
	if orig.Indexes[0].FieldIDs[0] != "f2" {
		t.Error("Clone shares index field IDs with the original")
	}
}

func TestTableLookups(t *testing.T) {
	tbl := sampleDiagram().Tables[0]

	if f, ok := tbl.Field("f2"); !ok || f.Name != "email" {
		t.Errorf("Field(f2) = %v, %v", f, ok)
	}
	if _, ok := tbl.Field("nope"); ok {
		t.Error("Field(nope) should not be found")
	}
	if f, ok := tbl.FieldByName("id"); !ok || !f.PrimaryKey {
		t.Errorf("FieldByName(id) = %v, %v", f, ok)
	}

	pks := tbl.PrimaryKeys()
	if len(pks) != 1 || pks[0].ID != "f1" {
		t.Errorf("PrimaryKeys() = %v", pks)
	}
}

func TestDiagramRoundTrip(t *testing.T) {
	d := sampleDiagram()

	data, err := MarshalDiagram(d)
	if err != nil {
		t.Fatalf("MarshalDiagram: %v", err)
	}

	back, err := UnmarshalDiagram(data)
	if err != nil {
		t.Fatalf("UnmarshalDiagram: %v", err)
	}

	if len(back.Tables) != 2 || len(back.Relationships) != 1 {
		t.Fatalf("round trip lost entities: %d tables, %d relationships",
			len(back.Tables), len(back.Relationships))
	}

	users, ok := back.Table("t1")
	if !ok {
		t.Fatal("table t1 not found after round trip")
	}
	if users.X != 100 || users.Fields[1].Unique != true {
		t.Error("round trip altered positions or flags")
	}

	// Optional attributes stay absent in the wire format.
	if strings.Contains(string(data), `"length"`) {
		t.Error("absent length serialized")
	}
}

func TestDiagramFileRoundTrip(t *testing.T) {
	d := sampleDiagram()
	path := filepath.Join(t.TempDir(), "diagram.json")

	if err := WriteDiagramFile(d, path); err != nil {
		t.Fatalf("WriteDiagramFile: %v", err)
	}

	back, err := ReadDiagramFile(path)
	if err != nil {
		t.Fatalf("ReadDiagramFile: %v", err)
	}
	if back.Name != "shop" || len(back.Tables) != 2 {
		t.Errorf("round trip = %q with %d tables", back.Name, len(back.Tables))
	}
}

func TestReadDiagramInvalid(t *testing.T) {
	_, err := ReadDiagram(strings.NewReader("{not json"))
	if err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDiagramClone(t *testing.T) {
	d := sampleDiagram()
	clone := d.Clone()

	clone.Tables[0].Fields[0].Name = "mutated"
	if d.Tables[0].Fields[0].Name != "id" {
		t.Error("Diagram.Clone shares table fields with the original")
	}
}

package pipeline

import (
	"testing"

	"pacesetter/internal"
)

func TestScanAnchorsRightward(t *testing.T) {
	rows := [][]string{
		{"Annual energy consumption", "409.6 kWh"},
		{"Transport CO2", "", "12.5 kg"},
	}
	hits := ScanAnchors(rows, "Specs")

	use, ok := hits[internal.FieldUseKWhPerYear]
	if !ok {
		t.Fatal("no use-phase hit")
	}
	if use.Value != 409.6 {
		t.Fatalf("value = %v, want 409.6", use.Value)
	}
	if use.Provenance.CellRef != "B1" || use.Provenance.Confidence != 0.9 {
		t.Fatalf("provenance = %+v", use.Provenance)
	}
	if use.Provenance.Sheet != "Specs" || use.Provenance.Method != internal.MethodAnchor {
		t.Fatalf("provenance = %+v", use.Provenance)
	}

	transport, ok := hits[internal.FieldTransport]
	if !ok {
		t.Fatal("no transport hit")
	}
	if transport.Value != 12.5 || transport.Provenance.CellRef != "C2" {
		t.Fatalf("transport = %+v", transport)
	}
}

func TestScanAnchorsBelowAndLeftward(t *testing.T) {
	rows := [][]string{
		{"Materials CO2"},
		{"88"},
		{"61.5", "Production CO2"},
	}
	hits := ScanAnchors(rows, "Specs")

	materials := hits[internal.FieldMaterials]
	if materials.Value != 88 || materials.Provenance.Confidence != 0.8 {
		t.Fatalf("materials = %+v", materials)
	}
	if materials.Provenance.CellRef != "A2" {
		t.Fatalf("materials cell = %q", materials.Provenance.CellRef)
	}

	production := hits[internal.FieldProduction]
	if production.Value != 61.5 || production.Provenance.Confidence != 0.7 {
		t.Fatalf("production = %+v", production)
	}
	if production.Provenance.CellRef != "A3" {
		t.Fatalf("production cell = %q", production.Provenance.CellRef)
	}
}

func TestScanAnchorsSkipsNonPositive(t *testing.T) {
	rows := [][]string{
		{"Transport CO2", "0", "-4", "15"},
	}
	hits := ScanAnchors(rows, "Specs")
	transport, ok := hits[internal.FieldTransport]
	if !ok {
		t.Fatal("no transport hit")
	}
	if transport.Value != 15 || transport.Provenance.CellRef != "D1" {
		t.Fatalf("transport = %+v", transport)
	}
}

func TestScanAnchorsMissingFieldAbsent(t *testing.T) {
	rows := [][]string{
		{"just some text", "more text"},
	}
	hits := ScanAnchors(rows, "Specs")
	if len(hits) != 0 {
		t.Fatalf("hits = %+v, want none", hits)
	}
}

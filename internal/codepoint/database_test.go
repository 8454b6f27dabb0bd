package codepoint

import "testing"

type testPayload struct {
	tag   string
	start rune
}

type testSchema struct{}

func (testSchema) Rebase(data testPayload, originalStart, newStart rune) testPayload {
	data.start = newStart
	return data
}

func buildSample(t *testing.T) *Database[testPayload] {
	t.Helper()
	b := NewBuilder[testPayload](testSchema{}, 6)
	b.SetASCII('a', testPayload{tag: "ascii-a"})
	b.AppendRange(0x80, 0x2FF, testPayload{tag: "latin-supplement", start: 0x80})
	b.AppendRange(0x300, 0x36F, testPayload{tag: "combining", start: 0x300})
	b.AppendRange(0x4E00, 0x9FFF, testPayload{tag: "cjk", start: 0x4E00})
	b.AppendRange(0xFFFF0, 0x10FFFF, testPayload{tag: "supplementary-tail", start: 0xFFFF0})
	return b.Build()
}

func TestDatabase_ASCIILookup(t *testing.T) {
	db := buildSample(t)
	got := db.Lookup('a')
	if got.tag != "ascii-a" {
		t.Errorf("Lookup('a') = %+v, want tag ascii-a", got)
	}
	// Unset ASCII entries return the zero value, not a panic.
	zero := db.Lookup('b')
	if zero.tag != "" {
		t.Errorf("Lookup('b') = %+v, want zero value", zero)
	}
}

func TestDatabase_BMPLookup(t *testing.T) {
	db := buildSample(t)

	tests := []struct {
		cp      rune
		wantTag string
	}{
		{0x80, "latin-supplement"},
		{0xFF, "latin-supplement"},
		{0x2FF, "latin-supplement"},
		{0x300, "combining"},
		{0x36F, "combining"},
		{0x4E00, "cjk"},
		{0x9FFF, "cjk"},
	}
	for _, tt := range tests {
		got := db.Lookup(tt.cp)
		if got.tag != tt.wantTag {
			t.Errorf("Lookup(%#x) = %q, want %q", tt.cp, got.tag, tt.wantTag)
		}
	}
}

func TestDatabase_BMPGapReturnsZero(t *testing.T) {
	db := buildSample(t)
	got := db.Lookup(0x370) // between combining (ends 0x36F) and cjk (starts 0x4E00)
	if got.tag != "" {
		t.Errorf("Lookup(0x370) = %q, want zero value for unmapped gap", got.tag)
	}
}

func TestDatabase_SupplementaryLookup(t *testing.T) {
	db := buildSample(t)

	got := db.Lookup(0xFFFF0)
	if got.tag != "supplementary-tail" {
		t.Errorf("Lookup(0xFFFF0) = %q, want supplementary-tail", got.tag)
	}

	got = db.Lookup(0x10FFFF)
	if got.tag != "supplementary-tail" {
		t.Errorf("Lookup(0x10FFFF) = %q, want supplementary-tail", got.tag)
	}

	// An untouched plane (e.g. plane 3, U+30000) has no rows at all.
	got = db.Lookup(0x30000)
	if got.tag != "" {
		t.Errorf("Lookup(0x30000) = %q, want zero value for empty plane", got.tag)
	}
}

func TestDatabase_RangeSplitAcrossBMPBoundaryIsRebased(t *testing.T) {
	b := NewBuilder[testPayload](testSchema{}, 6)
	b.AppendRange(0xFF00, 0x100FF, testPayload{tag: "boundary-crossing", start: 0xFF00})
	db := b.Build()

	below := db.Lookup(0xFF00)
	if below.tag != "boundary-crossing" || below.start != 0xFF00 {
		t.Errorf("Lookup(0xFF00) = %+v, want start 0xFF00", below)
	}

	above := db.Lookup(0x10000)
	if above.tag != "boundary-crossing" || above.start != 0x10000 {
		t.Errorf("Lookup(0x10000) = %+v, want rebased start 0x10000", above)
	}
}

func TestDatabase_Validate(t *testing.T) {
	db := buildSample(t)
	if err := db.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDatabase_ValidateEmpty(t *testing.T) {
	b := NewBuilder[testPayload](testSchema{}, 6)
	db := b.Build()
	if err := db.Validate(); err != nil {
		t.Errorf("Validate() on empty database = %v, want nil", err)
	}
}

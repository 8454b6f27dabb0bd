package idna

import (
	"errors"
	"strings"
	"testing"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

func TestToASCII_Basic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already ascii, lowercased", "EXAMPLE.com", "example.com"},
		{"trailing dot preserved", "example.com.", "example.com."},
		{"fullwidth digits and letters fold to ascii", "ｅｘａｍｐｌｅ.com", "example.com"},
		{"sharp s maps to ss", "straße.example", "strasse.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToASCII(tt.in)
			if err != nil {
				t.Fatalf("ToASCII(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToASCII(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToASCII_PunycodeLabel(t *testing.T) {
	got, err := ToASCII("éxample.com")
	if err != nil {
		t.Fatalf("ToASCII error = %v", err)
	}
	if !strings.HasPrefix(got, "xn--") || !strings.HasSuffix(got, ".com") {
		t.Fatalf("ToASCII = %q, want an xn-- label followed by .com", got)
	}
	label := strings.TrimSuffix(strings.TrimPrefix(got, "xn--"), ".com")
	decoded, err := punycodeDecode(label)
	if err != nil {
		t.Fatalf("punycodeDecode(%q) error = %v", label, err)
	}
	if decoded != "éxample" {
		t.Errorf("decoded = %q, want éxample", decoded)
	}
}

func TestToASCII_RejectsDisallowedCodePoint(t *testing.T) {
	_, err := ToASCII("exa mple.com")
	if err == nil {
		t.Fatal("expected an error for a disallowed control code point")
	}
	var idnaErr *werrors.IDNAError
	if !errors.As(err, &idnaErr) {
		t.Fatalf("expected *werrors.IDNAError, got %T", err)
	}
	if idnaErr.Kind != werrors.IDNAKindMapping {
		t.Errorf("Kind = %v, want mapping", idnaErr.Kind)
	}
}

func TestToASCII_STD3Strictness(t *testing.T) {
	// '!' is disallowed_STD3_valid: rejected under strict STD3 (the
	// default), accepted when STD3 is relaxed.
	if _, err := ToASCII("exa!mple.com"); err == nil {
		t.Fatal("expected an error under default strict STD3 rules")
	}
	got, err := ToASCII("exa!mple.com", WithSTD3(false))
	if err != nil {
		t.Fatalf("ToASCII with relaxed STD3 error = %v", err)
	}
	if got != "exa!mple.com" {
		t.Errorf("got %q, want exa!mple.com", got)
	}
}

func TestToASCII_CheckHyphens(t *testing.T) {
	tests := []string{"-example.com", "example-.com", "ex--ample.com"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ToASCII(in); err == nil {
				t.Errorf("ToASCII(%q) succeeded, want hyphen-rule error", in)
			}
		})
	}
}

func TestToASCII_VerifyDNSLength(t *testing.T) {
	long := ""
	for i := 0; i < 64; i++ {
		long += "a"
	}
	if _, err := ToASCII(long + ".com", WithVerifyDNSLength(true)); err == nil {
		t.Fatal("expected a label-too-long error")
	}
	if _, err := ToASCII(long + ".com"); err != nil {
		t.Fatalf("without VerifyDNSLength, expected success, got %v", err)
	}
}

func TestPunycode_RoundTrip(t *testing.T) {
	labels := []string{"xample", "münchen", "你好"}
	for _, l := range labels {
		t.Run(l, func(t *testing.T) {
			encoded, err := punycodeEncode(l)
			if err != nil {
				t.Fatalf("punycodeEncode error = %v", err)
			}
			decoded, err := punycodeDecode(encoded)
			if err != nil {
				t.Fatalf("punycodeDecode(%q) error = %v", encoded, err)
			}
			if decoded != l {
				t.Errorf("round trip: got %q, want %q", decoded, l)
			}
		})
	}
}

func TestCheckJoiners(t *testing.T) {
	valid := "a\u0301\u200cb" // combining acute accent then ZWNJ
	if err := checkJoiners(valid); err != nil {
		t.Errorf("checkJoiners(%q) = %v, want nil", valid, err)
	}
	invalid := "ab\u200cc" // ZWNJ not preceded by a combining mark
	if err := checkJoiners(invalid); err == nil {
		t.Errorf("checkJoiners(%q) succeeded, want error", invalid)
	}
}

func TestDatabaseLookup_ASCIICaseMapping(t *testing.T) {
	e := lookup('A')
	if e.status != StatusMapped {
		t.Fatalf("status = %v, want mapped", e.status)
	}
	if got := mappedRune('A', e); got != 'a' {
		t.Errorf("mappedRune('A') = %q, want 'a'", got)
	}
}

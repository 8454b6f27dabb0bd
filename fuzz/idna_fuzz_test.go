// Package fuzz provides fuzz testing for the IDNA domain-to-ASCII
// transformation and its underlying Punycode codec.
package fuzz

import (
	"strings"
	"testing"

	"github.com/joshuafuller/weburl/internal/idna"
)

// FuzzToASCII feeds arbitrary domain strings through idna.ToASCII to
// ensure it never panics, and that whatever it accepts is pure ASCII.
//
// Run with: go test -fuzz=FuzzToASCII -fuzztime=10s ./fuzz/
func FuzzToASCII(f *testing.F) {
	f.Add("example.com")
	f.Add("EXAMPLE.COM")
	f.Add("straße.example")
	f.Add("xn--nxasmq6b")
	f.Add("xn--")
	f.Add("日本語。example")
	f.Add("a‍b")  // zero-width joiner, a deviation code point
	f.Add("٠")    // Arabic-Indic digit, bidi-relevant
	f.Add("-leading-hyphen")
	f.Add("trailing-hyphen-")
	f.Add("")
	f.Add(strings.Repeat("a", 300))
	f.Add("a.b.c.d.e.f.g.h")
	f.Add("．") // fullwidth full stop, maps to '.'

	f.Fuzz(func(t *testing.T, domain string) {
		ascii, err := idna.ToASCII(domain)
		if err != nil {
			return
		}
		for i := 0; i < len(ascii); i++ {
			if ascii[i] >= 0x80 {
				t.Fatalf("ToASCII(%q) = %q, which is not pure ASCII", domain, ascii)
			}
		}
	})
}

// FuzzToASCII_WithOptions exercises the same transformation with every
// option flipped from its default (STD3 off, transitional processing and
// the length check on), since STD3/transitional/length-check handling
// branch through different code paths.
//
// Run with: go test -fuzz=FuzzToASCII_WithOptions -fuzztime=10s ./fuzz/
func FuzzToASCII_WithOptions(f *testing.F) {
	f.Add("example.com")
	f.Add("_underscore.example")
	f.Add(strings.Repeat("a", 64) + ".example")

	f.Fuzz(func(t *testing.T, domain string) {
		_, _ = idna.ToASCII(domain,
			idna.WithSTD3(false),
			idna.WithTransitional(true),
			idna.WithVerifyDNSLength(true),
		)
	})
}

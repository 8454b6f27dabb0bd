package weburl

import "testing"

func TestParse_Basic(t *testing.T) {
	u, err := Parse("https://example.com/a/b?q=1#frag")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if u.Scheme() != "https" {
		t.Errorf("Scheme() = %q, want https", u.Scheme())
	}
	if u.Pathname() != "/a/b" {
		t.Errorf("Pathname() = %q, want /a/b", u.Pathname())
	}
	if u.Search() != "?q=1" {
		t.Errorf("Search() = %q, want ?q=1", u.Search())
	}
	if u.Hash() != "#frag" {
		t.Errorf("Hash() = %q, want #frag", u.Hash())
	}
}

func TestParse_WithBase(t *testing.T) {
	base, err := Parse("https://example.com/a/b/c")
	if err != nil {
		t.Fatalf("Parse(base) error = %v", err)
	}
	rel, err := Parse("../d", WithBase(&base))
	if err != nil {
		t.Fatalf("Parse(relative) error = %v", err)
	}
	if rel.Pathname() != "/a/d" {
		t.Errorf("Pathname() = %q, want /a/d", rel.Pathname())
	}
}

func TestParse_NoBaseRelativeFails(t *testing.T) {
	if _, err := Parse("../d"); err == nil {
		t.Fatal("expected an error for a relative reference without a base")
	}
}

func TestCanParse(t *testing.T) {
	if !CanParse("https://example.com/") {
		t.Error("CanParse(absolute) = false, want true")
	}
	if CanParse("not a url") {
		t.Error("CanParse(garbage) = true, want false")
	}
}

func TestURL_Setters(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	u2, err := u.WithPathname("/x/y")
	if err != nil {
		t.Fatalf("WithPathname error = %v", err)
	}
	if u2.Pathname() != "/x/y" {
		t.Errorf("Pathname() = %q, want /x/y", u2.Pathname())
	}
	if u.Pathname() != "/a" {
		t.Error("WithPathname mutated the receiver")
	}
}

func TestParse_IDNAOptions(t *testing.T) {
	longLabel := ""
	for i := 0; i < 64; i++ {
		longLabel += "a"
	}
	raw := "https://" + longLabel + ".example/"

	if _, err := Parse(raw); err != nil {
		t.Fatalf("Parse without VerifyDNSLength error = %v, want no error", err)
	}
	if _, err := Parse(raw, WithIDNAOptions(WithVerifyDNSLength(true))); err == nil {
		t.Fatal("expected a DNS label-length error with VerifyDNSLength enabled")
	}
}

func TestIsParseError(t *testing.T) {
	_, err := Parse("not a url")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsParseError(err) {
		t.Error("IsParseError = false, want true")
	}
}

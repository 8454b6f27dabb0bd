package ipaddr

import "testing"

func TestParseV6_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want V6
	}{
		{"full", "2001:db8:0:0:0:0:0:1", V6{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}},
		{"compressed middle", "2001:db8::1", V6{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}},
		{"all zero compressed", "::", V6{}},
		{"loopback", "::1", V6{0, 0, 0, 0, 0, 0, 0, 1}},
		{"leading compressed", "::ffff:192.168.1.1", V6{0, 0, 0, 0, 0, 0xffff, 0xc0a8, 0x0101}},
		{"trailing compressed", "2001:db8::", V6{0x2001, 0xdb8, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseV6(tt.in)
			if err != nil {
				t.Fatalf("ParseV6(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseV6(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseV6_Invalid(t *testing.T) {
	tests := []string{
		"",
		":1:2:3:4:5:6:7",
		"1:2:3:4:5:6:7:8:9",
		"1::2::3",
		"1:2:3:4:5:6:7",
		"gggg::1",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseV6(in); err == nil {
				t.Errorf("ParseV6(%q) succeeded, want error", in)
			}
		})
	}
}

func TestV6_String(t *testing.T) {
	tests := []struct {
		name string
		in   V6
		want string
	}{
		{"compresses longest zero run", V6{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}, "2001:db8::1"},
		{"no run shorter than two not compressed", V6{1, 0, 2, 0, 3, 0, 4, 0}, "1:0:2:0:3:0:4:0"},
		{"all zero", V6{}, "::"},
		{"trailing run", V6{1, 2, 0, 0, 0, 0, 0, 0}, "1:2::"},
		{"leading run", V6{0, 0, 0, 0, 0, 0, 0, 1}, "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestV6_RoundTrip(t *testing.T) {
	inputs := []string{"2001:db8::1", "::1", "::", "1:2:3:4:5:6:7:8"}
	for _, in := range inputs {
		addr, err := ParseV6(in)
		if err != nil {
			t.Fatalf("ParseV6(%q) error = %v", in, err)
		}
		reparsed, err := ParseV6(addr.String())
		if err != nil {
			t.Fatalf("ParseV6(%q) (from String()) error = %v", addr.String(), err)
		}
		if reparsed != addr {
			t.Errorf("round trip mismatch for %q: %v != %v", in, reparsed, addr)
		}
	}
}

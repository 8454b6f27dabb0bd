// Package host implements the WHATWG URL Standard's host parser: dispatch
// among bracketed IPv6 literals, IDNA domains (with an IPv4 fallback for
// special schemes), and opaque hosts for non-special schemes.
package host

import (
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
	"github.com/joshuafuller/weburl/internal/idna"
	"github.com/joshuafuller/weburl/internal/ipaddr"
	"github.com/joshuafuller/weburl/internal/percentencode"
)

// Kind classifies which of the five host forms a Host holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindDomain
	KindIPv4
	KindIPv6
	KindOpaque
)

// Host is the semantic projection of a parsed authority's host component.
type Host struct {
	Kind   Kind
	Domain string // ASCII, lowercased; valid when Kind == KindDomain
	IPv4   ipaddr.V4
	IPv6   ipaddr.V6
	Opaque string // valid when Kind == KindOpaque
}

// String serializes the host per the WHATWG URL Standard's host
// serializer: IPv6 literals are bracketed, everything else is printed
// as-is.
func (h Host) String() string {
	switch h.Kind {
	case KindEmpty:
		return ""
	case KindDomain:
		return h.Domain
	case KindIPv4:
		return h.IPv4.String()
	case KindIPv6:
		return "[" + h.IPv6.String() + "]"
	case KindOpaque:
		return h.Opaque
	default:
		return ""
	}
}

// forbiddenHostCodePoint reports whether r may never appear in an opaque
// host, per the URL Standard's "forbidden host code point" list.
func forbiddenHostCodePoint(r rune) bool {
	switch r {
	case 0x00, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	default:
		return false
	}
}

func opaqueEncodeSet(b byte) bool {
	return percentencode.C0(b) || b == ' '
}

// Parse parses input as a host. isSpecial selects the IDNA/IPv4 domain
// branch over the opaque-host branch; isFile additionally permits an
// empty or failed-IPv4 domain result for the "file" scheme, per §4.4.
func Parse(input string, isSpecial bool, isFile bool, opts ...idna.Option) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindUnterminatedIPv6, Host: input}
		}
		v6, err := ipaddr.ParseV6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindUnterminatedIPv6, Host: input, Err: err}
		}
		return Host{Kind: KindIPv6, IPv6: v6}, nil
	}

	if isSpecial {
		decoded := percentencode.DecodeString(input)
		ascii, err := idna.ToASCII(decoded, opts...)
		if err != nil {
			return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindIDNAFailure, Host: input, Err: err}
		}

		if ascii == "" {
			if isFile {
				return Host{Kind: KindEmpty}, nil
			}
			return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindIDNAFailure, Host: input}
		}

		labels := strings.Split(ascii, ".")
		last := labels[len(labels)-1]
		if last == "" && len(labels) > 1 {
			last = labels[len(labels)-2]
		}
		if ipaddr.IsIPv4LikeLastLabel(last) {
			v4, err := ipaddr.ParseV4(ascii)
			if err != nil {
				if isFile {
					return Host{Kind: KindDomain, Domain: ascii}, nil
				}
				return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindInvalidIPv4InDomain, Host: input, Err: err}
			}
			return Host{Kind: KindIPv4, IPv4: v4}, nil
		}

		return Host{Kind: KindDomain, Domain: ascii}, nil
	}

	for _, r := range input {
		if forbiddenHostCodePoint(r) {
			return Host{}, &werrors.HostError{Operation: "parse host", Kind: werrors.HostKindForbiddenCodePoint, Host: input}
		}
	}
	if input == "" {
		return Host{Kind: KindEmpty}, nil
	}
	return Host{Kind: KindOpaque, Opaque: percentencode.EncodeString(input, opaqueEncodeSet)}, nil
}

// Package ipaddr implements the WHATWG IPv4 and IPv6 literal parsers and
// serializers. Both parsers are total: they either produce a value or a
// typed error. ParseV4 allocates while splitting its input into parts.
package ipaddr

import (
	"strconv"
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

// V4 is a parsed IPv4 address stored as four octets in network order.
type V4 [4]byte

// Uint32 returns the address as a big-endian 32-bit integer.
func (a V4) Uint32() uint32 {
	return uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3])
}

// String serializes the address as four decimal octets, e.g. "127.0.0.1".
func (a V4) String() string {
	var b strings.Builder
	for i, octet := range a {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(octet)))
	}
	return b.String()
}

// ParseV4 parses an IPv4 literal per the WHATWG URL Standard's "IPv4 number
// parser" and "IPv4 parser": 1 to 4 dot-separated parts, each decimal (the
// default), octal (a leading "0"), or hexadecimal (a leading "0x"/"0X").
// Every part but the last must fit in a byte; the last part absorbs
// whatever bits remain (e.g. "1.2.3" is 1.2.0.3, and "0xFFFFFFFF" alone is
// 255.255.255.255).
func ParseV4(s string) (V4, error) {
	if s == "" {
		return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: "empty input"}
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: "too many parts"}
	}
	// A single trailing empty part from a trailing dot is invalid, as is
	// any interior empty part.
	for _, p := range parts {
		if p == "" {
			return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: "empty part"}
		}
	}

	nums := make([]uint64, 0, len(parts))
	for _, p := range parts {
		n, err := parseV4Part(p)
		if err != nil {
			return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: err.Error()}
		}
		nums = append(nums, n)
	}

	// Every part except the last must fit in one byte.
	for _, n := range nums[:len(nums)-1] {
		if n > 0xFF {
			return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: "non-final part out of range"}
		}
	}

	last := nums[len(nums)-1]
	maxLast := uint64(1)<<(8*uint(5-len(nums))) - 1
	if last > maxLast {
		return V4{}, &werrors.IPv4Error{Operation: "parse IPv4 literal", Input: s, Message: "overflow"}
	}

	// Assemble the 32-bit value: the non-final parts occupy the highest
	// bytes in order, and the final part fills the rest.
	var value uint64
	for i, n := range nums[:len(nums)-1] {
		shift := 8 * uint(3-i)
		value |= n << shift
	}
	value |= last

	return V4{byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value)}, nil
}

func parseV4Part(p string) (uint64, error) {
	base := 10
	switch {
	case strings.HasPrefix(p, "0x") || strings.HasPrefix(p, "0X"):
		base = 16
		p = p[2:]
	case len(p) > 1 && p[0] == '0':
		base = 8
		p = p[1:]
	}
	if p == "" {
		// Only a bare "0x"/"0X" leaves an empty remainder; it is read as
		// zero.
		return 0, nil
	}
	n, err := strconv.ParseUint(p, base, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// IsIPv4LikeLastLabel reports whether label looks like an IPv4 number (the
// host parser uses this to decide whether a domain's last label should be
// re-parsed as an IPv4 address): it is non-empty and consists entirely of
// ASCII digits, or is a "0x"/"0X" prefixed hex run.
func IsIPv4LikeLastLabel(label string) bool {
	if label == "" {
		return false
	}
	if strings.HasPrefix(label, "0x") || strings.HasPrefix(label, "0X") {
		rest := label[2:]
		if rest == "" {
			return false
		}
		for _, c := range rest {
			if !isHex(byte(c)) {
				return false
			}
		}
		return true
	}
	for _, c := range label {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

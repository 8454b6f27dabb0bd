package ipaddr

import (
	"strconv"
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

// V6 is a parsed IPv6 address stored as eight 16-bit pieces in network
// order.
type V6 [8]uint16

// ParseV6 parses an IPv6 literal per the WHATWG URL Standard's "IPv6 parser":
// the input must not include the surrounding "[" "]"; up to eight 16-bit hex
// groups separated by ":", at most one "::" compression, with an optional
// embedded dotted-decimal IPv4 literal occupying the last 32 bits.
func ParseV6(s string) (V6, error) {
	var addr V6
	pieceIndex := 0
	compress := -1

	i := 0
	n := len(s)

	fail := func(msg string) (V6, error) {
		return V6{}, &werrors.IPv6Error{Operation: "parse IPv6 literal", Input: s, Message: msg}
	}

	if n > 0 && s[0] == ':' {
		if n < 2 || s[1] != ':' {
			return fail("starts with a single colon")
		}
		i = 2
		pieceIndex++
		compress = pieceIndex
	}

	for i < n {
		if pieceIndex == 8 {
			return fail("too many pieces")
		}
		if s[i] == ':' {
			if compress != -1 {
				return fail("multiple compressions")
			}
			i++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		start := i
		value := 0
		length := 0
		for i < n && length < 4 && isHex(s[i]) {
			value = value*16 + int(hexDigit(s[i]))
			i++
			length++
		}

		if i < n && s[i] == '.' {
			// An embedded IPv4 literal must occupy the last two pieces.
			if length == 0 {
				return fail("embedded IPv4 literal with no leading digits")
			}
			if pieceIndex > 6 {
				return fail("embedded IPv4 literal leaves no room")
			}
			v4, err := ParseV4(s[start:])
			if err != nil {
				return fail("invalid embedded IPv4 literal: " + err.Error())
			}
			addr[pieceIndex] = uint16(v4[0])<<8 | uint16(v4[1])
			pieceIndex++
			addr[pieceIndex] = uint16(v4[2])<<8 | uint16(v4[3])
			pieceIndex++
			i = n
			break
		}

		if i < n && s[i] == ':' {
			i++
			if i == n {
				return fail("trailing single colon")
			}
		} else if i < n {
			return fail("unexpected character in piece")
		}

		addr[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		// Slide the pieces written after the "::" down to the end of the
		// array, per the WHATWG IPv6 parser's swap algorithm.
		swaps := pieceIndex - compress
		pi := 7
		for pi != 0 && swaps > 0 {
			addr[pi], addr[compress+swaps-1] = addr[compress+swaps-1], addr[pi]
			pi--
			swaps--
		}
	} else if pieceIndex != 8 {
		return fail("too few pieces and no compression")
	}

	return addr, nil
}

func hexDigit(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// String serializes the address per the WHATWG URL Standard's IPv6
// serializer: the longest run of two-or-more all-zero groups is compressed
// with "::"; groups are lowercase hex without leading zeros.
func (a V6) String() string {
	// Find the longest run of all-zero groups, length >= 2.
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i, piece := range a {
		if piece == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > bestLen {
		bestStart, bestLen = curStart, curLen
	}
	if bestLen < 2 {
		bestStart, bestLen = -1, 0
	}

	var b strings.Builder
	for i := 0; i < 8; i++ {
		if bestStart != -1 && i == bestStart {
			b.WriteString("::")
			i += bestLen - 1
			continue
		}
		if i != 0 && !(bestStart != -1 && i == bestStart+bestLen) {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(uint64(a[i]), 16))
	}
	return b.String()
}

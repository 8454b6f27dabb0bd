package idna

import (
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

// Punycode encode/decode per RFC 3492, parameterized for the "Bootstring"
// settings the IDNA profile requires (base 36, tmin 1, tmax 26, skew 38,
// damp 700, initial bias 72, initial n 0x80).
const (
	puncBase        = 36
	puncTMin        = 1
	puncTMax        = 26
	puncSkew        = 38
	puncDamp        = 700
	puncInitialBias = 72
	puncInitialN    = 0x80
	puncDelimiter   = '-'
)

func punycodeAdapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= puncDamp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := 0
	for delta > ((puncBase-puncTMin)*puncTMax)/2 {
		delta /= puncBase - puncTMin
		k += puncBase
	}
	return k + (puncBase-puncTMin+1)*delta/(delta+puncSkew)
}

func digitToBasic(d int) byte {
	if d < 26 {
		return byte('a' + d)
	}
	return byte('0' + d - 26)
}

func basicToDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c-'0') + 26, true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	default:
		return 0, false
	}
}

// punycodeEncode encodes the extended (non-ASCII) code points of label per
// the RFC 3492 generalized variable-length integer scheme, returning the
// Bootstring body that follows the "xn--" prefix and any literal basic
// code point run.
func punycodeEncode(label string) (string, error) {
	var basic []rune
	var extended []rune
	for _, r := range label {
		if r < 0x80 {
			basic = append(basic, r)
		} else {
			extended = append(extended, r)
		}
	}

	var out strings.Builder
	for _, r := range basic {
		out.WriteRune(r)
	}
	h := len(basic)
	b := h
	if b > 0 {
		out.WriteByte(puncDelimiter)
	}

	n := puncInitialN
	delta := 0
	bias := puncInitialBias
	total := len([]rune(label))

	for h < total {
		m := -1
		for _, r := range extended {
			ri := int(r)
			if ri >= n && (m == -1 || ri < m) {
				m = ri
			}
		}
		if m == -1 {
			break
		}
		delta += (m - n) * (h + 1)
		n = m

		for _, r := range []rune(label) {
			ri := int(r)
			if ri < n {
				delta++
				continue
			}
			if ri > n {
				continue
			}
			q := delta
			for k := puncBase; ; k += puncBase {
				t := k - bias
				switch {
				case t < puncTMin:
					t = puncTMin
				case t > puncTMax:
					t = puncTMax
				}
				if q < t {
					break
				}
				out.WriteByte(digitToBasic(t + (q-t)%(puncBase-t)))
				q = (q - t) / (puncBase - t)
			}
			out.WriteByte(digitToBasic(q))
			bias = punycodeAdapt(delta, h+1, h == b)
			delta = 0
			h++
		}
		delta++
		n++
	}

	return out.String(), nil
}

// punycodeDecode is the inverse of punycodeEncode: it accepts the
// Bootstring body following "xn--" and returns the original label.
func punycodeDecode(input string) (string, error) {
	n := puncInitialN
	i := 0
	bias := puncInitialBias

	var output []rune

	delim := strings.LastIndexByte(input, puncDelimiter)
	if delim >= 0 {
		for _, r := range input[:delim] {
			output = append(output, r)
		}
		input = input[delim+1:]
	}

	pos := 0
	for pos < len(input) {
		oldi := i
		w := 1
		for k := puncBase; ; k += puncBase {
			if pos >= len(input) {
				return "", &werrors.IDNAError{Kind: werrors.IDNAKindPunycode, Label: input, Err: errPunycode("truncated input")}
			}
			digit, ok := basicToDigit(input[pos])
			pos++
			if !ok {
				return "", &werrors.IDNAError{Kind: werrors.IDNAKindPunycode, Label: input, Err: errPunycode("invalid digit")}
			}
			i += digit * w
			t := k - bias
			switch {
			case t < puncTMin:
				t = puncTMin
			case t > puncTMax:
				t = puncTMax
			}
			if digit < t {
				break
			}
			w *= puncBase - t
		}
		numPoints := len(output) + 1
		bias = punycodeAdapt(i-oldi, numPoints, oldi == 0)
		n += i / numPoints
		i = i % numPoints
		if i > len(output) {
			return "", &werrors.IDNAError{Kind: werrors.IDNAKindPunycode, Label: input, Err: errPunycode("invalid insertion point")}
		}
		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = rune(n)
		i++
	}

	return string(output), nil
}

type errPunycode string

func (e errPunycode) Error() string { return string(e) }

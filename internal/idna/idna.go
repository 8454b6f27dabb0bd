// Package idna implements the WHATWG URL Standard's domain-to-ASCII
// transformation: UTS 46 mapping, NFC normalization, Punycode, and the
// CheckHyphens / CheckBidi / CheckJoiners label validations.
package idna

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

// Options configures the domain-to-ASCII transformation. The zero value has
// every field off; ToASCII starts from STD3 on (the strict,
// non-transitional default the URL Standard requires) and then applies its
// Option arguments.
type Options struct {
	// STD3 enables UseSTD3ASCIIRules: code points whose mapping status is
	// disallowed_STD3_valid or disallowed_STD3_mapped are rejected. With
	// STD3 off they are kept as-is (valid) or replaced by their mapping
	// (mapped) respectively. Defaults to true (strict).
	STD3 bool
	// Transitional enables the deprecated transitional processing mode,
	// under which deviation code points (in the seed table, ZWJ and ZWNJ)
	// are dropped instead of being kept as-is; ß is mapped to "ss" in
	// either mode. Defaults to false.
	Transitional bool
	// VerifyDNSLength additionally enforces the 63-byte label / 253-byte
	// total length limits.
	VerifyDNSLength bool
}

// Option mutates Options.
type Option func(*Options)

// WithSTD3 toggles UseSTD3ASCIIRules. Defaults to strict (true).
func WithSTD3(enabled bool) Option { return func(o *Options) { o.STD3 = enabled } }

// WithTransitional toggles transitional deviation-character processing.
func WithTransitional(enabled bool) Option { return func(o *Options) { o.Transitional = enabled } }

// WithVerifyDNSLength toggles the 63/253-byte length checks.
func WithVerifyDNSLength(enabled bool) Option {
	return func(o *Options) { o.VerifyDNSLength = enabled }
}

func resolve(opts []Option) Options {
	o := Options{STD3: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ToASCII runs the domain-to-ASCII transformation on domain, returning a
// pure-ASCII, lowercased, dot-separated sequence of labels. It implements,
// in order: per-scalar mapping, NFC normalization, Punycode encoding of
// non-ASCII labels, and CheckHyphens/CheckBidi/CheckJoiners validation.
func ToASCII(domain string, opts ...Option) (string, error) {
	o := resolve(opts)

	mapped, err := mapDomain(domain, o)
	if err != nil {
		return "", err
	}

	normalized := norm.NFC.String(mapped)

	labels := strings.Split(normalized, ".")
	isBidiDomain := domainIsBidi(labels)

	for i, label := range labels {
		if label == "" {
			continue
		}
		if strings.HasPrefix(label, "xn--") {
			decoded, err := punycodeDecode(label[4:])
			if err != nil {
				return "", err
			}
			if !isASCII(decoded) {
				return "", &werrors.IDNAError{Kind: werrors.IDNAKindPunycode, Label: label, Err: errPunycode("decoded label is not pure ASCII")}
			}
		} else if !isASCII(label) {
			encoded, err := punycodeEncode(label)
			if err != nil {
				return "", err
			}
			labels[i] = "xn--" + encoded
			label = labels[i]
		}

		if err := validateLabel(label, o, isBidiDomain); err != nil {
			return "", err
		}
	}

	result := strings.Join(labels, ".")
	if o.VerifyDNSLength {
		if err := verifyDNSLength(result, labels); err != nil {
			return "", err
		}
	}
	return result, nil
}

// mapDomain applies the per-scalar IDNA mapping step (spec.md §4.5 step 1)
// to every code point of domain.
func mapDomain(domain string, o Options) (string, error) {
	var b strings.Builder
	b.Grow(len(domain))
	for _, c := range domain {
		e := lookup(c)
		switch e.status {
		case StatusValid:
			b.WriteRune(c)
		case StatusIgnored:
			// drop
		case StatusMapped:
			if e.replN > 0 {
				for _, r := range mappedReplacement(e) {
					b.WriteRune(r)
				}
			} else {
				b.WriteRune(mappedRune(c, e))
			}
		case StatusDisallowedSTD3Mapped:
			if o.STD3 {
				return "", &werrors.IDNAError{Kind: werrors.IDNAKindMapping, Label: string(c), Err: errMapping(c, "disallowed under STD3 rules")}
			}
			if e.replN > 0 {
				for _, r := range mappedReplacement(e) {
					b.WriteRune(r)
				}
			} else {
				b.WriteRune(mappedRune(c, e))
			}
		case StatusDisallowedSTD3Valid:
			if o.STD3 {
				return "", &werrors.IDNAError{Kind: werrors.IDNAKindMapping, Label: string(c), Err: errMapping(c, "disallowed under STD3 rules")}
			}
			b.WriteRune(c)
		case StatusDeviation:
			if o.Transitional {
				if e.replN > 0 {
					for _, r := range mappedReplacement(e) {
						b.WriteRune(r)
					}
				}
				// Transitional ZWJ/ZWNJ map to nothing (dropped).
			} else {
				b.WriteRune(c)
			}
		default: // StatusDisallowed
			return "", &werrors.IDNAError{Kind: werrors.IDNAKindMapping, Label: string(c), Err: errMapping(c, "disallowed code point")}
		}
	}
	return b.String(), nil
}

func validateLabel(label string, o Options, isBidiDomain bool) error {
	if label == "" {
		return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: label, Err: errValidation("empty label")}
	}
	if len(label) > 63 {
		return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: label, Err: errValidation("label exceeds 63 bytes")}
	}
	if err := checkHyphens(label); err != nil {
		return err
	}
	if isBidiDomain {
		if err := checkBidi(label); err != nil {
			return err
		}
	}
	if err := checkJoiners(label); err != nil {
		return err
	}
	return nil
}

// checkHyphens enforces CheckHyphens: no leading or trailing hyphen, and
// no hyphens in both the third and fourth positions unless the label is an
// ACE (xn--) label.
func checkHyphens(label string) error {
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: label, Err: errValidation("leading or trailing hyphen")}
	}
	if len(label) >= 4 && label[2] == '-' && label[3] == '-' && !strings.HasPrefix(label, "xn--") {
		return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: label, Err: errValidation("hyphens in positions 3 and 4 require an ACE label")}
	}
	return nil
}

func verifyDNSLength(full string, labels []string) error {
	total := len(full)
	if len(labels) > 0 && labels[len(labels)-1] == "" {
		total-- // trailing dot excluded from the total-length check
	}
	if total > 253 {
		return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: full, Err: errValidation("domain exceeds 253 bytes")}
	}
	for _, l := range labels {
		if len(l) > 63 {
			return &werrors.IDNAError{Kind: werrors.IDNAKindValidation, Label: l, Err: errValidation("label exceeds 63 bytes")}
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

type errMappingT struct {
	c    rune
	why  string
}

func (e errMappingT) Error() string { return e.why }

func errMapping(c rune, why string) error { return errMappingT{c: c, why: why} }

type errValidation string

func (e errValidation) Error() string { return string(e) }

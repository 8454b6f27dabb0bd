package idna

import (
	"golang.org/x/text/secure/bidirule"
	"golang.org/x/text/unicode/bidi"

	werrors "github.com/joshuafuller/weburl/internal/errors"
)

// domainIsBidi reports whether any label in the (already mapped and
// normalized) domain requires the RTL label rules: the presence of any
// character with a right-to-left direction anywhere in the domain forces
// every label, including LTR ones, through CheckBidi.
func domainIsBidi(labels []string) bool {
	for _, l := range labels {
		if bidirule.DirectionString(l) == bidi.RightToLeft {
			return true
		}
	}
	return false
}

// checkBidi enforces UTS 46's Bidi rule for a single label once any label
// in the domain has been found to require it. golang.org/x/text's bidirule
// implements the rule directly against the label text; checkBidi adapts
// its verdict into the IDNA error taxonomy.
func checkBidi(label string) error {
	if !bidirule.ValidString(label) {
		return &werrors.IDNAError{Kind: werrors.IDNAKindBidi, Label: label, Err: errBidi("label violates the bidi rule")}
	}
	return nil
}

type errBidi string

func (e errBidi) Error() string { return string(e) }

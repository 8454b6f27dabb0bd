package idna

import werrors "github.com/joshuafuller/weburl/internal/errors"

// checkJoiners enforces a representative version of UTS 46's joiner rule:
// ZWNJ (U+200C) and ZWJ (U+200D) are valid only when immediately preceded
// by a combining mark, standing in for the real rule's virama and
// joining-type L/D context (DerivedJoiningType.txt is not part of the seed
// table; see tables_seed.go).
func checkJoiners(label string) error {
	runes := []rune(label)
	for i, r := range runes {
		if r != 0x200C && r != 0x200D {
			continue
		}
		if i == 0 || !isCombiningMark(runes[i-1]) {
			return &werrors.IDNAError{Kind: werrors.IDNAKindJoiner, Label: label, Err: errJoiner("joiner not preceded by a combining mark")}
		}
	}
	return nil
}

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

type errJoiner string

func (e errJoiner) Error() string { return string(e) }

package idna

// buildSeedTable populates a representative stand-in for the code point
// database that internal/idna/gen would otherwise generate from
// IdnaMappingTable.txt, DerivedBidiClass.txt, and DerivedJoiningType.txt
// (see gen/doc.go). It covers every ASCII code point plus the ranges commonly
// exercised by IDNA test vectors: Latin-1 supplement case folding, the
// fullwidth ASCII-variant block, a combining-diacritic run,
// the CJK/Hangul block left valid, and a handful of disallowed control and
// noncharacter ranges.
func buildSeedTable(b *builder) {
	// ASCII: digits, lowercase letters and '-' are valid; uppercase maps to
	// lowercase; '.' is valid as the label separator; most punctuation is
	// disallowed under STD3 but left available as disallowed_STD3_valid so
	// a caller relaxing STD3 checks can still pass it through.
	for c := rune(0); c < 0x80; c++ {
		switch {
		case c >= '0' && c <= '9':
			b.SetASCII(byte(c), entry{status: StatusValid, start: c, origin: c, repl: -1})
		case c >= 'a' && c <= 'z':
			b.SetASCII(byte(c), entry{status: StatusValid, start: c, origin: c, repl: -1})
		case c >= 'A' && c <= 'Z':
			b.SetASCII(byte(c), entry{status: StatusMapped, start: c, origin: c + 32, repl: -1})
		case c == '-' || c == '.' || c == '_' || c == '~':
			b.SetASCII(byte(c), entry{status: StatusValid, start: c, origin: c, repl: -1})
		case c < 0x20 || c == 0x7F:
			b.SetASCII(byte(c), entry{status: StatusDisallowed, start: c, origin: c, repl: -1})
		default:
			b.SetASCII(byte(c), entry{status: StatusDisallowedSTD3Valid, start: c, origin: c, repl: -1})
		}
	}

	// Latin-1 supplement: case-fold letters, map the German sharp s to
	// "ss" as UTS 46 requires, leave a handful of symbols disallowed.
	valid(b, 0x80, 0xA0)
	disallowedSTD3Valid(b, 0xA1, 0xBF)
	mappedOffset(b, 0xC0, 0xD6, 0xE0) // À-Ö -> à-ö
	disallowedSTD3Valid(b, 0xD7, 0xD7)
	mappedOffset(b, 0xD8, 0xDE, 0xF8) // Ø-Þ -> ø-þ
	mappedFixed(b, 0xDF, 's', 's') // ß -> ss
	valid(b, 0xE0, 0xF6)
	disallowedSTD3Valid(b, 0xF7, 0xF7)
	valid(b, 0xF8, 0xFF)

	// A representative run of Latin Extended-A case pairs, alternating
	// upper/lower per the textbook IDNA example (U+0100 "Ā" -> U+0101 "ā").
	for c := rune(0x0100); c+1 <= 0x0137; c += 2 {
		mappedOffset(b, c, c, c+1)
		valid(b, c+1, c+1)
	}

	// Combining diacritical marks: valid but not reordered or folded by
	// this layer (normalization happens in a separate NFC pass).
	valid(b, 0x0300, 0x036F)

	// Zero-width joiner / non-joiner default to the deviation class;
	// CheckJoiners re-admits them in specific contexts.
	b.AppendRange(0x200C, 0x200D, entry{status: StatusDeviation, start: 0x200C, origin: 0x200C, repl: -1})

	// CJK Unified Ideographs: left valid without mapping.
	valid(b, 0x4E00, 0x9FFF)

	// Hangul syllable block: left valid without mapping.
	valid(b, 0xAC00, 0xD7A3)

	// Noncharacters drawn from IdnaMappingTable.txt's "disallowed" class.
	disallowed(b, 0xFDD0, 0xFDEF)

	// Variation selectors VS1..VS16 (U+FE00..U+FE0F), which include the
	// emoji presentation selector: a common real-world "ignored" status.
	ignored(b, 0xFE00, 0xFE0F)

	// Fullwidth forms (U+FF01..U+FF5E) fold to the corresponding ASCII
	// range (offset -0xFEE0), the canonical IDNA fullwidth example;
	// fullwidth capitals fold further, to lowercase ASCII.
	mappedOffset(b, 0xFF01, 0xFF20, 0xFF01-0xFEE0)
	mappedOffset(b, 0xFF21, 0xFF3A, 'a')
	mappedOffset(b, 0xFF3B, 0xFF5E, 0xFF3B-0xFEE0)

	// Trailing noncharacters.
	disallowed(b, 0xFFFE, 0xFFFF)

	// Supplementary-plane example: a representative valid block, to
	// exercise the plane-table path.
	valid(b, 0x10000, 0x1000B)
}

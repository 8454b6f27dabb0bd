package idna

import "github.com/joshuafuller/weburl/internal/codepoint"

// Status classifies how a single Unicode scalar participates in the IDNA
// mapping step, per UTS 46 IdnaMappingTable.txt.
type Status uint8

const (
	StatusValid Status = iota
	StatusIgnored
	StatusMapped
	StatusDisallowedSTD3Valid
	StatusDisallowedSTD3Mapped
	StatusDeviation
	StatusDisallowed
)

// entry is the payload stored in the code point database for one mapping
// range. Ranges with a uniform per-scalar mapping (e.g. an uppercase block
// folding to the corresponding lowercase block) are represented by start
// plus origin so the target scalar is computed as c - start + origin.
// Fixed multi-scalar replacements (e.g. U+00DF mapping to "ss") are
// represented by an index/length pair into the replacements table and do
// not depend on which scalar in the range was looked up, since such
// mappings only ever cover a single code point.
type entry struct {
	status Status
	start  rune
	origin rune
	repl   int // index into replacements, or -1 if unused
	replN  int
}

// replacements holds the flat scalar array referenced by multi-code-point
// mapped entries.
var replacements []rune

type schema struct{}

func (schema) Rebase(e entry, originalStart, newStart rune) entry {
	if e.replN > 0 {
		// Fixed replacements don't depend on the source scalar's offset
		// within the range, so no adjustment is needed.
		return e
	}
	delta := newStart - originalStart
	e.start = newStart
	e.origin += delta
	return e
}

var table *codepoint.Database[entry]

func lookup(c rune) entry {
	return table.Lookup(c)
}

// mappedRune returns the single-scalar mapping target for c under e,
// valid only when e.replN == 0.
func mappedRune(c rune, e entry) rune {
	return c - e.start + e.origin
}

// mappedReplacement returns the fixed multi-scalar replacement for e.
func mappedReplacement(e entry) []rune {
	return replacements[e.repl : e.repl+e.replN]
}

type builder = codepoint.Builder[entry]

func newBuilder() *builder {
	return codepoint.NewBuilder[entry](schema{}, 7)
}

func valid(b *builder, start, end rune) {
	b.AppendRange(start, end, entry{status: StatusValid, start: start, origin: start, repl: -1})
}

func disallowed(b *builder, start, end rune) {
	b.AppendRange(start, end, entry{status: StatusDisallowed, start: start, origin: start, repl: -1})
}

func ignored(b *builder, start, end rune) {
	b.AppendRange(start, end, entry{status: StatusIgnored, start: start, origin: start, repl: -1})
}

// mappedOffset records a range that maps uniformly to another range of the
// same length starting at origin (e.g. uppercase -> lowercase).
func mappedOffset(b *builder, start, end, origin rune) {
	b.AppendRange(start, end, entry{status: StatusMapped, start: start, origin: origin, repl: -1})
}

func deviation(b *builder, start, end rune) {
	b.AppendRange(start, end, entry{status: StatusDeviation, start: start, origin: start, repl: -1})
}

func disallowedSTD3Valid(b *builder, start, end rune) {
	b.AppendRange(start, end, entry{status: StatusDisallowedSTD3Valid, start: start, origin: start, repl: -1})
}

// mappedFixed records a single code point mapping to a fixed run of
// replacement scalars (e.g. U+00DF "ß" -> "ss").
func mappedFixed(b *builder, c rune, repl ...rune) {
	idx := len(replacements)
	replacements = append(replacements, repl...)
	b.AppendRange(c, c, entry{status: StatusMapped, start: c, origin: c, repl: idx, replN: len(repl)})
}

func mappedFixedSTD3(b *builder, c rune, repl ...rune) {
	idx := len(replacements)
	replacements = append(replacements, repl...)
	b.AppendRange(c, c, entry{status: StatusDisallowedSTD3Mapped, start: c, origin: c, repl: idx, replN: len(repl)})
}

func init() {
	b := newBuilder()
	buildSeedTable(b)
	table = b.Build()
}

package codepoint

// Builder constructs a Database by accepting a strictly increasing sequence
// of ranges. This mirrors the offline construction process described for
// the code point database: a generator walks the Unicode scalar space once,
// in order, appending a new entry whenever the payload changes.
type Builder[T any] struct {
	schema       Schema[T]
	indexBits    uint
	ascii        [128]T
	bmpRows      []bmpRow[T]
	planeRows    [16][]planeRow[T]
	lastAppended rune
	started      bool
}

// NewBuilder creates a Builder. indexBits controls the width of the BMP
// index (6-7 bits is typical per the data model); the index will have
// 2^indexBits+1 entries.
func NewBuilder[T any](schema Schema[T], indexBits uint) *Builder[T] {
	return &Builder[T]{schema: schema, indexBits: indexBits}
}

// SetASCII assigns the payload for a single ASCII code point (0..127).
func (b *Builder[T]) SetASCII(c byte, data T) {
	b.ascii[c&0x7F] = data
}

// AppendRange records that the payload for all code points in
// [start, end] (inclusive) is data. Ranges must be appended in strictly
// increasing, non-overlapping order starting at or above U+0080; ASCII is
// configured separately via SetASCII.
func (b *Builder[T]) AppendRange(start, end rune, data T) {
	if start < 0x80 {
		start = 0x80
	}
	if end < start {
		return
	}
	if b.started && start > b.lastAppended+1 {
		// Code points between the previous range and this one carry the
		// zero value, so a lookup in the gap does not inherit the previous
		// range's payload.
		var zero T
		gap := b.lastAppended + 1
		if gap <= 0xFFFF {
			b.bmpRows = append(b.bmpRows, bmpRow[T]{codepoint: uint16(gap), data: zero})
		} else {
			plane := (int(gap>>16) - 1) & 0xF
			b.planeRows[plane] = append(b.planeRows[plane], planeRow[T]{codepoint: uint32(gap), data: zero})
		}
	}
	b.started = true
	b.lastAppended = end
	if start <= 0xFFFF {
		bmpEnd := end
		if bmpEnd > 0xFFFF {
			bmpEnd = 0xFFFF
		}
		b.bmpRows = append(b.bmpRows, bmpRow[T]{codepoint: uint16(start), data: data})
		if end > 0xFFFF {
			// The range crosses the BMP boundary; the supplementary portion
			// starts at U+10000 and needs a rebased payload.
			rebased := b.schema.Rebase(data, start, 0x10000)
			b.appendPlaneRow(0x10000, end, rebased)
		}
		return
	}
	b.appendPlaneRow(start, end, data)
}

func (b *Builder[T]) appendPlaneRow(start, end rune, data T) {
	plane := (int(start>>16) - 1) & 0xF
	cp := uint32(start)
	b.planeRows[plane] = append(b.planeRows[plane], planeRow[T]{codepoint: cp, data: data})

	// A range may itself span multiple supplementary planes; split at each
	// plane boundary, rebasing the payload for the new origin each time.
	planeEnd := rune((plane+2)<<16) - 1
	if end > planeEnd && planeEnd < end {
		rebased := b.schema.Rebase(data, start, planeEnd+1)
		b.appendPlaneRow(planeEnd+1, end, rebased)
	}
}

// Build finalizes the Database: computing the BMP index and ensuring every
// non-empty plane table begins with a sentinel row at code point 0.
func (b *Builder[T]) Build() *Database[T] {
	d := &Database[T]{
		ascii:        b.ascii,
		bmpRows:      b.bmpRows,
		bmpIndexBits: b.indexBits,
	}

	for plane := range b.planeRows {
		rows := b.planeRows[plane]
		if len(rows) == 0 {
			continue
		}
		if rows[0].codepoint != 0 {
			var zero T
			rows = append([]planeRow[T]{{codepoint: 0, data: zero}}, rows...)
		}
		d.planeRows[plane] = rows
	}

	// index[k] is the row index of the last row whose codepoint is <= the
	// first codepoint of block k (i.e. the entry already "in force" at the
	// start of the block, which may have been appended in an earlier
	// block). index[size] is the last valid row index overall. Lookup then
	// binary-searches rows[index[k] .. index[k+1]] inclusive, a superset of
	// the rows that can possibly apply to a codepoint in block k.
	size := 1 << b.indexBits
	index := make([]uint32, size+1)
	shift := 16 - b.indexBits
	row := 0
	for k := 0; k < size; k++ {
		blockStart := uint16(k << shift)
		for row+1 < len(d.bmpRows) && d.bmpRows[row+1].codepoint <= blockStart {
			row++
		}
		index[k] = uint32(row)
	}
	if len(d.bmpRows) == 0 {
		index[size] = 0
	} else {
		index[size] = uint32(len(d.bmpRows) - 1)
	}
	d.bmpIndex = index

	return d
}

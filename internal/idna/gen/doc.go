// Package gen documents, but does not implement, the data-table generator
// for internal/idna.
//
// A full build would read IdnaMappingTable.txt, DerivedBidiClass.txt, and
// DerivedJoiningType.txt from the Unicode Character Database, walk each in
// code point order, and emit idna_tables_gen.go: a single file calling the
// same valid/mappedOffset/mappedFixed/disallowed/ignored/deviation builder
// helpers that tables_seed.go calls by hand. Swapping the generated file in
// for tables_seed.go is the only change required to move from the
// representative seed table to full Unicode coverage; the rest of this
// package is agnostic to which one populated the database.
package gen

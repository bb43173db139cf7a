// Package masscsv provides random-access reading, parallel full-text
// search, and in-place editing of very large delimited text files. Files
// may exceed available RAM: rows are addressed through a memory-mapped
// byte buffer and a compact row offset index, giving O(1) random access
// and sub-second search over tens of millions of rows without loading a
// parsed representation into memory.
//
// The engine has four pieces, built leaf-first: Parser (delimiter
// inference, quoted-row parse/serialize), Reader (mmap + row offset
// index), Searcher (parallel scan with raw-byte pre-filter), and Editor
// (pending-edit map layered over Reader, atomic save via rename).
//
// Out of scope for this package: a command-line front end, a table
// pretty-printer, and a language-binding layer — all thin adapters meant
// to consume the operations below.
package masscsv

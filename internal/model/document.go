package model

// Document is the loader contract: everything the extraction pipeline needs
// from one source file, already materialized. Tables are ordered rows of
// ordered cell strings. The core performs no I/O of its own.
type Document struct {
	RawText string
	Tables  [][][]string
	Source  string
}

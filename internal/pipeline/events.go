package pipeline

import "pacesetter/internal"

// Event is one message of the parse protocol. A parse call emits exactly
// one MetaEvent, then zero or more ChunkEvents in file/sheet order, then a
// terminal DoneEvent or ErrorEvent. The variant set is closed.
type Event interface {
	isEvent()
}

// MetaEvent announces the file and its sheet names before any rows.
type MetaEvent struct {
	Name       string
	SheetNames []string
}

// ChunkEvent carries a slice of decoded data rows for one sheet. Rows are
// keyed by the detected header texts; HeaderRowIndex is the 0-based row
// the headers were taken from.
type ChunkEvent struct {
	FileName       string
	SheetName      string
	HeaderRowIndex int
	Headers        []string
	Rows           []internal.Row
}

// ErrorEvent terminates a parse after a decode failure.
type ErrorEvent struct {
	Message string
}

// DoneEvent terminates a successful parse.
type DoneEvent struct{}

func (MetaEvent) isEvent()  {}
func (ChunkEvent) isEvent() {}
func (ErrorEvent) isEvent() {}
func (DoneEvent) isEvent()  {}

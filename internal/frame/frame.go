// Package frame holds the values that travel between sources, the
// converter and sinks.
package frame

// Record is one raw input line. Line is 1-based.
type Record struct {
	Line int64
	Text string
}

// Frame is one encoded output line, trailing newline included.
type Frame struct {
	Line  int64
	Value []byte
}

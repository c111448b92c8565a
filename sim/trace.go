package sim

import (
	"bufio"
	"io"
	"strconv"
)

// Record is one trace entry: a branch address and its actual outcome.
type Record struct {
	Address uint32
	Taken   bool
}

// TraceReader consumes a branch trace: whitespace-separated pairs of a
// hexadecimal address (0x prefix optional) and a decimal outcome flag, where
// 1 means taken and any other integer means not-taken. Newlines and spaces
// are equivalent separators.
//
// The first token that fails to parse ends consumption permanently; records
// already returned remain valid. A short final record (address with no flag)
// ends consumption the same way.
type TraceReader struct {
	scan *bufio.Scanner
	done bool
}

// NewTraceReader wraps r in a trace reader.
func NewTraceReader(r io.Reader) *TraceReader {
	scan := bufio.NewScanner(r)
	scan.Split(bufio.ScanWords)
	return &TraceReader{scan: scan}
}

// Next returns the next record, or ok=false once the trace is exhausted or
// malformed. After the first false it never yields again.
func (t *TraceReader) Next() (rec Record, ok bool) {
	if t.done {
		return Record{}, false
	}

	if !t.scan.Scan() {
		t.done = true
		return Record{}, false
	}
	addr, err := parseAddress(t.scan.Text())
	if err != nil {
		t.done = true
		return Record{}, false
	}

	if !t.scan.Scan() {
		t.done = true
		return Record{}, false
	}
	flag, err := strconv.Atoi(t.scan.Text())
	if err != nil {
		t.done = true
		return Record{}, false
	}

	return Record{Address: addr, Taken: flag == 1}, true
}

// parseAddress parses a hexadecimal branch address with an optional 0x/0X
// prefix.
func parseAddress(tok string) (uint32, error) {
	if len(tok) > 2 && (tok[:2] == "0x" || tok[:2] == "0X") {
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, 16, 32)
	return uint32(v), err
}

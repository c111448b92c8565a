// Package sim replays recorded branch traces through the perceptron
// predictor and reports prediction accuracy. The predictor itself lives in
// proto/perceptron; this package is the thin I/O shell around it: trace
// parsing, the replay loop, report formatting, and the optional diagnostic
// log sink.
package sim

import (
	"io"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/proto/perceptron"
)

// Run replays trace records from r through the predictor, strictly in file
// order, until the trace is exhausted or the first malformed record. It
// returns the number of records processed. Statistics accumulated up to a
// malformed record stand as the final result.
func Run(p *perceptron.Predictor, r io.Reader) int {
	trace := NewTraceReader(r)
	n := 0
	for {
		rec, ok := trace.Next()
		if !ok {
			return n
		}
		p.Process(rec.Address, rec.Taken)
		n++
	}
}

package sim_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/sim"
)

var _ = Describe("TraceReader", func() {
	read := func(input string) []sim.Record {
		tr := sim.NewTraceReader(strings.NewReader(input))
		var recs []sim.Record
		for {
			rec, ok := tr.Next()
			if !ok {
				return recs
			}
			recs = append(recs, rec)
		}
	}

	It("parses hex addresses with a 0x prefix", func() {
		recs := read("0x1000 1\n")
		Expect(recs).To(HaveLen(1))
		Expect(recs[0].Address).To(Equal(uint32(0x1000)))
		Expect(recs[0].Taken).To(BeTrue())
	})

	It("parses bare hex addresses", func() {
		recs := read("deadbeef 0\n")
		Expect(recs).To(HaveLen(1))
		Expect(recs[0].Address).To(Equal(uint32(0xdeadbeef)))
		Expect(recs[0].Taken).To(BeFalse())
	})

	It("treats newlines and spaces as equivalent separators", func() {
		recs := read("0x1000 1 0x1004\n0\n\t0x1008   1")
		Expect(recs).To(HaveLen(3))
		Expect(recs[1].Address).To(Equal(uint32(0x1004)))
		Expect(recs[2].Taken).To(BeTrue())
	})

	It("treats only a flag of exactly 1 as taken", func() {
		recs := read("0x1000 1\n0x1000 0\n0x1000 2\n0x1000 -1\n")
		Expect(recs).To(HaveLen(4))
		Expect(recs[0].Taken).To(BeTrue())
		Expect(recs[1].Taken).To(BeFalse())
		Expect(recs[2].Taken).To(BeFalse())
		Expect(recs[3].Taken).To(BeFalse())
	})

	It("stops cleanly at the first unparsable address", func() {
		recs := read("0x1000 1\nnot-hex 1\n0x2000 1\n")
		Expect(recs).To(HaveLen(1))
	})

	It("stops cleanly at an unparsable outcome flag", func() {
		recs := read("0x1000 1\n0x2000 maybe\n0x3000 1\n")
		Expect(recs).To(HaveLen(1))
	})

	It("stops cleanly on a short final record", func() {
		recs := read("0x1000 1\n0x2000")
		Expect(recs).To(HaveLen(1))
	})

	It("never yields again after termination", func() {
		tr := sim.NewTraceReader(strings.NewReader("bogus"))
		_, ok := tr.Next()
		Expect(ok).To(BeFalse())
		_, ok = tr.Next()
		Expect(ok).To(BeFalse())
	})

	It("handles an empty input", func() {
		Expect(read("")).To(BeEmpty())
	})
})

package sim_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/proto/perceptron"
	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/sim"
)

var _ = Describe("Run", func() {
	var p *perceptron.Predictor

	BeforeEach(func() {
		p = perceptron.New()
	})

	It("replays every record in file order", func() {
		n := sim.Run(p, strings.NewReader("0x1000 1\n0x1004 0\n0x1008 1\n"))
		Expect(n).To(Equal(3))
		Expect(p.Stats().TotalPredictions).To(Equal(uint64(3)))
	})

	It("reproduces the cold-start scenario statistics", func() {
		// Record 1 tag-misses and counts as a mispredict, record 2 is a
		// weak correct prediction that trains, record 3 mispredicts on the
		// trained weights and trains again.
		n := sim.Run(p, strings.NewReader("0x1000 1\n0x1000 1\n0x1000 0\n"))
		Expect(n).To(Equal(3))

		s := p.Stats()
		Expect(s.TotalPredictions).To(Equal(uint64(3)))
		Expect(s.CorrectPredictions).To(Equal(uint64(1)))
		Expect(s.Mispredictions).To(Equal(uint64(2)))
		Expect(s.TagMisses).To(Equal(uint64(1)))
		Expect(s.TrainingEvents).To(Equal(uint64(2)))
	})

	It("keeps statistics from records before a malformed one", func() {
		n := sim.Run(p, strings.NewReader("0x1000 1\n0x1000 1\ngarbage\n0x1000 0\n"))
		Expect(n).To(Equal(2))
		Expect(p.Stats().TotalPredictions).To(Equal(uint64(2)))
	})

	It("processes an empty trace as a valid zero-length run", func() {
		n := sim.Run(p, strings.NewReader(""))
		Expect(n).To(BeZero())
		Expect(p.Stats()).To(Equal(perceptron.Statistics{}))
	})
})

var _ = Describe("Reports", func() {
	It("prints defined values for an empty run", func() {
		var buf bytes.Buffer
		sim.WriteReport(&buf, perceptron.Statistics{})

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("NaN"))
		Expect(out).NotTo(ContainSubstring("Inf"))
		Expect(out).To(ContainSubstring("0.00"))
	})

	It("is idempotent for a completed run", func() {
		p := perceptron.New()
		sim.Run(p, strings.NewReader("0x1000 1\n0x1000 1\n0x1004 0\n"))

		var first, second bytes.Buffer
		sim.WriteReport(&first, p.Stats())
		sim.WriteReport(&second, p.Stats())
		Expect(second.String()).To(Equal(first.String()))
	})

	It("reports the derived rates", func() {
		p := perceptron.New()
		sim.Run(p, strings.NewReader("0x1000 1\n0x1000 1\n0x1000 0\n"))

		var buf bytes.Buffer
		sim.WriteSummary(&buf, p.Stats())
		out := buf.String()
		Expect(out).To(ContainSubstring("total branches:         3"))
		Expect(out).To(ContainSubstring("accuracy:               33.33%"))
		Expect(out).To(ContainSubstring("mispredictions per 1K:  666.67"))
	})
})

var _ = Describe("DebugLog", func() {
	It("records predictions, tag misses and training with weight dumps", func() {
		var buf bytes.Buffer
		log := sim.NewDebugLogTo(&buf)

		p := perceptron.New()
		p.SetObserver(log)
		sim.Run(p, strings.NewReader("0x1000 1\n0x1000 1\n"))
		Expect(log.Close()).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("tag miss for address 0x1000"))
		Expect(out).To(ContainSubstring("prediction for 0x1000: y=0"))
		Expect(out).To(ContainSubstring("training perceptron["))
		Expect(out).To(ContainSubstring("bias weight: 1"))
		Expect(out).To(ContainSubstring("weights[  1-  8]:"))
		Expect(out).To(ContainSubstring("weights[ 57- 64]:"))
	})

	It("does not alter the simulation outcome", func() {
		trace := "0x1000 1\n0x1000 1\n0x1004 0\n0x1000 0\n0x2020 1\n"

		plain := perceptron.New()
		sim.Run(plain, strings.NewReader(trace))

		var buf bytes.Buffer
		observed := perceptron.New()
		log := sim.NewDebugLogTo(&buf)
		observed.SetObserver(log)
		sim.Run(observed, strings.NewReader(trace))
		Expect(log.Close()).To(Succeed())

		Expect(observed.Stats()).To(Equal(plain.Stats()))
	})
})

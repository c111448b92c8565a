// Command bpsim replays a recorded branch trace through the perceptron
// predictor and prints the prediction-accuracy report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/proto/perceptron"
	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/sim"
)

var (
	debug = flag.Bool("debug", false, "write a timestamped per-record debug log")
	short = flag.Bool("short", false, "print the short summary instead of the full table")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: bpsim [options] <trace-file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trace file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	p := perceptron.New()

	if *debug {
		log, err := sim.NewDebugLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()
		p.SetObserver(log)
	}

	sim.Run(p, f)

	if *short {
		sim.WriteSummary(os.Stdout, p.Stats())
	} else {
		sim.WriteReport(os.Stdout, p.Stats())
	}
}

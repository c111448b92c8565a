package sim

import (
	"fmt"
	"io"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/proto/perceptron"
)

// WriteReport prints the full statistics table: raw counts, training and
// confidence diagnostics, and the derived rates. Safe on an empty run - the
// derived metrics are guarded and report 0.00 instead of dividing by zero.
// Pure formatting: calling it any number of times yields identical output.
func WriteReport(w io.Writer, s perceptron.Statistics) {
	fmt.Fprintf(w, "\n\t────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "\t           Branch Predictor Statistics           \n")
	fmt.Fprintf(w, "\t────────────────────────────┬───────────────────\n")
	fmt.Fprintf(w, "\t Total Branches             │ %13d \n", s.TotalPredictions)
	fmt.Fprintf(w, "\t Correct Predictions        │ %13d \n", s.CorrectPredictions)
	fmt.Fprintf(w, "\t Mispredictions             │ %13d \n", s.Mispredictions)
	fmt.Fprintf(w, "\t Tag Misses                 │ %13d \n", s.TagMisses)
	fmt.Fprintf(w, "\t Training Events            │ %13d \n", s.TrainingEvents)
	fmt.Fprintf(w, "\t Strong Predictions         │ %13d \n", s.StrongPredictions)
	fmt.Fprintf(w, "\t Weak Predictions           │ %13d \n", s.WeakPredictions)
	fmt.Fprintf(w, "\t────────────────────────────┼───────────────────\n")
	fmt.Fprintf(w, "\t Prediction Accuracy        │ %16.2f%%\n", s.Accuracy())
	fmt.Fprintf(w, "\t Mispredictions per 1K      │ %16.2f \n", s.MispredictsPerKilo())
	fmt.Fprintf(w, "\t Average Confidence         │ %16.2f \n", s.AvgConfidence)
	fmt.Fprintf(w, "\t────────────────────────────┴───────────────────\n\n")
}

// WriteSummary prints the minimal report: totals and the two derived rates.
func WriteSummary(w io.Writer, s perceptron.Statistics) {
	fmt.Fprintf(w, "total branches:         %d\n", s.TotalPredictions)
	fmt.Fprintf(w, "correct predictions:    %d\n", s.CorrectPredictions)
	fmt.Fprintf(w, "mispredictions:         %d\n", s.Mispredictions)
	fmt.Fprintf(w, "tag misses:             %d\n", s.TagMisses)
	fmt.Fprintf(w, "accuracy:               %.2f%%\n", s.Accuracy())
	fmt.Fprintf(w, "mispredictions per 1K:  %.2f\n", s.MispredictsPerKilo())
}

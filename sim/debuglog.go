package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/junnunkarim/ewu--cse360--dynamic-branch-prediction-with-perceptron/proto/perceptron"
)

// DebugLog is a perceptron.Observer that mirrors every predictor event into
// a timestamped line-oriented log: predictions with their raw output and
// confidence, tag misses, and training events with a full dump of the
// trained slot's weight vector. It is purely observational - attaching it
// never changes a prediction or a statistic.
type DebugLog struct {
	w      *bufio.Writer
	closer io.Closer
	now    func() time.Time
}

// NewDebugLog creates a debug log writing to branch_predictor_<timestamp>.log
// in the current directory.
func NewDebugLog() (*DebugLog, error) {
	name := fmt.Sprintf("branch_predictor_%s.log", time.Now().Format(stampLayout))
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("create debug log %s: %w", name, err)
	}
	d := newDebugLog(f, f)
	d.printf("debug logging initialized in file: %s", name)
	return d, nil
}

// NewDebugLogTo creates a debug log writing to w. The caller owns w; Close
// only flushes.
func NewDebugLogTo(w io.Writer) *DebugLog {
	return newDebugLog(w, nil)
}

func newDebugLog(w io.Writer, c io.Closer) *DebugLog {
	return &DebugLog{
		w:      bufio.NewWriter(w),
		closer: c,
		now:    time.Now,
	}
}

const stampLayout = "20060102_150405"

func (d *DebugLog) printf(format string, args ...any) {
	fmt.Fprintf(d.w, "[%s] ", d.now().Format(stampLayout))
	fmt.Fprintf(d.w, format, args...)
	d.w.WriteByte('\n')
}

// Prediction implements perceptron.Observer.
func (d *DebugLog) Prediction(addr, index uint32, y int, confidence float64) {
	d.printf("prediction for 0x%x: y=%d, confidence=%.2f", addr, y, confidence)
}

// TagMiss implements perceptron.Observer.
func (d *DebugLog) TagMiss(addr, index uint32) {
	d.printf("tag miss for address 0x%x", addr)
}

// Training implements perceptron.Observer. The entry is a post-update
// snapshot; the dump prints the bias, then the history weights 8 per line.
func (d *DebugLog) Training(addr, index uint32, entry perceptron.Entry) {
	d.printf("training perceptron[%d] for address 0x%x", index, addr)
	d.printf("  tag: 0x%x", entry.Tag)
	d.printf("  times accessed: %d", entry.TimesAccessed)
	d.printf("  last update: cycle %d", entry.LastUpdate)
	d.printf("  bias weight: %d", entry.Weights[0])

	var line strings.Builder
	for base := 1; base <= perceptron.HistoryLength; base += 8 {
		line.Reset()
		for j := base; j < base+8 && j <= perceptron.HistoryLength; j++ {
			fmt.Fprintf(&line, " %4d", entry.Weights[j])
		}
		d.printf("  weights[%3d-%3d]:%s", base, base+7, line.String())
	}
}

// Close flushes buffered output and, for file-backed logs, closes the file.
func (d *DebugLog) Close() error {
	if err := d.w.Flush(); err != nil {
		return err
	}
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

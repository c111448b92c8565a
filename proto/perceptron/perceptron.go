// ═══════════════════════════════════════════════════════════════════════════════════════════════
// Perceptron Branch Predictor - Go Reference Model
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// OVERVIEW:
// ─────────
// This package implements a perceptron-based dynamic branch predictor. Instead
// of a saturating counter per branch, each predictor slot holds a vector of
// small signed weights that are dot-multiplied with the recent branch history.
// The sign of the sum is the prediction; its magnitude is the confidence.
//
// The perceptron predictor learns online: whenever it is wrong, or right but
// not confident enough, it nudges every weight toward the observed outcome.
// Weights saturate at [-128, 127] - without the clamp, training on a long
// biased trace would wrap the weights around and destabilize every prediction
// that shares the slot.
//
// TABLE ORGANIZATION:
// ───────────────────
// The table is direct-mapped and non-associative: a branch address hashes to
// exactly one of 1024 slots, and each slot stores a tag identifying its
// current owner. Two branches that alias to the same slot fight over it - the
// loser sees a tag miss, re-owns the slot, and inherits whatever weights the
// previous owner trained. Retaining stale weights on re-own is deliberate: it
// avoids a 65-byte clear on every alias, and aliasing is rare enough at 1024
// slots that the inherited weights wash out within a few training events.
//
// HISTORY:
// ────────
// Two shift registers feed the dot product, both most-recent-first:
//   Global history: the last 64 actual outcomes as +1/-1.
//   Path history:   the low 4 address bits of the last 64 branches, of which
//                   only the least significant bit enters the sum.
// Both shift after EVERY processed record, tag misses included, so the
// registers always describe the true dynamic branch stream.
//
// PER-RECORD SEQUENCE (Process):
//   predict -> compare with actual -> train (unless tag miss) -> shift history
// Training must observe the history exactly as the prediction saw it, which is
// why the history shift is strictly last.
//
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package perceptron

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONSTANTS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const (
	// NumPerceptrons is the number of table slots. Must stay a power of two:
	// the indexer masks the hash with NumPerceptrons-1.
	NumPerceptrons = 1024

	// HistoryLength is the depth of both history registers, and therefore the
	// number of non-bias weights per slot.
	HistoryLength = 64

	// MaxWeight and MinWeight bound every weight. Training clamps to this
	// range instead of wrapping.
	MaxWeight = 127
	MinWeight = -128

	// PathHistoryMask selects the address bits recorded in the path history.
	PathHistoryMask = 0xF

	// FNV-1a constants for the slot indexer.
	FNVOffsetBasis = 2166136261
	FNVPrime       = 16777619

	// Theta is the training/confidence threshold, the standard closed-form
	// bound floor(2.14*h + 20.58) that guarantees perceptron weight
	// convergence for history length h. Written as exact integer arithmetic
	// so the floor happens at compile time: 157 for h=64.
	Theta = (214*HistoryLength + 2058) / 100
)

// Branch outcomes as the training rule consumes them.
const (
	Taken    = 1
	NotTaken = -1
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// DATA STRUCTURES
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Entry is one direct-mapped table slot.
//
// Weights[0] is the bias weight; Weights[j] for j >= 1 pairs with history
// position j-1. Tag identifies the owning branch (address >> 2, dropping the
// byte-alignment bits). LastUpdate and TimesAccessed are diagnostics only -
// they never influence a prediction.
type Entry struct {
	Weights       [HistoryLength + 1]int8
	Tag           uint32
	LastUpdate    uint32
	TimesAccessed uint32
}

// Prediction is the outcome of one table lookup.
//
// On a tag miss Taken is false, Output and Confidence are zero, and the
// caller must skip training for this record - there is no meaningful dot
// product to learn from.
type Prediction struct {
	Taken      bool    // predicted direction
	Output     int     // raw dot product y (unsaturated)
	Confidence float64 // |y| / Theta, not clamped to [0,1]
	TagMiss    bool    // slot was re-owned; prediction is the default
	Index      uint32  // slot that served the lookup
}

// Strong reports whether the prediction cleared the confidence threshold.
func (pr Prediction) Strong() bool {
	return pr.Confidence >= 1.0
}

// Statistics accumulates per-run bookkeeping. It only ever grows; read it
// after the trace is exhausted.
type Statistics struct {
	TotalPredictions   uint64
	CorrectPredictions uint64
	Mispredictions     uint64
	TagMisses          uint64
	TrainingEvents     uint64
	StrongPredictions  uint64
	WeakPredictions    uint64
	AvgConfidence      float64
}

// Accuracy returns the correct-prediction percentage, 0 for an empty run.
func (s Statistics) Accuracy() float64 {
	if s.TotalPredictions == 0 {
		return 0
	}
	return 100 * float64(s.CorrectPredictions) / float64(s.TotalPredictions)
}

// MispredictsPerKilo returns mispredictions per 1000 branches, 0 for an
// empty run.
func (s Statistics) MispredictsPerKilo() float64 {
	if s.TotalPredictions == 0 {
		return 0
	}
	return 1000 * float64(s.Mispredictions) / float64(s.TotalPredictions)
}

// Observer receives diagnostic callbacks at the engine's extension points.
// Implementations must treat every argument as read-only: the engine's
// behavior is identical with or without an observer attached.
type Observer interface {
	// Prediction fires after a hit lookup, before the outcome is known.
	Prediction(addr uint32, index uint32, y int, confidence float64)
	// TagMiss fires when a lookup re-owns an aliased or fresh slot.
	TagMiss(addr uint32, index uint32)
	// Training fires after a slot's weights were adjusted. The entry is a
	// post-update snapshot.
	Training(addr uint32, index uint32, entry Entry)
}

// Predictor holds all state for one simulation run: the weight table, both
// history registers, statistics, and the diagnostic clock. Runs must not
// share a Predictor - concurrent simulations each take their own instance.
type Predictor struct {
	table         [NumPerceptrons]Entry
	globalHistory [HistoryLength]int8  // +1/-1 actual outcomes, newest first
	pathHistory   [HistoryLength]uint8 // low 4 address bits, newest first
	stats         Statistics
	clock         uint32 // ticks once per hit lookup, diagnostics only
	observer      Observer
}

// New returns a predictor in the reset state: zero weights, zero tags, zero
// history, zero statistics.
func New() *Predictor {
	return &Predictor{}
}

// SetObserver attaches a diagnostic sink. A nil observer disables callbacks.
func (p *Predictor) SetObserver(o Observer) {
	p.observer = o
}

// Stats returns a snapshot of the run statistics.
func (p *Predictor) Stats() Statistics {
	return p.stats
}

// Entry returns a copy of a table slot, for diagnostics and tests.
func (p *Predictor) Entry(index uint32) Entry {
	return p.table[index&(NumPerceptrons-1)]
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// INDEXER
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// hashIndex maps a branch address to a table slot. FNV-1a style: offset
// basis, XOR in the word address, multiply by the FNV prime, then one extra
// shift-XOR fold because the plain FNV low bits cluster for the small,
// aligned address ranges a trace produces.
//
// Pure function: no table or history state feeds it, so the same address
// always lands on the same slot for the life of the process.

func hashIndex(addr uint32) uint32 {
	hash := uint32(FNVOffsetBasis)
	hash ^= addr >> 2 // drop byte-alignment bits
	hash *= FNVPrime
	hash ^= hash >> 17
	return hash & (NumPerceptrons - 1)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PREDICTION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// historyTerm is the input the perceptron sees for history position j
// (1-based, matching the weight index): the global outcome plus the low path
// bit. Range is -1..2; zero-initialized history contributes 0, which keeps
// untrained positions out of the sum entirely.
func (p *Predictor) historyTerm(j int) int {
	return int(p.globalHistory[j-1]) + int(p.pathHistory[j-1]&1)
}

// Predict looks up the slot for addr and computes the prediction.
//
// Tag mismatch is the slot re-own path: the tag is overwritten, the access
// counter restarts, the old weights stay (see the package comment), and the
// returned prediction is the not-taken default with zero confidence. The
// mismatch path contributes to the tag-miss count but NOT to the confidence
// buckets - a default guess has no confidence to average in.
//
// The hit path computes y = w0 + sum_j wj * historyTerm(j). The individual
// weights are bounded but the sum is not; 64 weights of 127 against terms of
// 2 stay far inside an int. Hits also tick the per-entry access counter and
// the run clock.
func (p *Predictor) Predict(addr uint32) Prediction {
	index := hashIndex(addr)
	entry := &p.table[index]

	tag := addr >> 2
	if entry.Tag != tag {
		p.stats.TagMisses++
		entry.Tag = tag
		entry.TimesAccessed = 0
		if p.observer != nil {
			p.observer.TagMiss(addr, index)
		}
		return Prediction{TagMiss: true, Index: index}
	}

	entry.TimesAccessed++
	p.clock++

	y := int(entry.Weights[0]) // bias term
	for j := 1; j <= HistoryLength; j++ {
		y += int(entry.Weights[j]) * p.historyTerm(j)
	}

	confidence := float64(abs(y)) / float64(Theta)
	if confidence >= 1.0 {
		p.stats.StrongPredictions++
	} else {
		p.stats.WeakPredictions++
	}
	// Incremental running average: avg' = (avg*n + c) / (n+1), with n the
	// number of records committed before this one.
	n := float64(p.stats.TotalPredictions)
	p.stats.AvgConfidence = (p.stats.AvgConfidence*n + confidence) / (n + 1)

	if p.observer != nil {
		p.observer.Prediction(addr, index, y, confidence)
	}

	return Prediction{
		Taken:      y >= 0,
		Output:     y,
		Confidence: confidence,
		Index:      index,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TRAINING
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// clampWeight saturates a weight update to [MinWeight, MaxWeight].
// Saturation, not wraparound: this is the correctness-critical step of the
// whole training rule.
func clampWeight(w int) int8 {
	if w > MaxWeight {
		return MaxWeight
	}
	if w < MinWeight {
		return MinWeight
	}
	return int8(w)
}

// Train applies the perceptron learning rule for the record whose prediction
// produced y. outcome is Taken or NotTaken. It fires only when the predicted
// direction was wrong, or the magnitude of y was at or below Theta (a
// correct but under-confident prediction); otherwise it is a no-op and
// returns false.
//
// Each weight moves one step toward the outcome, scaled by the same history
// term the prediction consumed: w[j] += outcome * historyTerm(j), with the
// bias using a fixed term of 1. Callers must invoke Train before shifting
// history - the rule is only meaningful against prediction-time history.
//
// Tag-miss records must not reach Train; Process enforces that.
func (p *Predictor) Train(addr uint32, outcome int, y int) bool {
	predicted := Taken
	if y < 0 {
		predicted = NotTaken
	}
	if predicted == outcome && abs(y) > Theta {
		return false
	}

	index := hashIndex(addr)
	entry := &p.table[index]
	p.stats.TrainingEvents++

	for j := 0; j <= HistoryLength; j++ {
		term := 1
		if j > 0 {
			term = p.historyTerm(j)
		}
		entry.Weights[j] = clampWeight(int(entry.Weights[j]) + outcome*term)
	}
	entry.LastUpdate = p.clock

	if p.observer != nil {
		p.observer.Training(addr, index, *entry)
	}
	return true
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// HISTORY
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// UpdateHistory shifts both registers one position toward the past and
// records the new head: the actual outcome in global history, the masked
// address bits in path history. It runs for every record - taken or not,
// hit or tag miss - and strictly after prediction and training.
func (p *Predictor) UpdateHistory(addr uint32, outcome int) {
	copy(p.globalHistory[1:], p.globalHistory[:HistoryLength-1])
	p.globalHistory[0] = int8(outcome)

	copy(p.pathHistory[1:], p.pathHistory[:HistoryLength-1])
	p.pathHistory[0] = uint8(addr & PathHistoryMask)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PER-RECORD SEQUENCE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Process runs the complete per-record sequence for one trace record:
// predict, score against the actual outcome, train when eligible, shift
// history. This is the only entry point a trace replay needs.
func (p *Predictor) Process(addr uint32, taken bool) Prediction {
	outcome := NotTaken
	if taken {
		outcome = Taken
	}

	pred := p.Predict(addr)

	p.stats.TotalPredictions++
	if pred.Taken == taken {
		p.stats.CorrectPredictions++
	} else {
		p.stats.Mispredictions++
	}

	if !pred.TagMiss {
		p.Train(addr, outcome, pred.Output)
	}

	p.UpdateHistory(addr, outcome)
	return pred
}

// Reset restores the zero state: table, histories, statistics, clock. The
// attached observer survives a reset.
func (p *Predictor) Reset() {
	p.table = [NumPerceptrons]Entry{}
	p.globalHistory = [HistoryLength]int8{}
	p.pathHistory = [HistoryLength]uint8{}
	p.stats = Statistics{}
	p.clock = 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

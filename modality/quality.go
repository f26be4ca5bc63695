package modality

import "github.com/BaSui01/modality/types"

// DefaultQuality is the score for pairs without a table entry. It marks a
// conversion as lossy and unverified, not as measured.
const DefaultQuality = 0.5

// QualityPolicy scores a cross-modality conversion.
type QualityPolicy interface {
	Score(source, target types.Modality) float64
}

// QualityFunc adapts a function to QualityPolicy.
type QualityFunc func(source, target types.Modality) float64

// Score implements QualityPolicy.
func (f QualityFunc) Score(source, target types.Modality) float64 {
	return f(source, target)
}

type modalityPair struct {
	source types.Modality
	target types.Modality
}

// QualityTable is a fixed lookup keyed by ordered (source, target) pair.
type QualityTable struct {
	scores   map[modalityPair]float64
	fallback float64
}

// NewQualityTable creates an empty table answering fallback for every pair.
func NewQualityTable(fallback float64) *QualityTable {
	return &QualityTable{
		scores:   make(map[modalityPair]float64),
		fallback: fallback,
	}
}

// Set records the score for the ordered pair and returns t for chaining.
func (t *QualityTable) Set(source, target types.Modality, score float64) *QualityTable {
	t.scores[modalityPair{source, target}] = score
	return t
}

// Score implements QualityPolicy.
func (t *QualityTable) Score(source, target types.Modality) float64 {
	if s, ok := t.scores[modalityPair{source, target}]; ok {
		return s
	}
	return t.fallback
}

// DefaultQualityTable returns the built-in policy: text and structured
// convert into each other at 0.95, same-modality pairs score 1.0, and every
// other pair gets DefaultQuality.
func DefaultQualityTable() *QualityTable {
	return NewQualityTable(DefaultQuality).
		Set(types.ModalityText, types.ModalityStructured, 0.95).
		Set(types.ModalityStructured, types.ModalityText, 0.95).
		Set(types.ModalityText, types.ModalityText, 1.0).
		Set(types.ModalityStructured, types.ModalityStructured, 1.0)
}

var defaultQuality = DefaultQualityTable()

// QualityScore scores a pair with the built-in table.
func QualityScore(source, target types.Modality) float64 {
	return defaultQuality.Score(source, target)
}

// Package scoring turns raw Likert answers into bounded, comparable
// per-dimension scores. It performs no I/O and holds no state.
package scoring

import (
	"math"
	"wellbeing/internal/model"
)

// Normalize maps raw from [min,max] linearly onto [0,100], flipping the
// result for inverted questions. The caller guarantees min < max.
// The result is not rounded.
func Normalize(raw float64, min, max int, inverted bool) float64 {
	pct := (raw - float64(min)) / float64(max-min) * 100
	if inverted {
		return 100 - pct
	}
	return pct
}

// NormalizeAnswer normalizes a single answer against its question.
// Unanswered values report ok=false.
func NormalizeAnswer(q model.Question, a model.Answer) (score float64, ok bool, err error) {
	if !q.Scale.Valid() {
		return 0, false, &InvalidScaleError{QuestionID: q.ID, Min: q.Scale.Min, Max: q.Scale.Max}
	}
	if !a.Answered() {
		return 0, false, nil
	}
	v := *a.Value
	if math.IsNaN(v) || math.IsInf(v, 0) || !q.Scale.Contains(v) {
		return 0, false, &OutOfRangeAnswerError{QuestionID: q.ID, Value: v, Min: q.Scale.Min, Max: q.Scale.Max}
	}
	return Normalize(v, q.Scale.Min, q.Scale.Max, q.Inverted), true, nil
}

// RoundTenth rounds v to one decimal place
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// BandOf classifies a dimension average for display
func BandOf(average float64) model.Band {
	switch {
	case average >= 70:
		return model.BandFavorable
	case average >= 40:
		return model.BandIntermediate
	default:
		return model.BandSensitive
	}
}

// Decorate attaches the rounded value and display band to each score
func Decorate(scores []model.DimensionScore) []model.ScoredDimension {
	out := make([]model.ScoredDimension, 0, len(scores))
	for _, s := range scores {
		out = append(out, model.ScoredDimension{
			DimensionScore: s,
			Rounded:        RoundTenth(s.Average),
			Band:           BandOf(s.Average),
		})
	}
	return out
}

package scoring

import "wellbeing/internal/model"

// Result holds both the per-answer and the per-dimension view of a scoring run
type Result struct {
	Normalized []model.NormalizedScore
	Dimensions []model.DimensionScore
}

// Aggregate groups normalized answers by dimension and averages them.
// Dimensions appear in the order they first appear in questions; a
// dimension without any answer is omitted. Any invalid answer aborts the
// whole run and no partial result is returned.
func Aggregate(questions []model.Question, answers []model.Answer) ([]model.DimensionScore, error) {
	res, err := Score(questions, answers)
	if err != nil {
		return nil, err
	}
	return res.Dimensions, nil
}

// Score validates and normalizes every answer, then aggregates per dimension
func Score(questions []model.Question, answers []model.Answer) (*Result, error) {
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		if _, seen := index[q.ID]; !seen {
			index[q.ID] = i
		}
	}

	byQuestion := make(map[string]float64, len(answers))
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		i, ok := index[a.QuestionID]
		if !ok {
			return nil, &UnknownQuestionError{QuestionID: a.QuestionID}
		}
		if seen[a.QuestionID] {
			return nil, &DuplicateAnswerError{QuestionID: a.QuestionID}
		}
		seen[a.QuestionID] = true

		score, answered, err := NormalizeAnswer(questions[i], a)
		if err != nil {
			return nil, err
		}
		if answered {
			byQuestion[a.QuestionID] = score
		}
	}

	type bucket struct {
		sum   float64
		count int
	}
	var order []string
	buckets := make(map[string]*bucket)
	normalized := make([]model.NormalizedScore, 0, len(byQuestion))

	for _, q := range questions {
		b, ok := buckets[q.Dimension]
		if !ok {
			b = &bucket{}
			buckets[q.Dimension] = b
			order = append(order, q.Dimension)
		}

		score, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		// a question id listed twice is only counted once
		delete(byQuestion, q.ID)

		normalized = append(normalized, model.NormalizedScore{
			QuestionID: q.ID,
			Dimension:  q.Dimension,
			Normalized: score,
		})
		b.sum += score
		b.count++
	}

	dims := make([]model.DimensionScore, 0, len(order))
	for _, d := range order {
		b := buckets[d]
		if b.count == 0 {
			continue
		}
		dims = append(dims, model.DimensionScore{
			Dimension: d,
			Average:   b.sum / float64(b.count),
			ItemCount: b.count,
		})
	}

	return &Result{Normalized: normalized, Dimensions: dims}, nil
}

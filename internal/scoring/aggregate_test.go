package scoring

import (
	"testing"
	"wellbeing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likert(id, dimension string, inverted bool) model.Question {
	return model.Question{ID: id, Dimension: dimension, Scale: model.Scale{Min: 1, Max: 5}, Inverted: inverted}
}

func TestAggregateStressExample(t *testing.T) {
	questions := []model.Question{
		likert("q1", "Stress", false),
		likert("q2", "Stress", true),
	}
	answers := []model.Answer{model.AnswerOf("q1", 5), model.AnswerOf("q2", 1)}

	res, err := Score(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, []model.NormalizedScore{
		{QuestionID: "q1", Dimension: "Stress", Normalized: 100},
		{QuestionID: "q2", Dimension: "Stress", Normalized: 100},
	}, res.Normalized)
	assert.Equal(t, []model.DimensionScore{{Dimension: "Stress", Average: 100, ItemCount: 2}}, res.Dimensions)
}

func TestAggregateEmptyAnswers(t *testing.T) {
	questions := []model.Question{likert("q1", "Stress", false)}

	dims, err := Aggregate(questions, nil)
	require.NoError(t, err)
	assert.NotNil(t, dims)
	assert.Empty(t, dims)
}

func TestAggregateOrdersByFirstAppearanceInQuestions(t *testing.T) {
	questions := []model.Question{
		likert("a1", "Workload", false),
		likert("b1", "Meaning", false),
		likert("a2", "Workload", false),
		likert("c1", "Balance", false),
	}
	answers := []model.Answer{
		model.AnswerOf("c1", 2),
		model.AnswerOf("b1", 4),
		model.AnswerOf("a2", 3),
	}

	dims, err := Aggregate(questions, answers)
	require.NoError(t, err)
	require.Len(t, dims, 3)
	assert.Equal(t, "Workload", dims[0].Dimension)
	assert.Equal(t, "Meaning", dims[1].Dimension)
	assert.Equal(t, "Balance", dims[2].Dimension)
	assert.Equal(t, 50.0, dims[0].Average)
	assert.Equal(t, 1, dims[0].ItemCount)
}

func TestAggregateOmitsUnansweredDimensions(t *testing.T) {
	questions := []model.Question{
		likert("a1", "Workload", false),
		likert("b1", "Meaning", false),
	}
	answers := []model.Answer{
		model.AnswerOf("a1", 2),
		{QuestionID: "b1"},
	}

	dims, err := Aggregate(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, []model.DimensionScore{{Dimension: "Workload", Average: 25, ItemCount: 1}}, dims)
}

func TestAggregateUnknownQuestionAbortsEverything(t *testing.T) {
	questions := []model.Question{likert("q1", "Stress", false)}
	answers := []model.Answer{model.AnswerOf("q1", 3), model.AnswerOf("nope", 3)}

	dims, err := Aggregate(questions, answers)
	assert.Nil(t, dims)

	var unknown *UnknownQuestionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.QuestionID)
	assert.Equal(t, KindUnknownQuestion, unknown.Kind())
}

func TestAggregateOutOfRange(t *testing.T) {
	questions := []model.Question{likert("q1", "Stress", false), likert("q2", "Stress", false)}

	for _, v := range []float64{0, 6, -1, 5.5} {
		dims, err := Aggregate(questions, []model.Answer{model.AnswerOf("q1", 3), model.AnswerOf("q2", v)})
		assert.Nil(t, dims)

		var rangeErr *OutOfRangeAnswerError
		require.ErrorAs(t, err, &rangeErr, "value %v", v)
		assert.Equal(t, "q2", rangeErr.QuestionID)
		assert.Contains(t, rangeErr.Error(), "q2")
	}
}

func TestAggregateDuplicateAnswer(t *testing.T) {
	questions := []model.Question{likert("q1", "Stress", false)}

	_, err := Aggregate(questions, []model.Answer{model.AnswerOf("q1", 3), model.AnswerOf("q1", 4)})
	var dup *DuplicateAnswerError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "q1", dup.QuestionID)
}

func TestAggregateIsIdempotent(t *testing.T) {
	questions := []model.Question{
		likert("q1", "Stress", false),
		likert("q2", "Stress", true),
		likert("q3", "Meaning", false),
	}
	answers := []model.Answer{model.AnswerOf("q1", 2), model.AnswerOf("q2", 4), model.AnswerOf("q3", 5)}

	first, err := Aggregate(questions, answers)
	require.NoError(t, err)
	second, err := Aggregate(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 25.0, first[0].Average)
}

func TestDecorate(t *testing.T) {
	out := Decorate([]model.DimensionScore{{Dimension: "Stress", Average: 66.666, ItemCount: 3}})
	require.Len(t, out, 1)
	assert.Equal(t, 66.7, out[0].Rounded)
	assert.Equal(t, model.BandIntermediate, out[0].Band)
	assert.Equal(t, 3, out[0].ItemCount)
}

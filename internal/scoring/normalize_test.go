package scoring

import (
	"math"
	"testing"
	"wellbeing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(1, 1, 5, false))
	assert.Equal(t, 100.0, Normalize(5, 1, 5, false))
	assert.Equal(t, 100.0, Normalize(1, 1, 5, true))
	assert.Equal(t, 0.0, Normalize(5, 1, 5, true))
	assert.Equal(t, 50.0, Normalize(3, 1, 5, false))
}

func TestNormalizeBoundedAndMonotonic(t *testing.T) {
	scales := [][2]int{{1, 5}, {0, 10}, {1, 7}, {-3, 3}}
	for _, sc := range scales {
		min, max := sc[0], sc[1]
		prev, prevInv := math.Inf(-1), math.Inf(1)
		for raw := float64(min); raw <= float64(max); raw += 0.25 {
			got := Normalize(raw, min, max, false)
			inv := Normalize(raw, min, max, true)

			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
			assert.GreaterOrEqual(t, inv, 0.0)
			assert.LessOrEqual(t, inv, 100.0)
			assert.Greater(t, got, prev, "not increasing at %v on [%d,%d]", raw, min, max)
			assert.Less(t, inv, prevInv, "not decreasing at %v on [%d,%d]", raw, min, max)
			assert.InDelta(t, 100.0, got+inv, 1e-9)

			prev, prevInv = got, inv
		}
	}
}

func TestNormalizeIsNotRounded(t *testing.T) {
	assert.InDelta(t, 33.3333, Normalize(3, 1, 7, false), 1e-3)
}

func TestNormalizeAnswer(t *testing.T) {
	q := model.Question{ID: "q1", Dimension: "Stress", Scale: model.Scale{Min: 1, Max: 5}}

	score, ok, err := NormalizeAnswer(q, model.AnswerOf("q1", 4))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 75.0, score)

	score, ok, err = NormalizeAnswer(q, model.Answer{QuestionID: "q1"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)

	_, _, err = NormalizeAnswer(q, model.AnswerOf("q1", 0))
	var rangeErr *OutOfRangeAnswerError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "q1", rangeErr.Question())

	_, _, err = NormalizeAnswer(q, model.AnswerOf("q1", math.NaN()))
	require.ErrorAs(t, err, &rangeErr)

	bad := model.Question{ID: "q9", Scale: model.Scale{Min: 5, Max: 5}}
	_, _, err = NormalizeAnswer(bad, model.AnswerOf("q9", 5))
	var scaleErr *InvalidScaleError
	require.ErrorAs(t, err, &scaleErr)
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, model.BandFavorable, BandOf(70))
	assert.Equal(t, model.BandIntermediate, BandOf(69.9))
	assert.Equal(t, model.BandIntermediate, BandOf(40))
	assert.Equal(t, model.BandSensitive, BandOf(39.99))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 66.7, RoundTenth(66.6666))
	assert.Equal(t, 12.4, RoundTenth(12.44))
	assert.Equal(t, 100.0, RoundTenth(100))
}

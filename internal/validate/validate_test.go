package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `validate:"nonblank"`
	Pseudo string `validate:"pseudo"`
}

func TestNonblankRejectsWhitespace(t *testing.T) {
	v := New()
	err := v.Struct(sample{Name: "   ", Pseudo: "alice"})
	require.Error(t, err)
	assert.Equal(t, []string{"sample.Name: nonblank"}, Describe(err))
}

func TestPseudoAllowsLettersDigitsAndDashes(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(sample{Name: "x", Pseudo: "Élodie_42-b"}))
	assert.Error(t, v.Struct(sample{Name: "x", Pseudo: "bob smith"}))
	assert.Error(t, v.Struct(sample{Name: "x", Pseudo: "eve!"}))
}

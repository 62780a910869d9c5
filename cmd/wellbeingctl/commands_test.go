package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wellbeing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"answers":[{"questionId":"q0_1","value":5},{"questionId":"q2_2","value":5}]}`), 0o600))

	out, err := execute(t, "", "score", "--answers", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Satisfaction globale")
	assert.Contains(t, out, "100.0")
	assert.Contains(t, out, "sensitive")
}

func TestScoreFromStdinAsJSON(t *testing.T) {
	out, err := execute(t, `[{"questionId":"q0_1","value":3}]`, "score", "--json")
	require.NoError(t, err)

	var scores []model.ScoredDimension
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, 50.0, scores[0].Rounded)
	assert.Equal(t, model.BandIntermediate, scores[0].Band)
}

func TestScoreRejectsUnknownQuestion(t *testing.T) {
	_, err := execute(t, `[{"questionId":"nope","value":3}]`, "score")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "38 questions")
	assert.Contains(t, out, "Charge de travail")
}

func TestReportWithoutKeyFails(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := execute(t, `[{"questionId":"q0_1","value":3}]`, "report", "--locale", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

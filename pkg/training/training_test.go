package training

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFallsBackToDefaults(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.List())

	ex, err := c.Get("oven-program-timing")
	require.NoError(t, err)
	assert.Equal(t, "method", ex.Topic)

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercises.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
exercises:
  - id: custom
    title: Custom
    questions:
      - id: a
        prompt: "2+2"
        answer: 4
`), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.List(), 1)
	assert.Equal(t, "custom", c.List()[0].ID)
}

func TestParseCatalogRejectsDuplicates(t *testing.T) {
	_, err := ParseCatalog([]byte("exercises:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("exercises: [oops"))
	assert.Error(t, err)
}

func TestGradeSubmission(t *testing.T) {
	ex := Exercise{
		ID: "lod",
		Questions: []Question{
			{ID: "q1", Answer: 0.11, Tolerance: 0.005},
			{ID: "q2", Answer: 0.333, Tolerance: 0.005},
			{ID: "q3", Answer: 4},
		},
	}

	g := GradeSubmission(ex, map[string]float64{"q1": 0.112, "q2": 0.5, "q3": 4})
	assert.Equal(t, 2, g.Score)
	assert.Equal(t, 3, g.Total)
	assert.Equal(t, 66.7, g.Percent)
	assert.False(t, g.Passed)
	require.Len(t, g.Results, 3)
	assert.True(t, g.Results[0].Correct)
	assert.False(t, g.Results[1].Correct)

	missing := GradeSubmission(ex, map[string]float64{"q1": 0.11, "q3": 4})
	assert.Nil(t, missing.Results[1].Given)
	assert.False(t, missing.Results[1].Correct)

	full := GradeSubmission(ex, map[string]float64{"q1": 0.11, "q2": 0.333, "q3": 4})
	assert.Equal(t, 100.0, full.Percent)
	assert.True(t, full.Passed)
}

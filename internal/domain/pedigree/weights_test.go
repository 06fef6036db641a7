package pedigree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights_PartialOverride(t *testing.T) {
	w, err := ParseWeights([]byte(`
[scoring]
health = 0.30
inbreeding_penalty = 40
`))
	require.NoError(t, err)

	assert.InDelta(t, 0.30, w.Health, 1e-9)
	assert.InDelta(t, 40, w.InbreedingPenalty, 1e-9)
	assert.InDelta(t, WeightGeneticRisk, w.GeneticRisk, 1e-9)
	assert.InDelta(t, PenaltyUnknownPedigree, w.UnknownPedigreePenalty, 1e-9)
}

func TestParseWeights_RejectsNegative(t *testing.T) {
	_, err := ParseWeights([]byte("[scoring]\nbreed = -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "breed")
}

func TestParseWeights_InvalidTOML(t *testing.T) {
	_, err := ParseWeights([]byte("[scoring\n"))
	require.Error(t, err)
}

func TestLoadWeights(t *testing.T) {
	w, err := LoadWeights("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)

	path := filepath.Join(t.TempDir(), "scoring.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scoring]\ncolor = 0.1\n"), 0o600))

	w, err = LoadWeights(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, w.Color, 1e-9)

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

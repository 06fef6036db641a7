package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-pedigree/internal/domain/pedigree"
)

const familyFixture = `[
  {"id": "gs", "name": "Grandsire", "species": "dog", "sex": "male", "breed": "Beagle"},
  {"id": "gd", "name": "Granddam", "species": "dog", "sex": "female", "breed": "Beagle"},
  {"id": "sire", "name": "Sire", "species": "dog", "sex": "male", "breed": "Beagle", "father_id": "gs", "mother_id": "gd", "birth_date": "2019-02-01"},
  {"id": "dam", "name": "Dam", "species": "dog", "sex": "female", "breed": "Beagle"},
  {"id": "b", "name": "B", "species": "dog", "sex": "female", "breed": "Beagle", "father_id": "sire", "mother_id": "dam", "birth_date": "2022-06-01"},
  {"id": "a", "name": "A", "species": "dog", "sex": "male", "breed": "Beagle", "father_id": "sire", "mother_id": "dam", "birth_date": "2022-01-01", "registration_code": "KNL-09-009"}
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.json")
	require.NoError(t, os.WriteFile(path, []byte(familyFixture), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAncestorsCmd_JSON(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "--from-file", path, "--json", "ancestors", "a")
	require.NoError(t, err)

	var rows []ancestorRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "self", rows[0].Label)
	assert.Equal(t, "paternal grandsire", rows[3].Label)

	out, err = run(t, "--from-file", path, "ancestors", "a", "--max-generation", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "RELATION")
	assert.NotContains(t, out, "Grandsire")
}

func TestRegisterCmd_DryRunThenApply(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "--from-file", path, "register", "gs", "--prefix", "KNL", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run: prefix KNL, 4 assigned")
	before, _ := os.ReadFile(path)
	assert.JSONEq(t, familyFixture, string(before))

	out, err = run(t, "--from-file", path, "--json", "register", "gs", "--prefix", "KNL")
	require.NoError(t, err)
	var res registrationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Applied)
	assert.Equal(t, 4, res.Set) // gs, sire, a (código viejo distinto), b

	repo, err := loadFixture(path)
	require.NoError(t, err)
	a, err := repo.GetByID(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, "KNL-02-001", a.RegistrationCode)
	b, err := repo.GetByID(t.Context(), "b")
	require.NoError(t, err)
	assert.Equal(t, "KNL-02-002", b.RegistrationCode)

	out, err = run(t, "--from-file", path, "register", "gs", "--prefix", "KNL", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "0 set, 0 cleared")
}

func TestCompatCmd(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "--from-file", path, "--json", "compat", "a", "b")
	require.NoError(t, err)
	var v pedigree.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, pedigree.BreedingInbreeding, v.Breeding.Type)

	_, err = run(t, "--from-file", path, "compat", "a", "ghost")
	assert.ErrorIs(t, err, pedigree.ErrNotFound)
}

func TestNoDataSource(t *testing.T) {
	t.Setenv("DB_DSN", "")
	_, err := run(t, "ancestors", "a")
	assert.ErrorContains(t, err, "no data source")
}

func TestLoadFixture_UnreadableBirthDateIsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "name": "X", "species": "dog", "birth_date": "04/03/2021"}]`), 0o644))

	repo, err := loadFixture(path)
	require.NoError(t, err)
	x, err := repo.GetByID(t.Context(), "x")
	require.NoError(t, err)
	assert.Nil(t, x.BirthDate)
}

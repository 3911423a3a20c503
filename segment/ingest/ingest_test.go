package ingest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSources_AllInputs(t *testing.T) {
	ev := writeFile(t, "ev.csv", "State,EV Registrations\nGoa,100\nKerala,300\n")
	mfr := writeFile(t, "mfr.csv", "Name,State\nA,Kerala\nB,Kerala\n")
	sales := writeSalesWorkbook(t, "Sales", [][]any{{"State", "Year", "Cars"}, {"Goa", 2024, 40}})

	src, err := LoadSources(Paths{EVData: ev, Manufacturers: mfr, Sales: sales})
	require.NoError(t, err)
	assert.Len(t, src.States, 2)
	assert.Equal(t, map[string]int{"kerala": 2}, src.Manufacturers)
	assert.Equal(t, 2024, src.SalesYear)
	assert.Equal(t, 40.0, src.Sales["goa"]["cars"])
}

func TestLoadSources_PrimaryMissing_ReturnsErrPrimaryUnavailable(t *testing.T) {
	_, err := LoadSources(Paths{EVData: filepath.Join(t.TempDir(), "absent.csv")})
	assert.True(t, errors.Is(err, ErrPrimaryUnavailable))

	_, err = LoadSources(Paths{})
	assert.True(t, errors.Is(err, ErrPrimaryUnavailable))
}

func TestLoadSources_SecondaryMissing_DegradesToZero(t *testing.T) {
	// GIVEN a valid primary file and unreadable secondary files
	dir := t.TempDir()
	ev := writeFile(t, "ev.csv", "State,EV Registrations\nGoa,100\n")

	// WHEN loading
	src, err := LoadSources(Paths{
		EVData:        ev,
		Manufacturers: filepath.Join(dir, "absent.csv"),
		Sales:         filepath.Join(dir, "absent.xlsx"),
	})

	// THEN loading succeeds with empty secondary tables
	require.NoError(t, err)
	assert.Len(t, src.States, 1)
	assert.Nil(t, src.Manufacturers)
	assert.Nil(t, src.Sales)
	assert.Equal(t, 0, src.SalesYear)
}

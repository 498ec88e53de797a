package database_test

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMigrations(t *testing.T) source.Driver {
	t.Helper()
	driver, err := (&file.File{}).Open("file://../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })
	return driver
}

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(body)
}

func TestMigrations_SequentialWithDownSteps(t *testing.T) {
	driver := openMigrations(t)

	version, err := driver.First()
	require.NoError(t, err)
	want := uint(1)
	for {
		assert.Equal(t, want, version, "migration versions must not skip")

		up, _, err := driver.ReadUp(version)
		require.NoError(t, err, "version %d has no up step", version)
		assert.NotEmpty(t, readAll(t, up))

		down, _, err := driver.ReadDown(version)
		require.NoError(t, err, "version %d has no down step", version)
		assert.NotEmpty(t, readAll(t, down))

		version, err = driver.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		want++
	}
	assert.GreaterOrEqual(t, want, uint(3))
}

func TestMigrations_BracketColumnsHoldFloats(t *testing.T) {
	driver := openMigrations(t)

	up, identifier, err := driver.ReadUp(3)
	require.NoError(t, err)
	assert.Equal(t, "widen_tax_bracket_precision", identifier)

	sql := readAll(t, up)
	assert.Contains(t, sql, "marginal_rate TYPE DOUBLE PRECISION")
	assert.Contains(t, sql, "income_limit  TYPE DOUBLE PRECISION")
}

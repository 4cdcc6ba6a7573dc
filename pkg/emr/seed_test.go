package emr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedDefault(t *testing.T) {
	fixture, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, fixture.Patients, 2)
	assert.Equal(t, "Doe", fixture.Patients[0].LastName)
	assert.Equal(t, "Johnson", fixture.Patients[1].LastName)
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	fixtureYAML := `patients:
  - first_name: Maria
    last_name: Alvarez
    date_of_birth: "1978-11-30"
    gender: Female
    phone: "(555) 999-0000"
`
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	fixture, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, fixture.Patients, 1)
	assert.Equal(t, "Alvarez", fixture.Patients[0].LastName)
	assert.Equal(t, "(555) 999-0000", fixture.Patients[0].Phone)
}

func TestLoadSeedMissingFileFallsBack(t *testing.T) {
	fixture, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Len(t, fixture.Patients, 2)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, DefaultSeed()))
	require.NoError(t, svc.Seed(ctx, DefaultSeed()))

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
}

func TestSeedSkippedWhenPatientsExist(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, samplePatient())
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx, DefaultSeed()))

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestExportDatabase(t *testing.T) {
	dir := t.TempDir()

	svc, _, _ := newTestServiceAt(t, filepath.Join(dir, "source.db"))
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, DefaultSeed()))

	target := filepath.Join(dir, "backup.db")
	require.NoError(t, svc.ExportDatabase(ctx, target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportDatabaseEmptyPath(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.Error(t, svc.ExportDatabase(context.Background(), ""))
}

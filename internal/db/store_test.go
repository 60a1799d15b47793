package db

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

const migrationsPath = "../../migrations"

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := connect(DriverSQLite, ":memory:", 1, time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, RunMigrations(conn, migrationsPath))
	return conn
}

func TestInitRejectsUnknownDriver(t *testing.T) {
	_, err := Init("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported")
}

func TestMigrationsAreRepeatable(t *testing.T) {
	conn := testDB(t)
	assert.NoError(t, RunMigrations(conn, migrationsPath))
}

func TestSeedAndListTemples(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()
	builtin := directory.BuiltinTemples()

	seeded, err := store.SeedTemples(ctx, builtin)
	require.NoError(t, err)
	assert.True(t, seeded)

	got, err := store.ListTemples(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(builtin))
	for i := range builtin {
		assert.Equal(t, builtin[i].ID, got[i].ID)
		assert.Equal(t, builtin[i].Name, got[i].Name)
		assert.Equal(t, builtin[i].CrowdStatus, got[i].CrowdStatus)
		assert.Equal(t, builtin[i].SpecialTimings, got[i].SpecialTimings)
		assert.Equal(t, builtin[i].Alerts, got[i].Alerts)
	}

	dir, err := directory.New(got)
	require.NoError(t, err)
	assert.Equal(t, directory.Builtin().Popular(), dir.Popular())
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	first := []model.TempleRecord{{ID: "only", Name: "Only Temple", Location: "Somewhere", CrowdStatus: model.CrowdLow}}
	seeded, err := store.SeedTemples(ctx, first)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = store.SeedTemples(ctx, directory.BuiltinTemples())
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := store.CountTemples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.ListTemples(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Alerts)
	assert.NotNil(t, got[0].Alerts)
}

func TestSeedRollsBackOnDuplicateIDs(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	dup := []model.TempleRecord{
		{ID: "twin", Name: "A", CrowdStatus: model.CrowdLow},
		{ID: "twin", Name: "B", CrowdStatus: model.CrowdLow},
	}
	_, err := store.SeedTemples(ctx, dup)
	require.Error(t, err)

	n, err := store.CountTemples(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentportal/core"
	appfs "github.com/trezcool/studentportal/fs"
)

func Test_driverName(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{driver: core.DriverSQLite, want: "sqlite3"},
		{driver: core.DriverPostgres, want: "postgres"},
		{driver: core.DriverRedis, wantErr: true},
		{driver: "mysql", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := driverName(tt.driver)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedDriver))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_unsupported(t *testing.T) {
	_, err := Open(context.Background(), core.StorageConfig{Driver: core.DriverMemory})
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}

func TestMigrate(t *testing.T) {
	db, err := Open(context.Background(), core.StorageConfig{Driver: core.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	origRun := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origRun })

	var gotCommand, gotDir string
	var gotArgs []string
	gooseRunFunc = func(command string, _ *sql.DB, dir string, args ...string) error {
		gotCommand, gotDir, gotArgs = command, dir, args
		if command == "lol" {
			return errors.New(`"lol": no such command`)
		}
		return nil
	}

	require.NoError(t, Migrate(db, "up-to", "1"))
	assert.Equal(t, "up-to", gotCommand)
	assert.Equal(t, appfs.MigrationsDir, gotDir)
	assert.Equal(t, []string{"1"}, gotArgs)

	assert.EqualError(t, Migrate(db, "lol"), `migrating database: "lol": no such command`)
}

func TestMigrate_embedded(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, core.StorageConfig{Driver: core.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db, "up"))

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM kv_entries`))
	assert.Equal(t, 0, count)

	require.NoError(t, Migrate(db, "down"))
	assert.Error(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM kv_entries`))
}

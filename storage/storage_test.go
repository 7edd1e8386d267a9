package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentportal/core"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		storage core.StorageConfig
		wantErr error
	}{
		{name: "memory", storage: core.StorageConfig{Driver: core.DriverMemory, Namespace: "test"}},
		{name: "sqlite", storage: core.StorageConfig{Driver: core.DriverSQLite, DSN: ":memory:", Namespace: "test"}},
		{name: "unknown", storage: core.StorageConfig{Driver: "floppy"}, wantErr: ErrUnknownDriver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, closeNs, err := Open(ctx, &core.Config{Storage: tt.storage})
			require.NotNil(t, closeNs)
			defer func() { assert.NoError(t, closeNs()) }()

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)

			require.NoError(t, ns.Set(ctx, "loggedInUser", "stu_1"))
			val, err := ns.Get(ctx, "loggedInUser")
			require.NoError(t, err)
			assert.Equal(t, "stu_1", val)
		})
	}
}

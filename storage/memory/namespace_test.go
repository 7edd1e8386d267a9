package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentportal/core"
)

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	db := Open()
	ns := db.Namespace("studentportal")
	other := db.Namespace("other")

	_, err := ns.Get(ctx, "students")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, ns.Set(ctx, "students", "[]"))
	val, err := ns.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	// namespaces are isolated
	_, err = other.Get(ctx, "students")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	// same name, same data
	val, err = db.Namespace("studentportal").Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	require.NoError(t, ns.Set(ctx, "students", "[{}]"))
	val, _ = ns.Get(ctx, "students")
	assert.Equal(t, "[{}]", val)

	require.NoError(t, ns.Delete(ctx, "students"))
	require.NoError(t, ns.Delete(ctx, "students"))
	require.NoError(t, other.Delete(ctx, "nothing"))
	_, err = ns.Get(ctx, "students")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	assert.NoError(t, ns.Ping(ctx))
}

func TestNamespace_concurrent(t *testing.T) {
	ctx := context.Background()
	ns := Open().Namespace("studentportal")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ns.Set(ctx, "k", "v")
			_, _ = ns.Get(ctx, "k")
		}()
	}
	wg.Wait()

	val, err := ns.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

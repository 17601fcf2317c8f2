package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dreamhouse/pkg/observability"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/store"
	"github.com/matzehuels/dreamhouse/pkg/store/memstore"
)

type recordingHooks struct {
	mu  sync.Mutex
	ops []string
}

func (h *recordingHooks) OnStoreOp(_ context.Context, backend, op string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	status := "ok"
	if err != nil {
		status = "err"
	}
	h.ops = append(h.ops, backend+":"+op+":"+status)
}

func TestInstrumented(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	t.Cleanup(observability.Reset)

	s := store.Instrumented(memstore.New(), store.BackendMemory)
	ctx := context.Background()

	id, err := s.Save(ctx, store.Design{Name: "A"})
	require.NoError(t, err)
	_, err = s.Get(ctx, id)
	require.NoError(t, err)
	_, err = s.Get(ctx, "nope")
	require.Error(t, err)
	_, err = s.List(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"memory:save:ok",
		"memory:get:ok",
		"memory:get:err",
		"memory:list:ok",
	}, hooks.ops)
}

func TestPrepare(t *testing.T) {
	d, err := store.Prepare(store.Design{})
	require.NoError(t, err)
	assert.Equal(t, plan.DefaultName, d.Name)
	assert.False(t, d.CreatedAt.IsZero())
	assert.NotNil(t, d.Layout.Rooms)
}

func TestLimit(t *testing.T) {
	assert.Equal(t, store.DefaultListLimit, store.Limit(0))
	assert.Equal(t, store.DefaultListLimit, store.Limit(-3))
	assert.Equal(t, 5, store.Limit(5))
}

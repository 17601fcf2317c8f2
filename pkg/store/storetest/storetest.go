// Package storetest is the behavior contract shared by every design store
// backend's tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// Run exercises s. The store must be empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		got, err := s.List(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	layout := plan.FromCounts("Lake House", plan.Counts{Bedrooms: 2, Halls: 1, Garden: true})
	layout.Rooms[0].Width = plan.Size(5)

	var firstID string
	t.Run("save and get", func(t *testing.T) {
		id, err := s.Save(ctx, store.Design{Name: "Lake House", Prompt: "2 bed with garden", Layout: layout})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		firstID = id

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Lake House", got.Name)
		assert.Equal(t, "2 bed with garden", got.Prompt)
		assert.Equal(t, layout.Rooms, got.Layout.Rooms)
		assert.Equal(t, layout.Extras, got.Layout.Extras)
		require.NotNil(t, got.Layout.Rooms[0].Width)
		assert.Equal(t, 5.0, *got.Layout.Rooms[0].Width)
		assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
	})

	t.Run("name defaults to layout name", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		id, err := s.Save(ctx, store.Design{Layout: plan.Layout{Name: "Cabin"}})
		require.NoError(t, err)
		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Cabin", got.Name)
		assert.NotNil(t, got.Layout.Rooms)
	})

	t.Run("list newest first", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		id, err := s.Save(ctx, store.Design{Name: "Newest", Layout: layout})
		require.NoError(t, err)

		got, err := s.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, id, got[0].ID)
		assert.Equal(t, "Newest", got[0].Name)
		assert.Equal(t, firstID, got[2].ID)

		limited, err := s.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("invalid design", func(t *testing.T) {
		bad := plan.Layout{Rooms: []plan.Room{{Type: plan.Hall, ID: "H"}, {Type: plan.Hall, ID: "H"}}}
		_, err := s.Save(ctx, store.Design{Name: "Bad", Layout: bad})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout), "got %v", err)

		_, err = s.Save(ctx, store.Design{Name: "bad\x00name"})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidName), "got %v", err)
	})

	t.Run("missing design", func(t *testing.T) {
		_, err := s.Get(ctx, "999999")
		assert.True(t, store.IsNotFound(err), "got %v", err)
		_, err = s.Get(ctx, "not-an-id")
		assert.True(t, store.IsNotFound(err), "got %v", err)
		assert.True(t, store.IsNotFound(s.Delete(ctx, "999999")))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, firstID))
		_, err := s.Get(ctx, firstID)
		assert.True(t, store.IsNotFound(err))
		got, err := s.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

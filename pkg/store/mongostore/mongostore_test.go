package mongostore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dreamhouse/pkg/store/storetest"
)

func TestContract(t *testing.T) {
	uri := os.Getenv("DREAMHOUSE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("DREAMHOUSE_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	db := "dreamhouse_test_" + uuid.NewString()[:8]
	s, err := Open(ctx, uri, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.client.Database(db).Drop(context.Background())
		_ = s.Close()
	})

	storetest.Run(t, s)
}

func TestOpenRequiresURI(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	require.Error(t, err)
}

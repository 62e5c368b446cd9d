package maintenance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/maintenance"
	testutil "github.com/trezcool/edudash/tests"
)

func TestOpenCount(t *testing.T) {
	reqs := []maintenance.Request{
		{Status: maintenance.StatusOpen},
		{Status: maintenance.StatusInProgress},
		{Status: maintenance.StatusOpen},
		{Status: maintenance.StatusCancelled},
	}
	assert.Equal(t, 2, maintenance.OpenCount(reqs))
	assert.Zero(t, maintenance.OpenCount(nil))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(testutil.OpenDB(t)).Maintenance

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, maintenance.OpenCount(all))

	reqs, err := svc.List(ctx, "2")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Electrical", reqs[0].Category)

	reqs, err = svc.List(ctx, "9")
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/rowstore"
)

func newStaffFixture(t *testing.T) StaffService {
	t.Helper()
	store := rowstore.NewMemory()
	ctx := context.Background()

	seed := [][]string{
		{"S01", "May", "sales", "TRUE"},
		{"S02", "Beam", "Sales", "FALSE"},
		{"A01", "Ink", "artist", "TRUE"},
	}
	for _, row := range seed {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetStaff, row))
	}
	return NewStaffService(repositories.NewStaffRepository(store))
}

func TestGetStaffAll(t *testing.T) {
	svc := newStaffFixture(t)

	staff, err := svc.GetStaff(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, staff, 3)
}

func TestGetStaffByRoleCaseInsensitive(t *testing.T) {
	svc := newStaffFixture(t)

	sales, err := svc.GetStaff(context.Background(), RoleSales, false)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	artists, err := svc.GetStaff(context.Background(), RoleArtist, false)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Ink", artists[0].StaffName)
}

func TestGetStaffActiveOnly(t *testing.T) {
	svc := newStaffFixture(t)

	sales, err := svc.GetStaff(context.Background(), RoleSales, true)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "May", sales[0].StaffName)
}

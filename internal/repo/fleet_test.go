package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
)

// seedDriverWithVehicle creates a driver, a vehicle, and links the two.
func seedDriverWithVehicle(t *testing.T, tx pgx.Tx) (domain.Driver, domain.Vehicle) {
	t.Helper()
	ctx := context.Background()

	d, err := repo.NewDriverRepo(tx).Create(ctx, domain.Driver{FullName: "Amra Hodzic"})
	require.NoError(t, err)

	vehicles := repo.NewVehicleRepo(tx)
	v, err := vehicles.Create(ctx, domain.Vehicle{Type: "truck", Registration: "A12-B-345"})
	require.NoError(t, err)

	v, err = vehicles.SetDriver(ctx, v.ID, d.ID)
	require.NoError(t, err)
	return d, v
}

func TestDriverRepo_CreateAndGet(t *testing.T) {
	r := repo.NewDriverRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Driver{FullName: "Emir Kovac"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.Points)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestDriverRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewDriverRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDriverRepo_AddPoints(t *testing.T) {
	r := repo.NewDriverRepo(newTestTx(t))
	ctx := context.Background()

	d, err := r.Create(ctx, domain.Driver{FullName: "Lejla Begic"})
	require.NoError(t, err)

	_, err = r.AddPoints(ctx, d.ID, 20)
	require.NoError(t, err)
	got, err := r.AddPoints(ctx, d.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, 25, got.Points)
}

func TestDriverRepo_AddPoints_NotFound(t *testing.T) {
	r := repo.NewDriverRepo(newTestTx(t))

	_, err := r.AddPoints(context.Background(), uuid.New(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDriverRepo_List(t *testing.T) {
	r := repo.NewDriverRepo(newTestTx(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := r.Create(ctx, domain.Driver{FullName: name})
		require.NoError(t, err)
	}

	page, total, err := r.List(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.GreaterOrEqual(t, total, int64(3))
}

func TestVehicleRepo_SetDriverAndGetByDriver(t *testing.T) {
	tx := newTestTx(t)
	d, v := seedDriverWithVehicle(t, tx)

	require.NotNil(t, v.DriverID)
	assert.Equal(t, d.ID, *v.DriverID)

	got, err := repo.NewVehicleRepo(tx).GetByDriver(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
}

func TestVehicleRepo_SetDriver_SecondVehicleConflicts(t *testing.T) {
	tx := newTestTx(t)
	d, _ := seedDriverWithVehicle(t, tx)
	vehicles := repo.NewVehicleRepo(tx)
	ctx := context.Background()

	other, err := vehicles.Create(ctx, domain.Vehicle{Type: "van", Registration: "K01-J-999"})
	require.NoError(t, err)

	_, err = vehicles.SetDriver(ctx, other.ID, d.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleRepo_GetByDriver_NoneHeld(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	_, err := r.GetByDriver(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

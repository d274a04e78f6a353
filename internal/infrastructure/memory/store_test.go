package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

func seedProduct(t *testing.T, s *Store, id string, qty int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Repositories().Products.Create(context.Background(), &entity.Product{
		ID: id, CompanyID: "c-1", SKU: "SKU-" + id, Name: id, QuantityOnHand: qty, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestRun_RestauraAlFallar(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p-1", 10)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(repos ports.Repositories) error {
		n, err := repos.Products.DecreaseStock(ctx, "p-1", 4)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.NoError(t, repos.Notifications.Create(ctx, &entity.Notification{ID: "n-1", UserID: "u-1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repositories().Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.QuantityOnHand)
	unread, err := s.Repositories().Notifications.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(ports.Repositories) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDecreaseStock_Condicional(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p-1", 5)
	repos := s.Repositories()
	ctx := context.Background()

	n, err := repos.Products.DecreaseStock(ctx, "p-1", 6)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repos.Products.DecreaseStock(ctx, "p-1", 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repos.Products.DecreaseStock(ctx, "no-existe", 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Error(t, repos.Products.SetQuantityOnHand(ctx, "p-1", -1))
	assert.ErrorIs(t, repos.Products.SetQuantityOnHand(ctx, "no-existe", 1), domain.ErrNotFound)
}

func TestProductos_SKUUnicoPorEmpresaYCopias(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p-1", 1)
	repos := s.Repositories()
	ctx := context.Background()

	err := repos.Products.Create(ctx, &entity.Product{ID: "p-2", CompanyID: "c-1", SKU: "SKU-p-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p-3", CompanyID: "c-2", SKU: "SKU-p-1"}))

	p, err := repos.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	p.QuantityOnHand = 999
	again, err := repos.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.QuantityOnHand, "los repos devuelven copias")
}

func TestPage(t *testing.T) {
	cases := []struct {
		n, limit, offset int
		from, to         int
	}{
		{10, 0, 0, 0, 10},
		{10, 3, 0, 0, 3},
		{10, 3, 8, 8, 10},
		{10, 5, 20, 10, 10},
		{10, 5, -1, 0, 5},
	}
	for _, c := range cases {
		from, to := page(c.n, c.limit, c.offset)
		assert.Equal(t, c.from, from)
		assert.Equal(t, c.to, to)
	}
}

package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/notification"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/memory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

type recordingPublisher struct{ got []ports.Event }

func (p *recordingPublisher) Publish(_ context.Context, ev ports.Event) error {
	p.got = append(p.got, ev)
	return nil
}

func setup(t *testing.T) (*notification.NotificationUseCase, ports.Repositories, *recordingPublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	uc := notification.NewNotificationUseCase(store, events.NewDispatcher(pub, nil, logger.Nop()), nil, logger.Nop())
	return uc, store.Repositories(), pub
}

func addUser(t *testing.T, repos ports.Repositories, companyID, role, status string) string {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), CompanyID: companyID, Email: uuid.NewString() + "@test.local",
		Role: role, Status: status, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u.ID
}

func TestEmit_SoloAdminsActivosDeLaEmpresa(t *testing.T) {
	uc, repos, pub := setup(t)
	ctx := context.Background()
	company := uuid.NewString()
	admin1 := addUser(t, repos, company, entity.RoleAdmin, "active")
	admin2 := addUser(t, repos, company, entity.RoleAdmin, "active")
	inactive := addUser(t, repos, company, entity.RoleAdmin, "inactive")
	staff := addUser(t, repos, company, entity.RoleInventoryStaff, "active")
	other := addUser(t, repos, uuid.NewString(), entity.RoleAdmin, "active")

	uc.Emit(ctx, ports.NotificationInput{
		CompanyID: company,
		Type:      entity.NotificationSystem,
		Title:     "Mantenimiento",
		Message:   "El sistema se reinicia a medianoche",
	})

	for _, id := range []string{admin1, admin2} {
		n, err := uc.UnreadCount(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	for _, id := range []string{inactive, staff, other} {
		n, err := uc.UnreadCount(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
	assert.Len(t, pub.got, 2)
	for _, ev := range pub.got {
		assert.Equal(t, ports.EventNotificationCreated, ev.Type)
	}
}

func TestLowStock_Mensaje(t *testing.T) {
	uc, repos, _ := setup(t)
	ctx := context.Background()
	company := uuid.NewString()
	admin := addUser(t, repos, company, entity.RoleAdmin, "active")

	uc.LowStock(ctx, &entity.Product{ID: "p-1", CompanyID: company, SKU: "LEC-1", Name: "Leche", QuantityOnHand: 4, ReorderPoint: 10})
	uc.LowStock(ctx, nil)

	list, err := uc.UnreadMine(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	n := list[0]
	assert.Equal(t, entity.NotificationLowStock, n.Type)
	assert.Equal(t, "Alerta de stock bajo: Leche", n.Title)
	assert.Contains(t, n.Message, "SKU: LEC-1")
	assert.Contains(t, n.Message, "Actual: 4")
	assert.Equal(t, entity.ReferenceProduct, n.ReferenceType)
	assert.Equal(t, "p-1", n.ReferenceID)
}

func TestMarcarLeidas(t *testing.T) {
	uc, repos, _ := setup(t)
	ctx := context.Background()
	company := uuid.NewString()
	admin := addUser(t, repos, company, entity.RoleAdmin, "active")
	intruder := addUser(t, repos, company, entity.RoleAdmin, "active")
	for i := 0; i < 3; i++ {
		uc.Emit(ctx, ports.NotificationInput{CompanyID: company, Type: entity.NotificationSystem, Title: "aviso"})
	}

	page, err := uc.ListMine(ctx, admin, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	first := page.Items[0].ID

	err = uc.MarkRead(ctx, intruder, first)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "no se marca la notificación de otro usuario")

	require.NoError(t, uc.MarkRead(ctx, admin, first))
	n, err := uc.UnreadCount(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	changed, err := uc.MarkAllRead(ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)
	n, err = uc.UnreadCount(ctx, admin)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = uc.UnreadCount(ctx, intruder)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

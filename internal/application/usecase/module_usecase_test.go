package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/usecase"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/memory"
)

func TestModuleService(t *testing.T) {
	repos := memory.NewStore().Repositories()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c-1", Name: "Activa", Status: entity.CompanyStatusActive}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c-2", Name: "Suspendida", Status: entity.CompanyStatusSuspended}))

	companies := usecase.NewCompanyUseCase(repos.Companies)
	yesterday := now.AddDate(0, 0, -1)
	for _, in := range []struct {
		company string
		req     dto.SetModuleRequest
	}{
		{"c-1", dto.SetModuleRequest{ModuleName: entity.ModuleInventory, IsActive: true}},
		{"c-1", dto.SetModuleRequest{ModuleName: entity.ModuleSales, IsActive: true, ExpiresAt: &yesterday}},
		{"c-1", dto.SetModuleRequest{ModuleName: entity.ModulePurchasing, IsActive: false}},
		{"c-2", dto.SetModuleRequest{ModuleName: entity.ModuleInventory, IsActive: true}},
	} {
		_, err := companies.SetModule(ctx, in.company, in.req)
		require.NoError(t, err)
	}

	svc := usecase.NewModuleService(repos.Companies)
	cases := []struct {
		company, module string
		want            bool
	}{
		{"c-1", entity.ModuleInventory, true},
		{"c-1", entity.ModuleSales, false},
		{"c-1", entity.ModulePurchasing, false},
		{"c-2", entity.ModuleInventory, false},
		{"no-existe", entity.ModuleInventory, false},
	}
	for _, c := range cases {
		got, err := svc.HasActiveModule(ctx, c.company, c.module)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s/%s", c.company, c.module)
	}

	_, err := svc.HasActiveModule(ctx, "", entity.ModuleSales)
	assert.Error(t, err)
}

func TestSetModule_Desconocido(t *testing.T) {
	repos := memory.NewStore().Repositories()
	_, err := usecase.NewCompanyUseCase(repos.Companies).SetModule(context.Background(), "c-1", dto.SetModuleRequest{ModuleName: "payroll"})
	assert.Error(t, err)
}

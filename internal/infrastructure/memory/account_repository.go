package memory

import (
	"context"
	"time"

	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
)

// UserRepo usuarios en memoria. Email único global.
type UserRepo struct{ base }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.guard()()
	st := r.state()
	for _, existing := range st.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	st.users[u.ID] = &cp
	st.userOrder = append(st.userOrder, u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.guard()()
	u, ok := r.state().users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.guard()()
	for _, u := range r.state().users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	defer r.guard()()
	all := r.filter(func(u *entity.User) bool { return u.CompanyID == companyID })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *UserRepo) ListActiveByRole(_ context.Context, companyID, role string) ([]*entity.User, error) {
	defer r.guard()()
	return r.filter(func(u *entity.User) bool {
		return u.CompanyID == companyID && u.Role == role && u.IsActive()
	}), nil
}

func (r *UserRepo) filter(keep func(*entity.User) bool) []*entity.User {
	st := r.state()
	var out []*entity.User
	for _, id := range st.userOrder {
		if u := st.users[id]; keep(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

// CompanyRepo empresas y módulos en memoria.
type CompanyRepo struct{ base }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	defer r.guard()()
	st := r.state()
	cp := *c
	st.companies[c.ID] = &cp
	st.companyOrder = append(st.companyOrder, c.ID)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	defer r.guard()()
	c, ok := r.state().companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	defer r.guard()()
	all := r.filter(func(*entity.Company) bool { return true })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *CompanyRepo) ListActive(_ context.Context) ([]*entity.Company, error) {
	defer r.guard()()
	return r.filter((*entity.Company).IsActive), nil
}

func (r *CompanyRepo) filter(keep func(*entity.Company) bool) []*entity.Company {
	st := r.state()
	var out []*entity.Company
	for _, id := range st.companyOrder {
		if c := st.companies[id]; keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

// UpsertModule una fila por (empresa, módulo).
func (r *CompanyRepo) UpsertModule(_ context.Context, m *entity.CompanyModule) error {
	defer r.guard()()
	st := r.state()
	cp := *m
	for i, cur := range st.modules {
		if cur.CompanyID == m.CompanyID && cur.ModuleName == m.ModuleName {
			cp.ID = cur.ID
			cp.CreatedAt = cur.CreatedAt
			st.modules[i] = &cp
			return nil
		}
	}
	st.modules = append(st.modules, &cp)
	return nil
}

func (r *CompanyRepo) ListModules(_ context.Context, companyID string) ([]*entity.CompanyModule, error) {
	defer r.guard()()
	var out []*entity.CompanyModule
	for _, m := range r.state().modules {
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *CompanyRepo) HasActiveModule(_ context.Context, companyID, moduleName string) (bool, error) {
	defer r.guard()()
	for _, m := range r.state().modules {
		if m.CompanyID == companyID && m.ModuleName == moduleName {
			return m.Enabled(time.Now()), nil
		}
	}
	return false, nil
}

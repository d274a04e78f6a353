package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
	"github.com/malikaashish/Inventory-Management-System/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de empresa, registro y login.
type AuthUseCase struct {
	txRunner ports.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner ports.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{txRunner: txRunner, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup crea la empresa con todos los módulos activos y su primer ADMIN en una sola transacción,
// y devuelve el token del administrador.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, domain.Invalidf("company_name es obligatorio")
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   in.CompanyAddress,
		Phone:     in.CompanyPhone,
		Email:     strings.ToLower(strings.TrimSpace(in.AdminEmail)),
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin, err := newUser(company.ID, in.AdminEmail, in.AdminPassword, in.AdminName, entity.RoleAdmin, now)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		if err := ensureEmailFree(ctx, repos.Users, admin.Email); err != nil {
			return err
		}
		if err := repos.Companies.Create(ctx, company); err != nil {
			return err
		}
		for _, m := range entity.AllModules {
			if err := repos.Companies.UpsertModule(ctx, &entity.CompanyModule{
				ID:          uuid.New().String(),
				CompanyID:   company.ID,
				ModuleName:  m,
				IsActive:    true,
				ActivatedAt: now,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
		}
		return repos.Users.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(admin)
}

// RegisterUser crea un usuario en companyID. El email es único en todo el sistema.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, companyID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleSalesStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.Invalidf("rol inválido: %s", role)
	}
	user, err := newUser(companyID, in.Email, in.Password, in.Name, role, time.Now())
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		company, err := repos.Companies.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.NotFoundf("empresa no encontrada: %s", companyID)
		}
		if err := ensureEmailFree(ctx, repos.Users, user.Email); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// newUser valida credenciales y hashea el password con bcrypt.
func newUser(companyID, email, password, name, role string, now time.Time) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, domain.Invalidf("email y password (mínimo 8 caracteres) son obligatorios")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func ensureEmailFree(ctx context.Context, users repository.UserRepository, email string) error {
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// ToUserResponse mapea la entidad a su DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)

// Claims is the JWT payload attached to admin requests.
type Claims struct {
	AdminID  uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type CreateAdminParams struct {
	Username string
	Password string
	Email    string
	Role     string
}

type UpdateAdminParams struct {
	Username *string
	Password *string
	Email    *string
	Role     *string
	IsActive *bool
}

type AdminService interface {
	Login(ctx context.Context, username, password string) (string, *models.Admin, error)
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, params CreateAdminParams) (*models.Admin, error)
	Update(ctx context.Context, id uint, params UpdateAdminParams) (*models.Admin, error)
	Delete(ctx context.Context, id, currentAdminID uint) error
	// Seed creates the initial super admin when the table is empty.
	Seed(ctx context.Context, username, password string) error
	// ParseToken validates a bearer token and returns its claims.
	ParseToken(token string) (*Claims, error)
}

type adminService struct {
	adminRepo repository.AdminRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAdminService(adminRepo repository.AdminRepository, jwtSecret string, jwtExpiry time.Duration) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

func (s *adminService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	admin, err := s.adminRepo.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, admin, nil
}

func (s *adminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *adminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.adminRepo.FindAll(ctx)
}

func (s *adminService) Create(ctx context.Context, params CreateAdminParams) (*models.Admin, error) {
	if params.Username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if len(params.Password) < minPasswordLength {
		return nil, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}

	role := params.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, &ValidationError{Field: "role", Reason: "must be admin or super_admin"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     params.Username,
		PasswordHash: string(hash),
		Email:        params.Email,
		Role:         role,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Field: "username", Reason: "already taken"}
		}
		return nil, err
	}
	return admin, nil
}

func (s *adminService) Update(ctx context.Context, id uint, params UpdateAdminParams) (*models.Admin, error) {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != nil && *params.Username != "" {
		admin.Username = *params.Username
	}
	if params.Password != nil && *params.Password != "" {
		if len(*params.Password) < minPasswordLength {
			return nil, &ValidationError{
				Field:  "password",
				Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength),
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}
	if params.Email != nil {
		admin.Email = *params.Email
	}
	if params.Role != nil {
		if *params.Role != models.RoleAdmin && *params.Role != models.RoleSuperAdmin {
			return nil, &ValidationError{Field: "role", Reason: "must be admin or super_admin"}
		}
		admin.Role = *params.Role
	}
	if params.IsActive != nil {
		admin.IsActive = *params.IsActive
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) Delete(ctx context.Context, id, currentAdminID uint) error {
	if id == currentAdminID {
		return ErrSelfDelete
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.adminRepo.Delete(ctx, id)
}

func (s *adminService) Seed(ctx context.Context, username, password string) error {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.Create(ctx, CreateAdminParams{
		Username: username,
		Password: password,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("[AdminService] seeded initial super admin %q", username)
	return nil
}

func (s *adminService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/pkg/common"
)

// ErrInvalidCredentials is the single failure surfaced for any bad login,
// whether the username is unknown or the password wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrBadInput reports an invalid credential-update request.
var ErrBadInput = errors.New("invalid input")

// Repository handles database access for admin credentials.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) error
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "query admin user")
	}
	return &user, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "query admin user")
	}
	return &user, nil
}

func (r *GormRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(user).Error, "create admin user")
}

func (r *GormRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return errors.Wrap(
		r.db.WithContext(ctx).Model(&domain.AdminUser{}).Where("id = ?", id).Updates(updates).Error,
		"update admin user")
}

// Service is the session gate's credential side: it verifies logins and
// manages the admin credential record. Session state itself lives in the
// web layer's cookie store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate verifies a username/password pair and returns the matching
// admin record. Verification uses bcrypt's constant-time comparison; the
// caller gets the same ErrInvalidCredentials for unknown users and wrong
// passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Burn a hash comparison anyway so unknown-user failures
			// take the same time as wrong-password failures.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		}
		return nil, errSanitize(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// Disabled accounts fail with the same error as bad credentials.
	if user.Status == common.DISABLED {
		return nil, ErrInvalidCredentials
	}
	if err := s.repo.Update(ctx, user.ID, map[string]interface{}{"last_login": time.Now()}); err != nil {
		zap.L().Warn("failed to record last login", zap.Int64("id", user.ID), zap.Error(err))
	}
	return user, nil
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, used only
// to equalize timing on unknown-user logins.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("modderpro-timing-pad"), bcrypt.DefaultCost)

func errSanitize(err error) error {
	if errors.Is(err, ErrInvalidCredentials) {
		return ErrInvalidCredentials
	}
	return err
}

// UpdateCredentials changes username and/or password of an admin. It
// requires proof of the current password and a matching confirmation for
// the new one.
func (s *Service) UpdateCredentials(ctx context.Context, id int64, username, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errSanitize(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if u := strings.TrimSpace(username); u != "" && u != user.Username {
		updates["username"] = u
	}
	if newPassword != "" || confirmPassword != "" {
		if newPassword != confirmPassword {
			return errors.Wrap(ErrBadInput, "passwords do not match")
		}
		if len(newPassword) < 6 {
			return errors.Wrap(ErrBadInput, "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		updates["password"] = string(hash)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return err
	}
	zap.L().Info("admin credentials updated", zap.Int64("id", id))
	return nil
}

// EnsureDefaultAdmin provisions the admin account once at startup when none
// exists. Keeping this out of the login path avoids the well-known lazy
// bootstrap credential hole; the warning below stays until the password is
// changed.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash default password")
	}
	user := &domain.AdminUser{
		ID:        common.UUIDint64(),
		Username:  username,
		Password:  string(hash),
		Level:     "super",
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	zap.L().Warn("initialized default admin account, change the password immediately",
		zap.String("username", username))
	return nil
}

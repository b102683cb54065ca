package services

import (
	"context"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser provisions an account with an explicit role. Self-service
// registration goes through AuthService.SignUp instead.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, name, email string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if name != "" {
		u.Name = name
	}
	if email != "" && email != u.Email {
		other, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
		u.Email = email
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword rehashes the password and bumps PasswordChangedAt so
// previously issued tokens stop verifying.
func (s *UserService) ChangePassword(ctx context.Context, id uint64, newPassword string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	u.Password = string(hash)
	u.PasswordChangedAt = &now
	return s.users.Update(ctx, u)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

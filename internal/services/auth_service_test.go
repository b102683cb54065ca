package services

import (
	"context"
	"testing"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-signing-secret"

func TestAuthService_SignUp(t *testing.T) {
	t.Run("creates user and returns a verifiable token", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testJWTSecret)

		userRepo.On("FindByEmail", mock.Anything, TestUserEmail).Return(nil, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = TestUserID
		})

		user, token, err := svc.SignUp(context.Background(), "Test Buyer", TestUserEmail, "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEmpty(t, token)
		// Stored password must be a hash, never the plaintext.
		assert.NotEqual(t, "hunter22", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))

		userRepo.On("FindByID", mock.Anything, TestUserID).Return(user, nil)
		verified, err := svc.VerifyToken(context.Background(), token)
		assert.NoError(t, err)
		assert.Equal(t, TestUserID, verified.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testJWTSecret)

		userRepo.On("FindByEmail", mock.Anything, TestUserEmail).
			Return(CreateTestUser(TestUserID, TestUserEmail, domain.RoleUser), nil)

		_, _, err := svc.SignUp(context.Background(), "Test Buyer", TestUserEmail, "hunter22")

		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	stored := CreateTestUser(TestUserID, TestUserEmail, domain.RoleUser)
	stored.Password = string(hash)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "valid credentials",
			email:    TestUserEmail,
			password: "hunter22",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByEmail", mock.Anything, TestUserEmail).Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    TestUserEmail,
			password: "wrong",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByEmail", mock.Anything, TestUserEmail).Return(stored, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "hunter22",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.MockUserRepository)
			svc := NewAuthService(userRepo, testJWTSecret)
			tt.setupMocks(userRepo)

			user, token, err := svc.SignIn(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(mocks.MockUserRepository), testJWTSecret)

		_, err := svc.VerifyToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(new(mocks.MockUserRepository), "different-secret")
		user := CreateTestUser(TestUserID, TestUserEmail, domain.RoleUser)
		token, err := other.issueToken(user)
		assert.NoError(t, err)

		svc := NewAuthService(new(mocks.MockUserRepository), testJWTSecret)
		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token predating a password change is rejected", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testJWTSecret)

		user := CreateTestUser(TestUserID, TestUserEmail, domain.RoleUser)
		token, err := svc.issueToken(user)
		assert.NoError(t, err)

		changed := time.Now().Add(time.Hour)
		user.PasswordChangedAt = &changed
		userRepo.On("FindByID", mock.Anything, TestUserID).Return(user, nil)

		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

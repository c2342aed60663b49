package services

import (
	"FamCare/database"
	"FamCare/models"
	"FamCare/repositories"
	"FamCare/utils"
	"context"
	"errors"
	"fmt"
)

type UserService interface {
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateUserProfile(ctx context.Context, userID int64, name, email string) error
	UpdateUserRole(ctx context.Context, userID int64, role string) error
	SetUserLocked(ctx context.Context, userID int64, locked bool) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetDoctors(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ValidateAndCreateUser validates the user data, hashes the password, and
// creates the account. A lock on the email guards against duplicate
// registrations racing past the uniqueness check.
func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	lockKey := fmt.Sprintf("user_lock:%s", user.Email)
	return database.WithLock(ctx, lockKey, func() error {
		if err := utils.ValidateUserData(*user); err != nil {
			return fmt.Errorf("invalid user data: %w", err)
		}

		if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil || exists {
			return errors.New("email already registered")
		}

		hashedPassword, err := utils.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashedPassword

		return s.userRepo.CreateUser(ctx, user)
	})
}

// AuthenticateUser checks credentials and rejects locked accounts.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserWithPassword(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, errors.New("invalid email or password")
	}

	if user.Locked {
		return nil, ErrAccountLocked
	}

	return user, nil
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return s.userRepo.UpdateUserPassword(ctx, userID, hashedPassword)
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID int64, name, email string) error {
	lockKey := fmt.Sprintf("user_lock:%d", userID)
	return database.WithLock(ctx, lockKey, func() error {
		return s.userRepo.UpdateUserProfile(ctx, userID, name, email)
	})
}

func (s *userService) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	if !models.IsValidRole(role) {
		return errors.New("invalid role")
	}
	return s.userRepo.UpdateUserRole(ctx, userID, role)
}

func (s *userService) SetUserLocked(ctx context.Context, userID int64, locked bool) error {
	return s.userRepo.SetUserLocked(ctx, userID, locked)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *userService) GetDoctors(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetUsersByRole(ctx, models.RoleDoctor)
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	return s.userRepo.DeleteUser(ctx, userID)
}

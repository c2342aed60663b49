package repositories

import (
	"FamCare/cache"
	"FamCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 7 * 24 * time.Hour
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserWithPassword(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateUserProfile(ctx context.Context, userID int64, name, email string) error
	UpdateUserRole(ctx context.Context, userID int64, role string) error
	SetUserLocked(ctx context.Context, userID int64, locked bool) error
	SetUserVerified(ctx context.Context, userID int64, verified bool) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	DeleteUserCache(ctx context.Context, identifier string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(email)
	cachedUser, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cachedUser), &user); err == nil {
			return &user, nil
		}
	} else if err != cache.Nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	var user models.User
	err = r.db.Select("id, name, email, role, verified, locked, created_at").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	r.cacheUser(ctx, cacheKey, &user)
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(fmt.Sprintf("%d", userID))
	cachedUser, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cachedUser), &user); err == nil {
			return &user, nil
		}
	} else if err != cache.Nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	var user models.User
	err = r.db.Select("id, name, email, role, verified, locked, created_at").
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	r.cacheUser(ctx, cacheKey, &user)
	return &user, nil
}

// GetUserWithPassword loads a user including the password hash, for credential
// checks only. The result is never cached.
func (r *userRepository) GetUserWithPassword(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateUserProfile(ctx context.Context, userID int64, name, email string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":  name,
		"email": email,
	}).Error; err != nil {
		return err
	}
	return r.invalidateUser(ctx, userID)
}

func (r *userRepository) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error; err != nil {
		return err
	}
	return r.invalidateUser(ctx, userID)
}

func (r *userRepository) SetUserLocked(ctx context.Context, userID int64, locked bool) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).Update("locked", locked).Error; err != nil {
		return err
	}
	return r.invalidateUser(ctx, userID)
}

func (r *userRepository) SetUserVerified(ctx context.Context, userID int64, verified bool) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).Update("verified", verified).Error; err != nil {
		return err
	}
	return r.invalidateUser(ctx, userID)
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var users []models.User
	err := r.db.Select("id, name, email, role, verified, locked, created_at").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := r.db.Select("id, name, email, role, verified, locked, created_at").
		Where("role = ?", role).
		Order("name").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	if err := r.db.Delete(&models.User{}, userID).Error; err != nil {
		return err
	}
	return r.invalidateUser(ctx, userID)
}

func (r *userRepository) DeleteUserCache(ctx context.Context, identifier string) error {
	return r.cache.Delete(ctx, r.getUserCacheKey(identifier))
}

// invalidateUser drops the ID- and email-keyed cache entries for a user.
func (r *userRepository) invalidateUser(ctx context.Context, userID int64) error {
	if err := r.cache.Delete(ctx, r.getUserCacheKey(fmt.Sprintf("%d", userID))); err != nil {
		log.Printf("Failed to delete user cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "user_cache:*"); err != nil {
		log.Printf("Failed to delete user caches: %v", err)
	}
	return nil
}

func (r *userRepository) cacheUser(ctx context.Context, cacheKey string, user *models.User) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey, userJSON, UserCacheExpiry); err != nil {
		log.Printf("Failed to set user in cache: %v", err)
	}
}

func (r *userRepository) getUserCacheKey(identifier string) string {
	return fmt.Sprintf("user_cache:%s", identifier)
}

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
	FamilyCacheExpiry = 24 * time.Hour
)

type FamilyRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFamilyRepository(db *gorm.DB, cache *cache.Cache) *FamilyRepository {
	return &FamilyRepository{db: db, cache: cache}
}

func (r *FamilyRepository) Create(ctx context.Context, family *models.Family) error {
	if err := r.db.Create(family).Error; err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}
	r.invalidate(ctx, family.ID)
	return nil
}

func (r *FamilyRepository) GetByID(ctx context.Context, id uint) (*models.Family, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getFamilyCacheKey(id)
	cachedFamily, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var family models.Family
		if err := json.Unmarshal([]byte(cachedFamily), &family); err == nil {
			return &family, nil
		}
	} else if err != cache.Nil {
		log.Printf("Failed to get family from cache: %v", err)
	}

	var family models.Family
	err = r.db.Preload("Members").
		Preload("Head", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, role")
		}).
		First(&family, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	familyJSON, err := json.Marshal(family)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal family: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, familyJSON, FamilyCacheExpiry); err != nil {
		log.Printf("Failed to set family in cache: %v", err)
	}

	return &family, nil
}

// GetByHeadID finds the family headed by the given user.
func (r *FamilyRepository) GetByHeadID(ctx context.Context, headID int64) (*models.Family, error) {
	var family models.Family
	err := r.db.Preload("Members").Where("head_id = ?", headID).First(&family).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get family by head: %w", err)
	}
	return &family, nil
}

func (r *FamilyRepository) GetAll(ctx context.Context) ([]models.Family, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var families []models.Family
	err := r.db.Preload("Members").Order("created_at DESC").Find(&families).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all families: %w", err)
	}
	return families, nil
}

func (r *FamilyRepository) Update(ctx context.Context, family *models.Family) error {
	if err := r.db.Model(&models.Family{}).Where("id = ?", family.ID).Updates(map[string]interface{}{
		"name":    family.Name,
		"address": family.Address,
	}).Error; err != nil {
		return fmt.Errorf("failed to update family: %w", err)
	}
	r.invalidate(ctx, family.ID)
	return nil
}

func (r *FamilyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.Select("Members", "Doctors").Delete(&models.Family{ID: id}).Error; err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *FamilyRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getFamilyCacheKey(id)); err != nil {
		log.Printf("Failed to delete family cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "family_cache:*"); err != nil {
		log.Printf("Failed to delete family caches: %v", err)
	}
}

func (r *FamilyRepository) getFamilyCacheKey(id uint) string {
	return fmt.Sprintf("family_cache:%d", id)
}

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
	MemberCacheExpiry = 24 * time.Hour
)

type MemberRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewMemberRepository(db *gorm.DB, cache *cache.Cache) *MemberRepository {
	return &MemberRepository{db: db, cache: cache}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	r.invalidate(ctx, member.FamilyID, member.ID)
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getMemberCacheKey(id)
	cachedMember, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var member models.Member
		if err := json.Unmarshal([]byte(cachedMember), &member); err == nil {
			return &member, nil
		}
	} else if err != cache.Nil {
		log.Printf("Failed to get member from cache: %v", err)
	}

	var member models.Member
	err = r.db.First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	memberJSON, err := json.Marshal(member)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal member: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, memberJSON, MemberCacheExpiry); err != nil {
		log.Printf("Failed to set member in cache: %v", err)
	}

	return &member, nil
}

func (r *MemberRepository) GetByFamilyID(ctx context.Context, familyID uint) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Where("family_id = ?", familyID).Order("created_at").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	if err := r.db.Save(member).Error; err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	r.invalidate(ctx, member.FamilyID, member.ID)
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	member, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return errors.New("member not found")
	}
	if err := r.db.Delete(&models.Member{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	r.invalidate(ctx, member.FamilyID, id)
	return nil
}

func (r *MemberRepository) invalidate(ctx context.Context, familyID, id uint) {
	if err := r.cache.Delete(ctx, r.getMemberCacheKey(id)); err != nil {
		log.Printf("Failed to delete member cache: %v", err)
	}
	// The owning family embeds its member list.
	if err := r.cache.Delete(ctx, fmt.Sprintf("family_cache:%d", familyID)); err != nil {
		log.Printf("Failed to delete family cache: %v", err)
	}
}

func (r *MemberRepository) getMemberCacheKey(id uint) string {
	return fmt.Sprintf("member_cache:%d", id)
}

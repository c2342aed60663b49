package repositories

import (
	"FamCare/cache"
	"FamCare/database"
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
	AppointmentCacheExpiry = 24 * time.Hour
)

type AppointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{db: db, cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if !models.IsValidAppointmentStatus(appointment.Status) {
		return errors.New("invalid status value")
	}

	lockKey := fmt.Sprintf("appointment_lock:%d_%s", appointment.DoctorID, appointment.StartTime.Format(time.RFC3339))
	return database.WithLock(ctx, lockKey, func() error {
		if err := r.db.Create(appointment).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		r.invalidate(ctx, appointment.ID)
		return nil
	})
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != cache.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).
		Preload("Member", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, family_id, name, date_of_birth, gender")
		}).
		First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepository) GetByFamily(ctx context.Context, familyID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).
		Where("family_id = ?", familyID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get family appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetByMember(ctx context.Context, memberID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("member_id = ?", memberID).Order("start_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get member appointments: %w", err)
	}
	return appointments, nil
}

// GetByDoctorAndStatus filters a doctor's appointments, optionally by status.
func (r *AppointmentRepository) GetByDoctorAndStatus(ctx context.Context, doctorID int64, status string) ([]models.Appointment, error) {
	query := r.db.Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var appointments []models.Appointment
	if err := query.Order("start_time DESC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to get doctor appointments: %w", err)
	}
	return appointments, nil
}

// FindOverlapping returns the doctor's scheduled appointments whose time range
// intersects [start, end). A linear range comparison over the doctor's rows.
func (r *AppointmentRepository) FindOverlapping(ctx context.Context, doctorID int64, start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("doctor_id = ? AND status = ? AND start_time < ? AND end_time > ?",
		doctorID, models.AppointmentScheduled, end, start).
		Order("start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if !models.IsValidAppointmentStatus(appointment.Status) {
		return errors.New("invalid status value")
	}

	lockKey := fmt.Sprintf("appointment_lock:%d", appointment.ID)
	return database.WithLock(ctx, lockKey, func() error {
		if err := r.db.Save(appointment).Error; err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		r.invalidate(ctx, appointment.ID)
		return nil
	})
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("appointment_lock:%d", id)
	return database.WithLock(ctx, lockKey, func() error {
		if err := r.db.Delete(&models.Appointment{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		r.invalidate(ctx, id)
		return nil
	})
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		log.Printf("Failed to delete appointment cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "appointment_cache:*"); err != nil {
		log.Printf("Failed to delete appointment caches: %v", err)
	}
}

func (r *AppointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}

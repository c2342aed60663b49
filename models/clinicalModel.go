package models

import (
	"time"
)

// Appointment statuses
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

// Appointment types
const (
	AppointmentCheckup      = "CHECKUP"
	AppointmentFollowUp     = "FOLLOW_UP"
	AppointmentConsultation = "CONSULTATION"
	AppointmentEmergency    = "EMERGENCY"
)

// Appointment is a scheduled visit between a doctor and a family member.
// EndTime is always derived from StartTime plus DurationMinutes.
type Appointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Title           string    `gorm:"size:150;not null;column:title" json:"title"`
	Type            string    `gorm:"size:20;check:type IN ('CHECKUP', 'FOLLOW_UP', 'CONSULTATION', 'EMERGENCY');not null;column:type" json:"type"`
	DoctorID        int64     `gorm:"not null;index;column:doctor_id" json:"doctor_id"`
	FamilyID        uint      `gorm:"not null;index;column:family_id" json:"family_id"`
	MemberID        uint      `gorm:"not null;index;column:member_id" json:"member_id"`
	StartTime       time.Time `gorm:"column:start_time;not null;index" json:"start_time"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null" json:"duration_minutes"`
	EndTime         time.Time `gorm:"column:end_time;not null" json:"end_time"`
	Status          string    `gorm:"size:10;check:status IN ('SCHEDULED', 'COMPLETED', 'CANCELLED');not null;column:status" json:"status"`
	Location        string    `gorm:"size:255;column:location" json:"location"`
	Notes           string    `gorm:"type:text;column:notes" json:"notes"`
	DoctorNotes     string    `gorm:"type:text;column:doctor_notes" json:"doctor_notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Doctor          User      `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Family          Family    `gorm:"foreignKey:FamilyID;references:ID" json:"-"`
	Member          Member    `gorm:"foreignKey:MemberID;references:ID" json:"member"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// IsValidAppointmentStatus reports whether status is a known appointment status.
func IsValidAppointmentStatus(status string) bool {
	return status == AppointmentScheduled || status == AppointmentCompleted || status == AppointmentCancelled
}

// MedicalRecord is a clinical file for a member, optionally authored by a doctor
type MedicalRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	MemberID      uint      `gorm:"not null;index;column:member_id" json:"member_id"`
	DoctorID      *int64    `gorm:"index;column:doctor_id" json:"doctor_id"`
	Symptoms      string    `gorm:"type:text;column:symptoms" json:"symptoms"`
	Diagnosis     string    `gorm:"type:text;column:diagnosis" json:"diagnosis"`
	TreatmentPlan string    `gorm:"type:text;column:treatment_plan" json:"treatment_plan"`
	FileURL       string    `gorm:"size:512;column:file_url" json:"file_url"`
	RecordDate    time.Time `gorm:"column:record_date;not null;index" json:"record_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Member        Member    `gorm:"foreignKey:MemberID;references:ID" json:"-"`
	Doctor        *User     `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_record"
}

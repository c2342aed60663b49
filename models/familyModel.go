package models

import (
	"time"
)

// Family represents a household unit headed by one User
type Family struct {
	ID        uint               `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string             `gorm:"size:100;not null;column:name" json:"name"`
	Address   string             `gorm:"size:255;column:address" json:"address"`
	HeadID    int64              `gorm:"not null;index;column:head_id" json:"head_id"`
	CreatedAt time.Time          `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Head      User               `gorm:"foreignKey:HeadID;references:ID" json:"-"`
	Members   []Member           `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Doctors   []DoctorAssignment `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Family) TableName() string {
	return "family"
}

// MemberCount returns the number of members in the family, 0 for a nil or
// unloaded member list.
func (f *Family) MemberCount() int {
	return len(f.Members)
}

// Member represents a family member (patient)
type Member struct {
	ID           uint            `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	FamilyID     uint            `gorm:"not null;index;column:family_id" json:"family_id"`
	Name         string          `gorm:"size:100;not null;column:name" json:"name"`
	DateOfBirth  string          `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender       string          `gorm:"size:10;check:gender IN ('Male', 'Female', 'Other');not null;column:gender" json:"gender"`
	NationalID   string          `gorm:"size:30;column:national_id" json:"national_id"`
	Relationship string          `gorm:"size:50;column:relationship" json:"relationship"`
	Phone        string          `gorm:"size:20;column:phone" json:"phone"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Family       Family          `gorm:"foreignKey:FamilyID;references:ID" json:"-"`
	Records      []MedicalRecord `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Appointments []Appointment   `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Member) TableName() string {
	return "member"
}

// DoctorAssignment statuses
const (
	AssignmentActive   = "ACTIVE"
	AssignmentInactive = "INACTIVE"
)

// DoctorAssignment is a care relationship between a doctor and a family
type DoctorAssignment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID  int64     `gorm:"not null;index;column:doctor_id" json:"doctor_id"`
	FamilyID  uint      `gorm:"not null;index;column:family_id" json:"family_id"`
	Status    string    `gorm:"size:10;check:status IN ('ACTIVE', 'INACTIVE');not null;column:status" json:"status"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Doctor    User      `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Family    Family    `gorm:"foreignKey:FamilyID;references:ID" json:"-"`
}

func (DoctorAssignment) TableName() string {
	return "doctor_assignment"
}

// DoctorRequest statuses
const (
	RequestPending  = "PENDING"
	RequestAccepted = "ACCEPTED"
	RequestRejected = "REJECTED"
)

// DoctorRequest is a doctor's request to be assigned to a family.
// Once accepted or rejected the status is terminal.
type DoctorRequest struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID        int64      `gorm:"not null;index;column:doctor_id" json:"doctor_id"`
	FamilyID        uint       `gorm:"not null;index;column:family_id" json:"family_id"`
	Message         string     `gorm:"type:text;column:message" json:"message"`
	Status          string     `gorm:"size:10;check:status IN ('PENDING', 'ACCEPTED', 'REJECTED');not null;column:status" json:"status"`
	RequestDate     time.Time  `gorm:"column:request_date;not null" json:"request_date"`
	ResponseMessage string     `gorm:"type:text;column:response_message" json:"response_message"`
	ResponseDate    *time.Time `gorm:"column:response_date" json:"response_date"`
	Doctor          User       `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Family          Family     `gorm:"foreignKey:FamilyID;references:ID" json:"-"`
}

func (DoctorRequest) TableName() string {
	return "doctor_request"
}

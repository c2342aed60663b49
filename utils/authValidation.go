package utils

import (
	"FamCare/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Role, validation.Required, validation.In(models.RoleHeadOfFamily, models.RoleDoctor, models.RoleAdmin)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateMemberData validates member data before persistence.
func ValidateMemberData(member models.Member) error {
	err := validation.ValidateStruct(&member,
		validation.Field(&member.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&member.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&member.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&member.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAppointmentData validates the client-supplied appointment fields.
func ValidateAppointmentData(appointment models.Appointment) error {
	err := validation.ValidateStruct(&appointment,
		validation.Field(&appointment.Title, validation.Required, validation.Length(1, 150)),
		validation.Field(&appointment.Type, validation.Required, validation.In(
			models.AppointmentCheckup, models.AppointmentFollowUp,
			models.AppointmentConsultation, models.AppointmentEmergency)),
		validation.Field(&appointment.StartTime, validation.Required),
		validation.Field(&appointment.DurationMinutes, validation.Required, validation.Min(1)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePaymentData validates payment fields supplied on creation.
func ValidatePaymentData(payment models.Payment) error {
	err := validation.ValidateStruct(&payment,
		validation.Field(&payment.UserID, validation.Required),
		validation.Field(&payment.PackageType, validation.Required, validation.In(
			models.PackageBasic, models.PackagePremium, models.PackageFamily)),
		validation.Field(&payment.Amount, validation.Required, validation.Min(0.0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}

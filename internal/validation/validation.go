// Package validation implements field and composite form validators.
// Validators are pure: they perform no I/O and report problems as values,
// never as panics. Field validators return a nil error when the input is
// acceptable; composite validators collect per-field messages into a Result.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/swachhdev/waste-collect/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	employeeID   = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// Weight bounds in kilograms.
const (
	MinWeight = 0.1
	MaxWeight = 10000
)

// Result is the outcome of a composite form validation.
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// ValidateEmail checks that email is present and shaped like local@domain.tld.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Please enter a valid email")
	}
	return nil
}

// ValidatePassword checks that password is present and at least 6 characters.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}

// ValidateConfirmPassword checks that confirmPassword matches password exactly.
func ValidateConfirmPassword(password, confirmPassword string) error {
	if password != confirmPassword {
		return errors.New("Passwords do not match")
	}
	return nil
}

// ValidateRequired checks that value is non-empty after trimming whitespace.
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateNumeric checks that value parses as a number. When min or max is
// non-nil the parsed value must fall within the bound, inclusive.
func ValidateNumeric(value, fieldName string, min, max *float64) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%s must be a valid number", fieldName)
	}
	switch {
	case min != nil && max != nil && (n < *min || n > *max):
		return fmt.Errorf("%s must be between %g and %g", fieldName, *min, *max)
	case min != nil && n < *min:
		return fmt.Errorf("%s must be at least %g", fieldName, *min)
	case max != nil && n > *max:
		return fmt.Errorf("%s must be at most %g", fieldName, *max)
	}
	return nil
}

// ValidateWeight checks that value is a number between 0.1 and 10000 kg.
func ValidateWeight(value string) error {
	min, max := MinWeight, float64(MaxWeight)
	return ValidateNumeric(value, "Weight", &min, &max)
}

// ValidatePhoneNumber checks that phone is present and matches the accepted
// phone shape (optional leading +, then at least 10 digits/spaces/dashes/parens).
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return errors.New("Phone number is required")
	}
	if !phonePattern.MatchString(phone) {
		return errors.New("Please enter a valid phone number")
	}
	return nil
}

// ValidateEmployeeID checks that employeeID is at least 3 characters and
// composed only of letters, digits, and hyphens.
func ValidateEmployeeID(id string) error {
	if id == "" {
		return errors.New("Employee ID is required")
	}
	if len(id) < 3 {
		return errors.New("Employee ID must be at least 3 characters")
	}
	if !employeeID.MatchString(id) {
		return errors.New("Employee ID can only contain letters, numbers, and hyphens")
	}
	return nil
}

// ValidateVehicleNumber checks that number is at least 4 characters.
func ValidateVehicleNumber(number string) error {
	if number == "" {
		return errors.New("Vehicle number is required")
	}
	if len(number) < 4 {
		return errors.New("Vehicle number must be at least 4 characters")
	}
	return nil
}

// ValidateWasteForm validates a waste submission form.
func ValidateWasteForm(form models.WasteFormData) Result {
	errs := map[string]string{}
	if err := ValidateRequired(form.WasteType, "Waste type"); err != nil {
		errs["waste_type"] = err.Error()
	}
	if err := ValidateWeight(form.Weight); err != nil {
		errs["weight"] = err.Error()
	}
	if err := ValidateRequired(form.ColonyName, "Colony name"); err != nil {
		errs["colony_name"] = err.Error()
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateCollectorProfile validates a garbage collector profile.
func ValidateCollectorProfile(p models.GarbageCollectorProfile) Result {
	errs := map[string]string{}
	if err := ValidateRequired(p.PersonalName, "Personal name"); err != nil {
		errs["personal_name"] = err.Error()
	}
	if err := ValidateEmployeeID(p.EmployeeID); err != nil {
		errs["employee_id"] = err.Error()
	}
	if err := ValidatePhoneNumber(p.ContactNumber); err != nil {
		errs["contact_number"] = err.Error()
	}
	if err := ValidateVehicleNumber(p.VehicleNumber); err != nil {
		errs["vehicle_number"] = err.Error()
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateManagerProfile validates a colony manager profile.
func ValidateManagerProfile(p models.ColonyManagerProfile) Result {
	errs := map[string]string{}
	if err := ValidateRequired(p.PersonalName, "Personal name"); err != nil {
		errs["personal_name"] = err.Error()
	}
	if err := ValidatePhoneNumber(p.ContactNumber); err != nil {
		errs["contact_number"] = err.Error()
	}
	if err := ValidateEmail(p.Email); err != nil {
		errs["email"] = err.Error()
	}
	if err := ValidateRequired(p.ColonyName, "Colony name"); err != nil {
		errs["colony_name"] = err.Error()
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAuthorityProfile validates a government authority profile.
func ValidateAuthorityProfile(p models.GovernmentAuthorityProfile) Result {
	errs := map[string]string{}
	if err := ValidateRequired(p.PersonalName, "Personal name"); err != nil {
		errs["personal_name"] = err.Error()
	}
	if err := ValidatePhoneNumber(p.ContactNumber); err != nil {
		errs["contact_number"] = err.Error()
	}
	if err := ValidateEmail(p.Email); err != nil {
		errs["email"] = err.Error()
	}
	if err := ValidateRequired(p.Department, "Department"); err != nil {
		errs["department"] = err.Error()
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

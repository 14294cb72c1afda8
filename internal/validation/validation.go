package validation

import (
	"fmt"
	"regexp"
	"time"
)

var (
	namePattern         = regexp.MustCompile(`^[a-zA-Z0-9 .&'-]+$`)
	queryPattern        = regexp.MustCompile(`^[a-zA-Z0-9 .&'-]+$`)
	registrationPattern = regexp.MustCompile(`^[A-Z]{2}[ -]?[0-9]{1,2}[ -]?[A-Z]{1,2}[ -]?[0-9]{1,4}$`)
)

// ValidateBrand validates a car brand name
func ValidateBrand(brand string) error {
	if len(brand) < 2 || len(brand) > 40 {
		return fmt.Errorf("brand must be between 2 and 40 characters")
	}

	if !namePattern.MatchString(brand) {
		return fmt.Errorf("brand contains invalid characters")
	}

	return nil
}

// ValidateModel validates a car model name
func ValidateModel(model string) error {
	if len(model) < 1 || len(model) > 40 {
		return fmt.Errorf("model must be between 1 and 40 characters")
	}

	if !namePattern.MatchString(model) {
		return fmt.Errorf("model contains invalid characters")
	}

	return nil
}

// ValidateQuery validates a free-text search query
func ValidateQuery(query string) error {
	if len(query) < 2 || len(query) > 100 {
		return fmt.Errorf("query must be between 2 and 100 characters")
	}

	if !queryPattern.MatchString(query) {
		return fmt.Errorf("query contains invalid characters")
	}

	return nil
}

// ValidateYear validates a model year. Zero means "not supplied" and is allowed.
func ValidateYear(year int) error {
	if year == 0 {
		return nil
	}

	if year < 1990 || year > time.Now().Year()+1 {
		return fmt.Errorf("year must be between 1990 and %d", time.Now().Year()+1)
	}

	return nil
}

// ValidateRegistrationNumber validates an Indian vehicle registration number
// (e.g. "MH 12 AB 1234"). Empty means "not supplied" and is allowed.
func ValidateRegistrationNumber(reg string) error {
	if reg == "" {
		return nil
	}

	if !registrationPattern.MatchString(reg) {
		return fmt.Errorf("registration number format is invalid")
	}

	return nil
}

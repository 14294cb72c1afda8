package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidateBrand(t *testing.T) {
	valid := []string{"Maruti Suzuki", "BMW", "Mercedes-Benz", "MG"}
	for _, brand := range valid {
		if err := ValidateBrand(brand); err != nil {
			t.Fatalf("expected %q to be valid: %v", brand, err)
		}
	}

	invalid := []string{"", "M", strings.Repeat("a", 41), "Maruti<script>"}
	for _, brand := range invalid {
		if err := ValidateBrand(brand); err == nil {
			t.Fatalf("expected %q to be rejected", brand)
		}
	}
}

func TestValidateModel(t *testing.T) {
	if err := ValidateModel("Swift"); err != nil {
		t.Fatalf("expected Swift to be valid: %v", err)
	}
	if err := ValidateModel("i20"); err != nil {
		t.Fatalf("expected i20 to be valid: %v", err)
	}
	if err := ValidateModel(""); err == nil {
		t.Fatalf("expected empty model to be rejected")
	}
	if err := ValidateModel("Swift; DROP TABLE cars"); err == nil {
		t.Fatalf("expected model with invalid characters to be rejected")
	}
}

func TestValidateQuery(t *testing.T) {
	if err := ValidateQuery("Maruti Swift price"); err != nil {
		t.Fatalf("expected query to be valid: %v", err)
	}
	if err := ValidateQuery("a"); err == nil {
		t.Fatalf("expected single-character query to be rejected")
	}
	if err := ValidateQuery(strings.Repeat("x", 101)); err == nil {
		t.Fatalf("expected overlong query to be rejected")
	}
	if err := ValidateQuery("price > ₹5 Lakh"); err == nil {
		t.Fatalf("expected query with special characters to be rejected")
	}
}

func TestValidateYear(t *testing.T) {
	if err := ValidateYear(0); err != nil {
		t.Fatalf("expected zero year to be allowed: %v", err)
	}
	if err := ValidateYear(2020); err != nil {
		t.Fatalf("expected 2020 to be valid: %v", err)
	}
	if err := ValidateYear(time.Now().Year() + 1); err != nil {
		t.Fatalf("expected next model year to be valid: %v", err)
	}
	if err := ValidateYear(1989); err == nil {
		t.Fatalf("expected 1989 to be rejected")
	}
	if err := ValidateYear(time.Now().Year() + 2); err == nil {
		t.Fatalf("expected far-future year to be rejected")
	}
}

func TestValidateRegistrationNumber(t *testing.T) {
	valid := []string{"", "MH12AB1234", "MH 12 AB 1234", "DL-01-C-1234", "KA05M9876"}
	for _, reg := range valid {
		if err := ValidateRegistrationNumber(reg); err != nil {
			t.Fatalf("expected %q to be valid: %v", reg, err)
		}
	}

	invalid := []string{"not-a-plate", "1234MH", "MH12AB12345"}
	for _, reg := range invalid {
		if err := ValidateRegistrationNumber(reg); err == nil {
			t.Fatalf("expected %q to be rejected", reg)
		}
	}
}

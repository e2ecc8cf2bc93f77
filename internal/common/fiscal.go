package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CurrentFinancialYear returns the Indian financial year label for now,
// e.g. "2026-2027". The FY starts in April.
func CurrentFinancialYear() string {
	now := time.Now()
	year := now.Year()
	if now.Month() >= time.April {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{10}[0-9]{1}[A-Z]{1}[A-Z0-9]{1}$`)

// ValidateGSTIN validates GSTIN format. Empty GSTIN is allowed (optional field).
func ValidateGSTIN(gstin, fieldName string) error {
	if strings.TrimSpace(gstin) == "" {
		return nil
	}
	if len(gstin) != 15 {
		return fmt.Errorf("%s must be exactly 15 characters", fieldName)
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("%s has invalid GSTIN format", fieldName)
	}
	return nil
}

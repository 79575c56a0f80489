package accounting

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPAN reports a malformed permanent account number.
	ErrInvalidPAN = errors.New("invalid PAN")
	// ErrInvalidGSTIN reports a malformed GST identification number.
	ErrInvalidGSTIN = errors.New("invalid GSTIN")
)

var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// NormalizeTaxID trims and upper-cases an identifier before validation.
func NormalizeTaxID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidatePAN checks a 10-character PAN: five letters, four digits, a letter.
func ValidatePAN(pan string) error {
	pan = NormalizeTaxID(pan)
	if !panPattern.MatchString(pan) {
		return fmt.Errorf("%w: %q", ErrInvalidPAN, pan)
	}
	return nil
}

// ValidateGSTIN checks a 15-character GSTIN: state code, embedded PAN, entity
// number, the fixed 'Z' and a check character.
func ValidateGSTIN(gstin string) error {
	gstin = NormalizeTaxID(gstin)
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("%w: %q", ErrInvalidGSTIN, gstin)
	}
	return nil
}

// PANFromGSTIN extracts the PAN embedded in a valid GSTIN.
func PANFromGSTIN(gstin string) (string, error) {
	if err := ValidateGSTIN(gstin); err != nil {
		return "", err
	}
	return NormalizeTaxID(gstin)[2:12], nil
}

// CheckTaxIDs validates whichever of pan and gstin are non-empty and, when
// both are given, that the GSTIN embeds the PAN.
func CheckTaxIDs(pan, gstin string) error {
	var errs []error
	if strings.TrimSpace(pan) != "" {
		if err := ValidatePAN(pan); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(gstin) != "" {
		embedded, err := PANFromGSTIN(gstin)
		switch {
		case err != nil:
			errs = append(errs, err)
		case strings.TrimSpace(pan) != "" && embedded != NormalizeTaxID(pan):
			errs = append(errs, fmt.Errorf("%w: PAN %s not embedded in %s", ErrInvalidGSTIN, NormalizeTaxID(pan), NormalizeTaxID(gstin)))
		}
	}
	return errors.Join(errs...)
}

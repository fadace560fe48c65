package validator

import (
	"errors"
	"fmt"
)

var ErrInvalidASIN = errors.New("invalid ASIN")

const asinLength = 10

// ValidateASIN checks for ten ASCII letters or digits.
func ValidateASIN(asin string) error {
	if len(asin) != asinLength {
		return fmt.Errorf("%w: %q must be %d characters", ErrInvalidASIN, asin, asinLength)
	}
	for i := 0; i < len(asin); i++ {
		c := asin[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidASIN, asin, c)
		}
	}
	return nil
}

// ValidateASINs reports the first invalid id in ids.
func ValidateASINs(ids []string) error {
	for _, id := range ids {
		if err := ValidateASIN(id); err != nil {
			return err
		}
	}
	return nil
}

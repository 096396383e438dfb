package form

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Required fails on empty or whitespace-only values.
func Required() Validator {
	return func(_ context.Context, _ Values, value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("this field is required")
		}
		return nil
	}
}

// Email fails on values that do not parse as an email address.
func Email() Validator {
	return func(_ context.Context, _ Values, value string) error {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return errors.New("must be a valid email address")
		}
		return nil
	}
}

// MinLength fails on values shorter than n characters.
func MinLength(n int) Validator {
	return func(_ context.Context, _ Values, value string) error {
		if len(value) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	}
}

// EqualTo fails when the value differs from the named sibling field,
// reporting the given message.
func EqualTo(other, message string) Validator {
	return func(_ context.Context, form Values, value string) error {
		if value != form[other] {
			return errors.New(message)
		}
		return nil
	}
}

// PositiveInt fails on values that are not integers greater than zero.
func PositiveInt() Validator {
	return func(_ context.Context, _ Values, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return errors.New("must be a positive number greater than 0")
		}
		return nil
	}
}

// ISODate fails on values that do not parse as a YYYY-MM-DD date.
func ISODate() Validator {
	return func(_ context.Context, _ Values, value string) error {
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return errors.New("must be a valid date in YYYY-MM-DD form")
		}
		return nil
	}
}

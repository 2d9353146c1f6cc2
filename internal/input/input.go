// Package input converts raw user-supplied strings into well-typed values.
// All user-facing input rejection happens here, before storage is touched.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerworks/outlay/internal/model"
)

// Validation errors.
var (
	ErrInvalidDate   = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidID     = errors.New("id must contain only decimal digits")
	ErrInvalidAmount = errors.New("amount must be a number")
	ErrEmptyName     = errors.New("name cannot be empty")
)

// Date validates a YYYY-MM-DD string and returns it in canonical form.
// The input must match the layout exactly and name a real calendar day:
// "2024-2-3" and "2024-02-30" are both rejected.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	parsed, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	// time.Parse tolerates some layout deviations; the round trip does not.
	if parsed.Format(model.DateLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return s, nil
}

// DateOrToday is Date, except that empty input defaults to the current
// local date. Used for expense creation only; range queries require
// explicit bounds.
func DateOrToday(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now().Format(model.DateLayout), nil
	}
	return Date(s)
}

// ID parses a row id. Only unsigned decimal digits are accepted: no
// sign, no whitespace, no hex or exponent forms.
func ID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidID)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Amount parses a monetary amount. Sign is unconstrained: negative
// values (refunds) pass through as-is.
func Amount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// Name trims surrounding whitespace from a category name and rejects
// anything left empty.
func Name(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

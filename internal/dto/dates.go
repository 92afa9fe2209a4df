package dto

import (
	"fmt"
	"time"

	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
)

// Sprint boundaries are date-granular; task and comment timestamps carry time.
const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", apierrors.ErrValidation, s)
	}
	return t, nil
}

func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q, want RFC 3339", apierrors.ErrValidation, s)
	}
	return t.UTC(), nil
}

func requiredFieldErr(field string) error {
	return fmt.Errorf("%w: field %q cannot be null", apierrors.ErrValidation, field)
}

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", apierrors.ErrValidation, err)
}

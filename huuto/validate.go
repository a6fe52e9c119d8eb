package huuto

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// timeLayout is the date format the API expects for listTime/closingTime.
const timeLayout = "2006-01-02 15:04:05"

// oneOf validates an enum-valued parameter. The API ignores misspelled enum
// values instead of rejecting them, so catching them locally is the only
// feedback the caller gets.
func oneOf(field, value string, allowed ...string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// zeroOne validates a 0/1 boolean-style parameter.
func zeroOne(field string, v *int) error {
	if v == nil || *v == 0 || *v == 1 {
		return nil
	}
	return &ValidationError{Field: field, Reason: "must be 0 or 1"}
}

// parseMoney coerces a monetary string like "16.50" to a float.
func parseMoney(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("not a monetary amount: %q", s)}
	}
	return f, nil
}

// checkDateTime validates a timestamp against the API's fixed date format.
func checkDateTime(field, s string) error {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("must match format %q", timeLayout),
		}
	}
	return nil
}

// formatMoney renders a coerced monetary value for query/form parameters.
func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Int returns a pointer to v, for optional numeric parameters.
func Int(v int) *int {
	return &v
}

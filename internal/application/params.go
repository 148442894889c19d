package application

import (
	"fmt"
	"math"

	"devutils-bridge/internal/domain"

	"github.com/spf13/cast"
)

// getStringOption extracts a string option, returning def when it is absent.
func getStringOption(options map[string]interface{}, name, def string) (string, error) {
	value := options[name]
	if err := domain.AssertOptionType(value, domain.OptionString, name); err != nil {
		return "", err
	}
	if value == nil {
		return def, nil
	}
	return value.(string), nil
}

// getBoolOption extracts a boolean option, returning def when it is absent.
func getBoolOption(options map[string]interface{}, name string, def bool) (bool, error) {
	value := options[name]
	if err := domain.AssertOptionType(value, domain.OptionBoolean, name); err != nil {
		return false, err
	}
	if value == nil {
		return def, nil
	}
	return value.(bool), nil
}

// getIntOption extracts a whole-number option within [lo, hi], returning def when it is absent.
// JSON numbers arrive as float64, so fractional values are rejected explicitly.
func getIntOption(options map[string]interface{}, name string, def, lo, hi int) (int, error) {
	value := options[name]
	if err := domain.AssertOptionType(value, domain.OptionNumber, name); err != nil {
		return 0, err
	}
	if value == nil {
		return def, nil
	}

	f, err := cast.ToFloat64E(value)
	if err != nil || math.Trunc(f) != f || f < float64(lo) || f > float64(hi) {
		return 0, domain.NewValidationError(domain.CodeInvalidOption,
			fmt.Sprintf("option '%s' must be a whole number between %d and %d", name, lo, hi),
			domain.WithHints(fmt.Sprintf("Pass '%s' as an integer such as %d.", name, def)))
	}
	return cast.ToInt(f), nil
}

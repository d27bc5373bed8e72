package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a money field that arrives either as a JSON number or as a
// numeric string from form inputs. null and blank strings leave it unset.
type Amount struct {
	value float64
	set   bool
}

// NewAmount returns a set amount.
func NewAmount(v float64) Amount {
	return Amount{value: v, set: true}
}

// InvalidAmountError is returned when a string amount is not numeric.
type InvalidAmountError struct {
	Raw string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q", e.Raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidAmountError{Raw: raw}
	}
	a.value, a.set = v, true
	return nil
}

// MarshalJSON writes the number, or null when unset.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// IsSet reports whether a value was provided.
func (a Amount) IsSet() bool { return a.set }

// Float returns the value, zero when unset.
func (a Amount) Float() float64 { return a.value }

// Ptr returns nil when unset.
func (a Amount) Ptr() *float64 {
	if !a.set {
		return nil
	}
	v := a.value
	return &v
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Account is a customer account record.
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  Date   `json:"date_joined"`
}

// Validate checks the fields a client must supply.
func (a *Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if a.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if a.Address == "" {
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as "2006-01-02".
type Date struct {
	time.Time
}

// Today returns the current UTC calendar day.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON renders the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON accepts a "YYYY-MM-DD" string. An empty string leaves the
// date zero so callers can apply a default.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: date_joined must be a string", ErrValidation)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: date_joined must be formatted as YYYY-MM-DD", ErrValidation)
	}
	d.Time = t
	return nil
}

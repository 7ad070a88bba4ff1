package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validAccount() Account {
	return Account{
		Name:        "John Doe",
		Email:       "john@example.org",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		DateJoined:  DateOf(time.Date(2021, 4, 7, 15, 30, 0, 0, time.UTC)),
	}
}

func TestAccountValidate(t *testing.T) {
	a := validAccount()
	if err := a.Validate(); err != nil {
		t.Fatalf("valid account rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Account)
	}{
		{name: "missing name", mutate: func(a *Account) { a.Name = "" }},
		{name: "missing email", mutate: func(a *Account) { a.Email = "" }},
		{name: "missing address", mutate: func(a *Account) { a.Address = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := validAccount()
			tc.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAccountValidate_PhoneOptional(t *testing.T) {
	a := validAccount()
	a.PhoneNumber = ""
	if err := a.Validate(); err != nil {
		t.Fatalf("phone number should be optional: %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	a := validAccount()
	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `"date_joined":"2021-04-07"`; !strings.Contains(string(out), want) {
		t.Fatalf("expected %s in %s", want, out)
	}

	var back Account
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.DateJoined.String() != "2021-04-07" {
		t.Fatalf("unexpected date: %s", back.DateJoined)
	}
}

func TestDateJSON_InvalidInputs(t *testing.T) {
	var a Account
	if err := json.Unmarshal([]byte(`{"date_joined":"07/04/2021"}`), &a); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for wrong layout, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"date_joined":12}`), &a); err == nil {
		t.Fatalf("expected error for non-string date")
	}

	// Empty string leaves the date zero so the create path can default it.
	if err := json.Unmarshal([]byte(`{"date_joined":""}`), &a); err != nil {
		t.Fatalf("empty date should be accepted: %v", err)
	}
	if !a.DateJoined.IsZero() {
		t.Fatalf("expected zero date")
	}
}

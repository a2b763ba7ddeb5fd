package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/userdesk/user-management/internal/core/domain"
)

func violations(t *testing.T, i any) []domain.FieldViolation {
	t.Helper()
	err := NewValidator().Validate(i)
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	return ve.Violations
}

func TestValidator_AcceptsWellFormedCreate(t *testing.T) {
	req := createUserRequest{
		Name:    "Jane Doe",
		Email:   "jane@ex.com",
		Contact: "+1 (202) 555-0143",
	}
	if v := violations(t, &req); v != nil {
		t.Fatalf("unexpected violations: %+v", v)
	}
}

func TestValidator_NameRules(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{"", "Name is required"},
		{"J", "Name must be between 2 and 50 characters"},
		{strings.Repeat("a", 51), "Name must be between 2 and 50 characters"},
		{"Jane42", "Name can only contain letters and spaces"},
		{"<script>alert</script>", "Name can only contain letters and spaces"},
	}

	for _, tc := range cases {
		req := createUserRequest{Name: tc.name, Email: "jane@ex.com", Contact: "+1-202-555-0143"}
		v := violations(t, &req)
		if len(v) != 1 {
			t.Errorf("name %q: expected 1 violation, got %+v", tc.name, v)
			continue
		}
		if v[0].Field != "Name" || v[0].Message != tc.message {
			t.Errorf("name %q: got %+v", tc.name, v[0])
		}
	}
}

func TestValidator_EmailRules(t *testing.T) {
	long := strings.Repeat("a", 95) + "@ex.com" // 102 chars

	cases := []struct {
		email   string
		message string
	}{
		{"", "Email is required"},
		{"not-an-email", "Please provide a valid email address"},
		{long, "Email cannot exceed 100 characters"},
	}

	for _, tc := range cases {
		req := createUserRequest{Name: "Jane Doe", Email: tc.email, Contact: "+1-202-555-0143"}
		v := violations(t, &req)
		if len(v) != 1 {
			t.Errorf("email %q: expected 1 violation, got %+v", tc.email, v)
			continue
		}
		if v[0].Field != "Email" || v[0].Message != tc.message {
			t.Errorf("email %q: got %+v", tc.email, v[0])
		}
	}
}

func TestValidator_ContactRules(t *testing.T) {
	for _, contact := range []string{
		"",                      // required
		"12345",                 // too short
		"123456789012345678901", // too long
		"555-ABC-0143",          // letters
	} {
		req := createUserRequest{Name: "Jane Doe", Email: "jane@ex.com", Contact: contact}
		v := violations(t, &req)
		if len(v) != 1 || v[0].Field != "Contact" {
			t.Errorf("contact %q: expected a Contact violation, got %+v", contact, v)
		}
	}
}

func TestValidator_ViolationEchoesValue(t *testing.T) {
	req := createUserRequest{Name: "Jane Doe", Email: "broken", Contact: "+1-202-555-0143"}
	v := violations(t, &req)
	if len(v) != 1 {
		t.Fatalf("expected 1 violation, got %+v", v)
	}
	if v[0].Value != "broken" {
		t.Errorf("violation must echo the offending value, got %v", v[0].Value)
	}
}

func TestValidator_UpdateSkipsAbsentFields(t *testing.T) {
	// All-nil partial update: nothing to validate.
	if v := violations(t, &updateUserRequest{}); v != nil {
		t.Fatalf("unexpected violations: %+v", v)
	}

	// A present but invalid field still fails.
	bad := "b r o k e n"
	v := violations(t, &updateUserRequest{Email: &bad})
	if len(v) != 1 || v[0].Field != "Email" {
		t.Errorf("expected an Email violation, got %+v", v)
	}
}

func TestValidator_QueryRules(t *testing.T) {
	zero := 0
	big := 5000
	v := violations(t, &listUsersQuery{Page: &zero})
	if len(v) != 1 || v[0].Message != "Page must be a positive integer between 1 and 1000" {
		t.Errorf("page=0: got %+v", v)
	}

	v = violations(t, &listUsersQuery{Limit: &big})
	if len(v) != 1 || v[0].Message != "Limit must be a positive integer between 1 and 100" {
		t.Errorf("limit=5000: got %+v", v)
	}

	v = violations(t, &listUsersQuery{SortBy: "password"})
	if len(v) != 1 || v[0].Message != "Invalid sort field" {
		t.Errorf("sortBy=password: got %+v", v)
	}

	v = violations(t, &listUsersQuery{Search: strings.Repeat("x", 101)})
	if len(v) != 1 || v[0].Message != "Search term cannot exceed 100 characters" {
		t.Errorf("long search: got %+v", v)
	}

	ten := 10
	ok := listUsersQuery{Page: &ten, Limit: &ten, SortBy: "createdAt", SortOrder: "desc"}
	if v := violations(t, &ok); v != nil {
		t.Errorf("valid query rejected: %+v", v)
	}
}

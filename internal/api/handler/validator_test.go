package handler

import (
	"strings"
	"testing"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Email: "a@example.com", Password: "secret1", Phone: "1", Role: "pencari_jasa"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "full_name is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestValidator_JoinsMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&submitRatingRequest{Rating: 9})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"target_user_id is required", "job_id is required", "rating must be at most 5"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestValidator_Passes(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&loginRequest{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

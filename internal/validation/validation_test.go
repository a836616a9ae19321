package validation

import (
	"errors"
	"fmt"
	"testing"
)

type signupForm struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Images   []string `json:"image_urls" validate:"omitempty,dive,image_url"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	fields := Struct(&signupForm{Email: "not-an-email", Password: "short"})
	if fields == nil {
		t.Fatal("expected errors")
	}

	if got := fields["email"]; len(got) != 1 || got[0] != "The email must be a valid email address." {
		t.Fatalf("email message: %v", got)
	}
	if got := fields["password"]; len(got) != 1 || got[0] != "The password must be at least 8 characters." {
		t.Fatalf("password message: %v", got)
	}
}

func TestStructRequiredMessage(t *testing.T) {
	fields := Struct(&signupForm{Password: "longenough"})
	if got := fields["email"]; len(got) != 1 || got[0] != "The email field is required." {
		t.Fatalf("required message: %v", got)
	}
}

func TestStructCleanInput(t *testing.T) {
	if fields := Struct(&signupForm{Email: "a@b.edu", Password: "longenough"}); fields != nil {
		t.Fatalf("expected nil, got %v", fields)
	}
}

func TestImageURLTag(t *testing.T) {
	ok := []string{"https://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg", "/storage/a.jpg"}
	for _, u := range ok {
		form := signupForm{Email: "a@b.edu", Password: "longenough", Images: []string{u}}
		if fields := Struct(&form); fields != nil {
			t.Fatalf("%q rejected: %v", u, fields)
		}
	}

	form := signupForm{Email: "a@b.edu", Password: "longenough", Images: []string{"ftp://bad"}}
	fields := Struct(&form)
	if fields == nil {
		t.Fatal("expected image_url failure")
	}
	if got := fields["image_urls[0]"]; len(got) != 1 || got[0] != "The image_urls[0] format is invalid." {
		t.Fatalf("image_url message: %v", fields)
	}
}

func TestAsError(t *testing.T) {
	inner := &Error{Fields: One("name", "The name field is required.")}
	wrapped := fmt.Errorf("saving: %w", inner)

	got, ok := AsError(wrapped)
	if !ok || got != inner {
		t.Fatal("AsError failed to unwrap")
	}

	if _, ok := AsError(errors.New("plain")); ok {
		t.Fatal("plain error misidentified")
	}
}

package auth

import "testing"

func TestNewRedirectIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "/booking", want: "/booking"},
		{raw: "/notice/42?from=home", want: "/notice/42?from=home"},
		{raw: "", want: ""},
		{raw: "booking", want: ""},
		{raw: "//evil.example.com/x", want: ""},
		{raw: "https://evil.example.com/booking", want: ""},
		{raw: "/\\evil.example.com", want: ""},
		{raw: "://invalid", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NewRedirectIntent(tt.raw)
			if got.Path() != tt.want {
				t.Fatalf("NewRedirectIntent(%q).Path() = %q, want %q", tt.raw, got.Path(), tt.want)
			}
			if got.IsZero() != (tt.want == "") {
				t.Fatalf("IsZero mismatch for %q", tt.raw)
			}
		})
	}
}

func TestRedirectIntent_Destination(t *testing.T) {
	if got := (RedirectIntent{}).Destination(); got != "/" {
		t.Fatalf("zero intent destination = %q", got)
	}
	if got := NewRedirectIntent("/dashboard").Destination(); got != "/dashboard" {
		t.Fatalf("destination = %q", got)
	}
}

func TestRedirectIntent_Without(t *testing.T) {
	isLogin := func(p string) bool { return p == "/student-login" }

	if got := NewRedirectIntent("/student-login?redirect_uri=%2Fx").Without(isLogin); !got.IsZero() {
		t.Fatalf("expected login intent to be dropped, got %q", got.Path())
	}
	if got := NewRedirectIntent("/booking").Without(isLogin); got.Path() != "/booking" {
		t.Fatalf("unexpected drop: %q", got.Path())
	}
}

package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{name: "message only", err: NotFound("notice not found"), want: "notice not found"},
		{
			name: "with cause",
			err:  Wrap(errors.New("dial tcp: refused"), ErrCodeUpstream, "portal API unavailable"),
			want: "portal API unavailable: dial tcp: refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrapf(cause, ErrCodeInternal, "load %s", "accounts")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Message != "load accounts" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrap_NilError(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("facility", "Unknown facility")
	if !IsValidation(err) || GetField(err) != "facility" {
		t.Errorf("unexpected %+v", err)
	}
}

func TestPredicatesAndCodes(t *testing.T) {
	if !IsUpstream(Upstreamf("status %d", 500)) {
		t.Error("expected upstream")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error must not be NotFound")
	}
	if GetCode(errors.New("plain")) != "" || GetField(errors.New("plain")) != "" {
		t.Error("plain error should have no code or field")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{&AppError{Code: ErrCodeConflict}, http.StatusConflict},
		{Validation("x"), http.StatusUnprocessableEntity},
		{Upstreamf("x"), http.StatusBadGateway},
		{&AppError{Code: ErrCodeTimeout}, http.StatusGatewayTimeout},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

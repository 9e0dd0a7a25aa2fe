package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuth, http.StatusUnauthorized},
		{KindConfig, http.StatusInternalServerError},
		{KindConflict, http.StatusConflict},
		{KindNotFound, http.StatusNotFound},
		{KindUnexpected, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestAsWrapsForeignErrors(t *testing.T) {
	appErr := As(errors.New("boom"))
	if appErr.Kind != KindUnexpected {
		t.Fatalf("expected unexpected kind, got %s", appErr.Kind)
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestErrorsIsMatchesKindAndCode(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", &Error{Kind: KindValidation, Code: CodePaymentVerificationFailed, Message: "x"})
	if !errors.Is(wrapped, PaymentVerificationFailed) {
		t.Fatal("expected wrapped error to match PaymentVerificationFailed")
	}
	if errors.Is(Validation("other"), PaymentVerificationFailed) {
		t.Fatal("plain validation error must not match payment verification failure")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != KindNone {
		t.Fatalf("expected KindNone for nil, got %s", KindOf(nil))
	}
	if KindOf(NotFound("x")) != KindNotFound {
		t.Fatal("expected not_found kind")
	}
	if KindOf(errors.New("x")) != KindUnexpected {
		t.Fatal("expected unexpected kind for foreign error")
	}
}

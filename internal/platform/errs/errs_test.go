package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	appErr := &AppError{Kind: Unreachable, Message: "Could not reach the website", Cause: cause}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: appErr, want: Unreachable},
		{name: "wrapped", err: fmt.Errorf("analyze: %w", appErr), want: Unreachable},
		{name: "plain error", err: cause, want: Unknown},
		{name: "nil", err: nil, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}

	if !errors.Is(appErr, cause) {
		t.Error("AppError should unwrap to its cause")
	}
}

func TestAppError_Error(t *testing.T) {
	if got := (&AppError{Message: "Invalid URL"}).Error(); got != "Invalid URL" {
		t.Errorf("Error() = %q", got)
	}
	withCause := &AppError{Message: "Server error (502)", Cause: errors.New("bad gateway")}
	if got := withCause.Error(); got != "Server error (502): bad gateway" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKind_IsFetch(t *testing.T) {
	for _, k := range []Kind{Timeout, NotFound, Forbidden, ServerError, ClientError, HTTPError, NotHTML, TooLarge, EmptyBody, Unreachable} {
		if !k.IsFetch() {
			t.Errorf("%v.IsFetch() = false, want true", k)
		}
	}
	for _, k := range []Kind{Unknown, InvalidInput, InvalidURL, BlockedURL} {
		if k.IsFetch() {
			t.Errorf("%v.IsFetch() = true, want false", k)
		}
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q", got)
	}
}

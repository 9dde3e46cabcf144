package objenc_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reoring/objenc"
)

// mustViolate runs fn and asserts it panics with a ContractViolation whose
// rule mentions want.
func mustViolate(t *testing.T, want string, fn func()) *objenc.ContractViolation {
	t.Helper()
	var cv *objenc.ContractViolation
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			var ok bool
			cv, ok = r.(*objenc.ContractViolation)
			if !ok {
				t.Fatalf("expected *ContractViolation panic, got %T: %v", r, r)
			}
		}()
		fn()
	}()
	if cv == nil {
		t.Fatalf("expected contract violation containing %q, got none", want)
	}
	if !strings.Contains(cv.Rule, want) {
		t.Fatalf("violation rule %q does not mention %q", cv.Rule, want)
	}
	return cv
}

// encodeFunc runs Encode over an EncodableFunc with a background context.
func encodeFunc(t *testing.T, fn func(s *objenc.Scope) error, opts ...objenc.Options) (any, error) {
	t.Helper()
	return objenc.Encode(context.Background(), objenc.EncodableFunc(fn), opts...)
}

var errDomain = errors.New("domain failure")

// failing always declines to encode.
type failing struct{}

func (failing) EncodeObject(*objenc.Scope) error { return errDomain }

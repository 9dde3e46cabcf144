package objenc

import "context"

// userInfoKey is a unique key per type parameter T for context storage.
type userInfoKey[T any] struct{}

// WithUserInfo stores a typed value in ctx. Encodable implementations read it
// back through UserInfo on the scope they are handed.
func WithUserInfo[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, userInfoKey[T]{}, any(v))
}

// UserInfo retrieves the value of type T stored with WithUserInfo in the
// context of the running Encode call.
func UserInfo[T any](s *Scope) (T, bool) {
	var zero T
	v := s.Context().Value(userInfoKey[T]{})
	if v == nil {
		return zero, false
	}
	if tv, ok := v.(T); ok {
		return tv, true
	}
	return zero, false
}

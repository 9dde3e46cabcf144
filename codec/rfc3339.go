package codec

import (
	"time"

	"github.com/reoring/objenc"
	"github.com/reoring/objenc/i18n"
)

// TimeRFC3339 returns an Encodable writing t as a canonical RFC3339 string:
// normalized to UTC, fractional seconds without trailing zeros. The zero time
// encodes as null.
func TimeRFC3339(t time.Time) objenc.Encodable {
	return rfc3339Time(t)
}

// TimeRFC3339Text returns an Encodable that parses s as RFC3339 and writes its
// canonical form. Unparseable input fails with a parse_error Issue at the
// scope's path.
func TimeRFC3339Text(s string) objenc.Encodable {
	return rfc3339Text(s)
}

type rfc3339Time time.Time

func (t rfc3339Time) EncodeObject(s *objenc.Scope) error {
	tt := time.Time(t)
	if tt.IsZero() {
		s.Scalar().SetNull()
		return nil
	}
	s.Scalar().SetString(formatRFC3339Canonical(tt))
	return nil
}

type rfc3339Text string

func (v rfc3339Text) EncodeObject(s *objenc.Scope) error {
	t, err := parseRFC3339(string(v))
	if err != nil {
		return objenc.Issues{{
			Path:    s.Path().Pointer(),
			Code:    objenc.CodeParseError,
			Message: i18n.T(objenc.CodeParseError, nil) + ": invalid RFC3339 time",
			Cause:   err,
		}}
	}
	s.Scalar().SetString(formatRFC3339Canonical(t))
	return nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

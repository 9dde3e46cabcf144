package objenc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/objenc/i18n"
)

// Issue codes produced by the encoder itself. Errors returned by user
// Encodable implementations are propagated unchanged and need not be Issues.
const (
	CodeInvalidType  = "invalid_type"
	CodeNonFinite    = "non_finite"
	CodeTooDeep      = "too_deep"
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
	CodeUnsupported  = "unsupported"
)

// Issue represents a single domain encode failure.
type Issue struct {
	Path    string // JSON Pointer of the offending position (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got":"NaN"}) for i18n
	// and logging.
	Params map[string]any
}

// Unwrap exposes the underlying cause.
func (it Issue) Unwrap() error { return it.Cause }

func (it Issue) Error() string {
	if it.Message == "" {
		return fmt.Sprintf("%s at %s", it.Code, it.Path)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of encode failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. non_finite at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes each issue's cause to errors.Is / errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// newIssue builds a single-issue error with a translated message.
func newIssue(p Path, code string, cause error, params map[string]any) Issues {
	data := make(map[string]string, len(params))
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issues{{
		Path:    p.Pointer(),
		Code:    code,
		Message: i18n.T(code, data),
		Cause:   cause,
		Params:  params,
	}}
}

// ContractViolation is the panic value raised when an Encodable and the
// writer protocol disagree about the shape being built: a scope asked for two
// different shapes, a scalar writer used twice, or a scope finalized without
// a value. It is a programming error and is never returned as an error.
type ContractViolation struct {
	Path string // JSON Pointer of the scope where the rule was broken.
	Rule string
}

func (cv *ContractViolation) Error() string {
	return "objenc: contract violation at " + cv.Path + ": " + cv.Rule
}

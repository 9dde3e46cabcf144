// Package source adapts external documents (JSON text, YAML nodes) into
// objenc.Encodable values so that they can be merged into trees built by
// hand-written encoders.
package source

import (
	"errors"

	"github.com/reoring/objenc"
	"github.com/reoring/objenc/i18n"
	eng "github.com/reoring/objenc/internal/engine"
)

// DuplicatePolicy controls how repeated object keys in the input are handled.
type DuplicatePolicy int

const (
	DuplicateOverwrite DuplicatePolicy = iota // Last occurrence wins.
	DuplicateWarn                             // Last occurrence wins; a warning is logged.
	DuplicateError                            // Fail with a duplicate_key Issue.
)

func (p DuplicatePolicy) engine() eng.DuplicateStrictness {
	switch p {
	case DuplicateWarn:
		return eng.DupWarn
	case DuplicateError:
		return eng.DupError
	}
	return eng.DupIgnore
}

// issue builds a single-issue error anchored at p. Engine issues carry a
// pointer relative to the document root, which is appended to p.
func issue(p objenc.Path, code string, err error) objenc.Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		ptr := ie.Path
		if len(p) > 0 {
			if ptr == "/" {
				ptr = ""
			}
			ptr = p.Pointer() + ptr
		}
		return objenc.Issues{{
			Path:    ptr,
			Code:    ie.Code,
			Message: i18n.T(ie.Code, nil),
			Cause:   err,
		}}
	}
	msg := i18n.T(code, nil)
	if err != nil {
		msg += ": " + err.Error()
	}
	return objenc.Issues{{Path: p.Pointer(), Code: code, Message: msg, Cause: err}}
}

package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/reoring/objenc"
	eng "github.com/reoring/objenc/internal/engine"
)

// JSONOptions configures JSON input enforcement.
type JSONOptions struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int   // Maximum container nesting; 0 means unlimited.
	MaxBytes    int64 // Maximum consumed input; 0 means unlimited.
}

// JSON returns an Encodable that writes the JSON document b into the scope it
// is given. Objects become maps, arrays sequences; numbers go through
// PutScalar with a json.Number, so Options.NumberMode applies.
func JSON(b []byte, opts ...JSONOptions) objenc.Encodable {
	return jsonDoc{open: func() io.Reader { return bytes.NewReader(b) }, opt: lastJSONOpt(opts)}
}

// JSONReader is like JSON but streams from r. The returned Encodable consumes
// r and can therefore be encoded only once.
func JSONReader(r io.Reader, opts ...JSONOptions) objenc.Encodable {
	return jsonDoc{open: func() io.Reader { return r }, opt: lastJSONOpt(opts)}
}

func lastJSONOpt(opts []JSONOptions) JSONOptions {
	if len(opts) == 0 {
		return JSONOptions{}
	}
	return opts[len(opts)-1]
}

type jsonDoc struct {
	open func() io.Reader
	opt  JSONOptions
}

func (d jsonDoc) EncodeObject(s *objenc.Scope) error {
	log := s.Options().Logger
	src := eng.WrapWithEnforcement(eng.NewJSONReader(d.open()), eng.EnforceOptions{
		OnDuplicate: d.opt.OnDuplicate.engine(),
		MaxDepth:    d.opt.MaxDepth,
		MaxBytes:    d.opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			log.Warn("objenc: duplicate JSON key", zap.String("path", si.Path), zap.String("message", si.Message))
		},
	})
	dr := &tokenDriver{src: src, base: s.Path()}
	tok, err := dr.next(s.Path())
	if err != nil {
		if errors.Is(err, io.EOF) {
			return issue(s.Path(), objenc.CodeParseError, io.ErrUnexpectedEOF)
		}
		return err
	}
	if err := dr.value(s, tok); err != nil {
		return err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after top-level value")
		}
		return issue(s.Path(), objenc.CodeParseError, err)
	}
	return nil
}

// tokenDriver replays a token stream through the writer protocol.
type tokenDriver struct {
	src  eng.TokenSource
	base objenc.Path
}

func (d *tokenDriver) next(p objenc.Path) (eng.Token, error) {
	tok, err := d.src.NextToken()
	if err == nil {
		return tok, nil
	}
	if errors.Is(err, io.EOF) {
		return tok, err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return tok, issue(d.base, ie.Code, err)
	}
	return tok, issue(p, objenc.CodeParseError, err)
}

// nextValue is next for positions where the stream must not end.
func (d *tokenDriver) nextValue(p objenc.Path) (eng.Token, error) {
	tok, err := d.next(p)
	if errors.Is(err, io.EOF) {
		return tok, issue(p, objenc.CodeParseError, io.ErrUnexpectedEOF)
	}
	return tok, err
}

// subtree encodes the value starting at tok into a child scope.
type subtree struct {
	d   *tokenDriver
	tok eng.Token
}

func (t subtree) EncodeObject(s *objenc.Scope) error { return t.d.value(s, t.tok) }

func (d *tokenDriver) value(s *objenc.Scope, tok eng.Token) error {
	switch tok.Kind {
	case eng.KindBeginObject:
		return d.object(s.Map())
	case eng.KindBeginArray:
		return d.array(s.Sequence())
	case eng.KindString:
		s.Scalar().SetString(tok.String)
	case eng.KindNumber:
		return s.Scalar().SetScalar(json.Number(tok.Number))
	case eng.KindBool:
		s.Scalar().SetBool(tok.Bool)
	case eng.KindNull:
		s.Scalar().SetNull()
	default:
		return issue(s.Path(), objenc.CodeParseError, errors.New("unexpected "+tok.Kind.String()))
	}
	return nil
}

func (d *tokenDriver) object(m *objenc.MapWriter) error {
	for {
		tok, err := d.nextValue(m.Path())
		if err != nil {
			return err
		}
		if tok.Kind == eng.KindEndObject {
			return nil
		}
		if tok.Kind != eng.KindKey {
			return issue(m.Path(), objenc.CodeParseError, errors.New("expected key, got "+tok.Kind.String()))
		}
		key := tok.String
		vt, err := d.nextValue(m.Path().Field(key))
		if err != nil {
			return err
		}
		switch vt.Kind {
		case eng.KindString:
			m.PutString(key, vt.String)
		case eng.KindBool:
			m.PutBool(key, vt.Bool)
		case eng.KindNull:
			m.PutNull(key)
		case eng.KindNumber:
			err = m.PutScalar(key, json.Number(vt.Number))
		default:
			// Put, not Map: a repeated key replaces the earlier value
			// instead of merging into it.
			err = m.Put(key, subtree{d: d, tok: vt})
		}
		if err != nil {
			return err
		}
	}
}

func (d *tokenDriver) array(q *objenc.SeqWriter) error {
	for {
		tok, err := d.nextValue(q.Path().Index(q.Len()))
		if err != nil {
			return err
		}
		switch tok.Kind {
		case eng.KindEndArray:
			return nil
		case eng.KindString:
			q.AppendString(tok.String)
		case eng.KindBool:
			q.AppendBool(tok.Bool)
		case eng.KindNull:
			q.AppendNull()
		case eng.KindNumber:
			err = q.AppendScalar(json.Number(tok.Number))
		default:
			err = q.Append(subtree{d: d, tok: tok})
		}
		if err != nil {
			return err
		}
	}
}

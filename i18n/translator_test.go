package i18n_test

import (
	"testing"

	"github.com/reoring/objenc/i18n"
)

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestT_LanguagesAndFallback(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	if got := i18n.T("non_finite", map[string]string{"got": "NaN"}); got != "non-finite floating-point value (NaN)" {
		t.Fatalf("unexpected en message: %q", got)
	}
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown codes should fall back to the code, got %q", got)
	}

	i18n.SetLanguage("ja")
	if got := i18n.T("too_deep", nil); got != "ネストが深すぎます" {
		t.Fatalf("unexpected ja message: %q", got)
	}

	i18n.SetLanguage("fr")
	if got := i18n.T("too_deep", nil); got != "maximum nesting depth exceeded" {
		t.Fatalf("unsupported language should fall back to en, got %q", got)
	}
}

func TestSetTranslator(t *testing.T) {
	t.Cleanup(func() { i18n.SetTranslator(nil) })
	i18n.SetTranslator(upper{})
	if got := i18n.T("parse_error", nil); got != "X:parse_error" {
		t.Fatalf("custom translator not used: %q", got)
	}
	i18n.SetTranslator(nil)
	if got := i18n.T("parse_error", nil); got != "parse error" {
		t.Fatalf("nil translator should restore default, got %q", got)
	}
}

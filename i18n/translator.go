package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "got" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return withGot("型が不正です", data)
		case "non_finite":
			return withGot("有限でない浮動小数点数です", data)
		case "too_deep":
			return "ネストが深すぎます"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "truncated":
			return "打ち切られました"
		case "unsupported":
			return withGot("エンコードできない型です", data)
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return withGot("invalid type", data)
		case "non_finite":
			return withGot("non-finite floating-point value", data)
		case "too_deep":
			return "maximum nesting depth exceeded"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "truncated":
			return "truncated"
		case "unsupported":
			return withGot("unsupported type", data)
		}
	}
	return code
}

func withGot(msg string, data map[string]string) string {
	if got, ok := data["got"]; ok && got != "" {
		return msg + " (" + got + ")"
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

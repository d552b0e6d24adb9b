package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if data == nil {
		return msg
	}
	if exp, ok := data["expected"]; ok {
		got := data["got"]
		switch {
		case t.lang == "ja" && got != "":
			msg += "（期待: " + exp + "、実際: " + got + "）"
		case t.lang == "ja":
			msg += "（期待: " + exp + "）"
		case got != "":
			msg += " (expected " + exp + ", got " + got + ")"
		default:
			msg += " (expected " + exp + ")"
		}
	}
	return msg
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須属性が不足しています"
		case "unknown_key":
			return "未知の属性です"
		case "duplicate_key":
			return "属性が重複しています"
		case "nil_input":
			return "入力がありません"
		case "parse_error":
			return "解析エラー"
		case "invalid_value":
			return "値が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required attribute missing"
		case "unknown_key":
			return "unknown attribute"
		case "duplicate_key":
			return "duplicate attribute"
		case "nil_input":
			return "null composite data"
		case "parse_error":
			return "parse error"
		case "invalid_value":
			return "invalid value"
		}
	}
	return code
}

type holder struct{ tr Translator }

var currentTranslator atomic.Pointer[holder]

func init() { currentTranslator.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().tr.Message(code, data)
}

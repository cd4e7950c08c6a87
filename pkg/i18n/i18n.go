package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Language represents a supported language
type Language string

const (
	// English is the English language
	English Language = "en"
	// Portuguese is Brazilian Portuguese
	Portuguese Language = "pt"
)

// DefaultLanguage is the fallback language
const DefaultLanguage = English

// LangCookie is the cookie that remembers an explicit language choice.
const LangCookie = "lang"

// Order matches supportedTags.
var (
	supportedLanguages = []Language{English, Portuguese}
	supportedTags      = []language.Tag{language.English, language.BrazilianPortuguese}
	matcher            = language.NewMatcher(supportedTags)
)

// Translation represents a translation map
type Translation map[string]string

// Translations holds all language translations
type Translations map[Language]Translation

// Translator provides translation functionality
type Translator struct {
	translations Translations
}

// NewTranslator creates a new translator
func NewTranslator() *Translator {
	return &Translator{
		translations: defaultTranslations,
	}
}

// T translates a key for the given language, falling back to English and then to the key.
func (t *Translator) T(lang Language, key string) string {
	if trans, ok := t.translations[lang]; ok {
		if text, ok := trans[key]; ok {
			return text
		}
	}

	if trans, ok := t.translations[DefaultLanguage]; ok {
		if text, ok := trans[key]; ok {
			return text
		}
	}

	return key
}

// Tf translates key and formats it with args.
func (t *Translator) Tf(lang Language, key string, args ...interface{}) string {
	return fmt.Sprintf(t.T(lang, key), args...)
}

// Parse matches a language code or Accept-Language value against the supported languages.
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return supportedLanguages[idx], true
}

// ParseOr is Parse with a fallback for unknown input.
func ParseOr(s string, fallback Language) Language {
	if lang, ok := Parse(s); ok {
		return lang
	}
	return fallback
}

// DetectLanguage picks the language for a request: the lang query parameter, the lang
// cookie, then Accept-Language. Unrecognized values are skipped; fallback is used when
// nothing matches.
func DetectLanguage(r *http.Request, fallback Language) Language {
	if lang, ok := Parse(r.URL.Query().Get("lang")); ok {
		return lang
	}

	if cookie, err := r.Cookie(LangCookie); err == nil {
		if lang, ok := Parse(cookie.Value); ok {
			return lang
		}
	}

	if lang, ok := Parse(r.Header.Get("Accept-Language")); ok {
		return lang
	}

	return fallback
}

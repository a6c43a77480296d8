package i18n

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

const DefaultLanguage = "en"

type Direction int

const (
	LTR Direction = iota
	RTL
)

var rtlLanguages = map[string]bool{
	"ar": true,
}

type Translator struct {
	trans    ut.Translator
	fallback ut.Translator
	language string
}

// New returns a translator for language. Unknown languages fall back to
// English.
func New(language string) (*Translator, error) {
	uni := ut.New(en.New(), en.New(), ar.New())

	tables := map[string]map[string]string{
		"en": english,
		"ar": arabic,
	}
	for lang, table := range tables {
		trans, _ := uni.GetTranslator(lang)
		for key, text := range table {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("adding %s translation %q: %w", lang, key, err)
			}
		}
	}

	fallback, _ := uni.GetTranslator(DefaultLanguage)
	trans, found := uni.GetTranslator(language)
	if !found {
		log.Warn("Unsupported language, using default", "language", language, "default", DefaultLanguage)
		language = DefaultLanguage
	}

	return &Translator{
		trans:    trans,
		fallback: fallback,
		language: language,
	}, nil
}

// T translates key. Parameters replace {0}, {1}, ... in order. Missing keys
// are returned as is.
func (t *Translator) T(key string, params ...string) string {
	if s, err := t.trans.T(key, params...); err == nil {
		return s
	}
	if s, err := t.fallback.T(key, params...); err == nil {
		return s
	}
	return key
}

func (t *Translator) Language() string {
	return t.language
}

func (t *Translator) Direction() Direction {
	if rtlLanguages[t.language] {
		return RTL
	}
	return LTR
}

// Locale exposes number and date formatting for the active language.
func (t *Translator) Locale() locales.Translator {
	return t.trans
}

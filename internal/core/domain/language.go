package domain

import "strings"

// Language is the bucket an article is sorted into by the classifier.
type Language string

const (
	// LanguageSource marks articles written in any language other than the target.
	LanguageSource Language = "source"

	// LanguageTarget marks articles already written in the target language.
	LanguageTarget Language = "target"
)

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// BaseLanguageCode normalises a BCP 47 style code to its lower-cased
// primary subtag, so "en-US" and "EN_gb" both become "en".
func BaseLanguageCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

// ClassifyLanguage buckets a detected language code against the target code.
func ClassifyLanguage(detected, target string) Language {
	if BaseLanguageCode(detected) == BaseLanguageCode(target) {
		return LanguageTarget
	}
	return LanguageSource
}

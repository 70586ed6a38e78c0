// Package i18n translates transqiita's own user-facing strings.
//
// Catalogs are gettext .po files embedded under
// locales/{lang}/LC_MESSAGES/transqiita.po. Missing translations pass
// through unchanged.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const textDomain = "transqiita"

var (
	mu   sync.RWMutex
	po   *gotext.Locale
	lang string
)

// Init loads the catalog for tag. An empty tag is detected from
// LANGUAGE, LC_ALL, LC_MESSAGES and LANG in that order.
func Init(tag string) {
	if tag == "" {
		tag = detectLanguage(os.Getenv)
	}

	l := gotext.NewLocaleFSWithPath(tag, locales, "locales")
	l.AddDomain(textDomain)
	l.SetDomain(textDomain)

	mu.Lock()
	po, lang = l, tag
	mu.Unlock()
}

// Language returns the active UI language.
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	if lang == "" {
		return "en"
	}
	return lang
}

// T translates msgid. Extra arguments are applied as fmt verbs.
func T(msgid string, vars ...any) string {
	mu.RLock()
	l := po
	mu.RUnlock()

	if l == nil {
		return printf(msgid, vars...)
	}
	return l.Get(msgid, vars...)
}

// N translates a string with plural forms.
func N(singular, plural string, n int, vars ...any) string {
	mu.RLock()
	l := po
	mu.RUnlock()

	if l == nil {
		if n == 1 {
			return printf(singular, vars...)
		}
		return printf(plural, vars...)
	}
	return l.GetN(singular, plural, n, vars...)
}

func detectLanguage(getenv func(string) string) string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// "ja_JP.UTF-8" -> "ja_JP"
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}

func printf(format string, vars ...any) string {
	if len(vars) == 0 {
		return format
	}
	return fmt.Sprintf(format, vars...)
}

package tts

import "sort"

var locales = map[string]string{
	"en": "en-IN",
	"hi": "hi-IN",
	"mr": "mr-IN",
}

// Language pairs a short request code with the provider locale it maps to.
type Language struct {
	Code   string `json:"code"`
	Locale string `json:"locale"`
}

// Locale returns the provider locale for a short language code.
func Locale(code string) (string, bool) {
	l, ok := locales[code]
	return l, ok
}

// Languages lists the supported languages ordered by code.
func Languages() []Language {
	out := make([]Language, 0, len(locales))
	for code, locale := range locales {
		out = append(out, Language{Code: code, Locale: locale})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

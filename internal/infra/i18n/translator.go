package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Translator resolves message keys for a single locale.
type Translator struct {
	locale       string
	translations map[string]string
}

// NewTranslator loads the flat key/value catalog for one locale.
func NewTranslator(fsys fs.FS, locale string) (*Translator, error) {
	filePath := filepath.Join("locales", fmt.Sprintf("%s.yaml", locale))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}

	return &Translator{locale: locale, translations: translations}, nil
}

// T returns the message for key, formatted with args when present.
// Unknown keys fall back to the key itself so missing catalog entries
// stay visible instead of failing the request.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

func (t *Translator) Locale() string { return t.locale }

// Registry holds one Translator per supported locale and negotiates
// against Accept-Language headers.
type Registry struct {
	byLocale map[string]*Translator
	fallback string
	matcher  language.Matcher
	tags     []language.Tag
}

var supported = []language.Tag{language.Arabic, language.English}

// NewRegistry loads all supported locales up front. fallback must be
// one of the loaded locales.
func NewRegistry(fsys fs.FS, fallback string) (*Registry, error) {
	byLocale := make(map[string]*Translator, len(supported))
	for _, tag := range supported {
		base, _ := tag.Base()
		tr, err := NewTranslator(fsys, base.String())
		if err != nil {
			return nil, err
		}
		byLocale[base.String()] = tr
	}
	if _, ok := byLocale[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no catalog", fallback)
	}
	return &Registry{
		byLocale: byLocale,
		fallback: fallback,
		matcher:  language.NewMatcher(supported),
		tags:     supported,
	}, nil
}

// Match negotiates an Accept-Language header value into a supported
// locale and returns its Translator. An empty or unparseable header
// yields the fallback.
func (r *Registry) Match(acceptLanguage string) *Translator {
	if acceptLanguage == "" {
		return r.byLocale[r.fallback]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.byLocale[r.fallback]
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return r.byLocale[r.fallback]
	}
	base, _ := r.tags[idx].Base()
	if tr, ok := r.byLocale[base.String()]; ok {
		return tr
	}
	return r.byLocale[r.fallback]
}

// ForLocale returns the Translator for an exact locale code, falling
// back when the code is unknown.
func (r *Registry) ForLocale(locale string) *Translator {
	if tr, ok := r.byLocale[locale]; ok {
		return tr
	}
	return r.byLocale[r.fallback]
}

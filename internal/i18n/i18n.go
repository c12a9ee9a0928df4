// Package i18n localizes user-facing strings in English and Arabic.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	// CookieName persists the visitor's language choice.
	CookieName = "lang"
	// QueryParam switches the language for the current and later requests.
	QueryParam = "lang"

	contextKey = "i18n.localizer"
)

var supported = []language.Tag{language.English, language.Arabic}

type Bundle struct {
	bundle   *goi18n.Bundle
	matcher  language.Matcher
	fallback string
}

// NewBundle loads the embedded message files. defaultLang is used when the
// request expresses no supported preference.
func NewBundle(defaultLang string) (*Bundle, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse default language: %w", err)
	}

	b := goi18n.NewBundle(def)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/active.en.json", "locales/active.ar.json"} {
		if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	// The matcher falls back to its first tag, so the default leads.
	tags := []language.Tag{def}
	for _, t := range supported {
		if t != def {
			tags = append(tags, t)
		}
	}

	return &Bundle{
		bundle:   b,
		matcher:  language.NewMatcher(tags),
		fallback: baseOf(def),
	}, nil
}

// Localizer resolves the best supported language for the given preferences,
// which may be plain tags or Accept-Language header values.
func (b *Bundle) Localizer(prefs ...string) *Localizer {
	tag, _ := language.MatchStrings(b.matcher, prefs...)
	lang := baseOf(tag)
	if lang != "en" && lang != "ar" {
		lang = b.fallback
	}
	return &Localizer{
		l:    goi18n.NewLocalizer(b.bundle, lang),
		Lang: lang,
	}
}

// Middleware picks the request language from the query, the language cookie
// or Accept-Language, in that order, and stores the localizer on the context.
func (b *Bundle) Middleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs []string
		if q := c.Query(QueryParam); q != "" {
			prefs = append(prefs, q)
		}
		if v, err := c.Cookie(CookieName); err == nil && v != "" {
			prefs = append(prefs, v)
		}
		prefs = append(prefs, c.GetHeader("Accept-Language"))

		loc := b.Localizer(prefs...)
		if c.Query(QueryParam) != "" {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     CookieName,
				Value:    loc.Lang,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				Secure:   secureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(contextKey, loc)
		c.Next()
	}
}

// FromContext returns the localizer stored by Middleware. The nil localizer it
// returns otherwise renders message ids verbatim.
func FromContext(c *gin.Context) *Localizer {
	if v, ok := c.Get(contextKey); ok {
		if loc, ok := v.(*Localizer); ok {
			return loc
		}
	}
	return nil
}

type Localizer struct {
	l    *goi18n.Localizer
	Lang string
}

// T translates id. Unknown ids come back unchanged.
func (l *Localizer) T(id string, data ...map[string]any) string {
	if l == nil || l.l == nil || id == "" {
		return id
	}
	cfg := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.l.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

// Dir is the text direction for the HTML dir attribute.
func (l *Localizer) Dir() string {
	if l != nil && l.Lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

// Pick returns the Arabic value for Arabic visitors when it is non-empty.
func (l *Localizer) Pick(en, ar string) string {
	if l != nil && l.Lang == "ar" && ar != "" {
		return ar
	}
	return en
}

func baseOf(t language.Tag) string {
	base, _ := t.Base()
	return base.String()
}

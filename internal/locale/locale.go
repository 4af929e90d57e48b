// Package locale inspects the user's environment for language and script.
// The thaiseg doctor command reports whether the user's script is written
// without spaces between words.
package locale

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Context represents information about the language environment.
type Context struct {
	Script   language.Script // ISO 15924 script identifier
	Locale   string          // ISO 639/3166 locale string
	Language language.Tag
	// Unspaced is true for scripts written without spaces between words.
	Unspaced bool
}

// ThaiContext is a context for Thai.
var ThaiContext = makeContext("th-TH")

// LatinContext is a context for western languages.
var LatinContext = makeContext("en-US")

// unspacedMatch matches languages which are written without spaces
// between words.
var unspacedMatch = language.NewMatcher([]language.Tag{
	language.English, // The first language is used as fallback.
	language.Thai,
	language.Lao,
	language.Khmer,
	language.Burmese,
	language.Chinese,
	language.Japanese,
})

func makeContext(userLocale string) *Context {
	lang := language.Make(userLocale)
	script, _ := lang.Script()
	return &Context{
		Script:   script,
		Locale:   userLocale,
		Language: lang,
		Unspaced: isUnspaced(script, lang),
	}
}

func isUnspaced(script language.Script, lang language.Tag) bool {
	switch script.String() {
	case "Thai", "Laoo", "Khmr", "Mymr", "Hani", "Hans", "Hant", "Jpan", "Lana":
		return true
	}
	_, index, confidence := unspacedMatch.Match(lang)
	return index > 0 && confidence >= language.High
}

// ContextFromEnvironment detects the user's locale. If detection fails,
// LatinContext is returned.
func ContextFromEnvironment() *Context {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf(err.Error())
		T().Infof("locale falls back to %v", LatinContext.Locale)
		return LatinContext
	}
	T().Infof("detected user locale %v", userLocale)
	return makeContext(userLocale)
}

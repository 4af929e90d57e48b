package locale

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestContexts(t *testing.T) {
	if !ThaiContext.Unspaced {
		t.Errorf("expected Thai to be written without spaces")
	}
	if ThaiContext.Script.String() != "Thai" {
		t.Errorf("expected script Thai, have %s", ThaiContext.Script)
	}
	if LatinContext.Unspaced {
		t.Errorf("expected English to be written with spaces")
	}
	if ctx := makeContext("lo-LA"); !ctx.Unspaced {
		t.Errorf("expected Lao to be written without spaces")
	}
	if ctx := makeContext("de-DE"); ctx.Unspaced {
		t.Errorf("expected German to be written with spaces")
	}
}

func TestFromEnvironment(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	t.Setenv("LC_ALL", "th_TH.UTF-8")
	t.Setenv("LANG", "th_TH.UTF-8")
	ctx := ContextFromEnvironment()
	if ctx.Locale != "th-TH" {
		t.Skipf("locale detection not available on this platform: %s", ctx.Locale)
	}
	if !ctx.Unspaced {
		t.Errorf("expected detected Thai locale to be unspaced")
	}
}

package i18n

import (
	"fmt"
	"testing"

	i18ncatalog "github.com/louisbranch/arithbind/internal/platform/i18n/catalog"
)

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if fallback.Locale() != "en-US" {
		t.Fatalf("fallback locale = %q, want en-US", fallback.Locale())
	}
}

func TestGetCatalogLocalized(t *testing.T) {
	cat := GetCatalog("nb-NO")
	if cat.Locale() != "nb-NO" {
		t.Fatalf("locale = %q, want nb-NO", cat.Locale())
	}
	got := cat.Format("FUNCTION_NOT_FOUND", map[string]string{"Module": "pycpp_build", "Function": "mul"})
	if got != "Modulen pycpp_build har ingen funksjon mul" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[string]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if cat.Format("code", map[string]string{"Name": "add"}) != "hello add" {
		t.Fatal("expected cached template to render metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[string]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[string]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestGetCatalogMatchesLocaleVariants(t *testing.T) {
	for _, locale := range []string{"nb", "nb_NO.UTF-8", " nb-NO "} {
		cat := GetCatalog(locale)
		if cat.Locale() != "nb-NO" {
			t.Fatalf("GetCatalog(%q) locale = %q, want nb-NO", locale, cat.Locale())
		}
		got := cat.Format("MODULE_NOT_FOUND", map[string]string{"Module": "m"})
		if got != "Modulen m er ikke registrert" {
			t.Fatalf("GetCatalog(%q) message = %q", locale, got)
		}
	}
}

func TestGetCatalogCacheBoundedByBundleLocales(t *testing.T) {
	for n := 0; n < 1000; n++ {
		GetCatalog(fmt.Sprintf("xx-%d", n))
		GetCatalog(fmt.Sprintf("en_US.%d", n))
	}
	catalogsMu.RLock()
	size := len(catalogs)
	catalogsMu.RUnlock()
	if limit := len(i18ncatalog.Default().Locales()); size > limit {
		t.Fatalf("cached catalogs = %d, want at most %d", size, limit)
	}
}

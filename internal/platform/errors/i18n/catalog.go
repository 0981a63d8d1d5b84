// Package i18n renders user-facing error messages from the "errors" catalog
// namespace.
package i18n

import (
	"bytes"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/arithbind/internal/platform/i18n/catalog"
)

// Namespace is the catalog namespace holding error templates.
const Namespace = "errors"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale    string
	messages  map[string]string
	templates sync.Map // code -> *template.Template
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for the bundle locale closest to locale,
// falling back to the base locale when that locale has no error messages.
// Catalogs are cached by matched locale only.
func GetCatalog(locale string) *Catalog {
	matched := i18ncatalog.Default().Match(locale).String()

	catalogsMu.RLock()
	cached, ok := catalogs[matched]
	catalogsMu.RUnlock()
	if ok {
		return cached
	}

	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(matched, Namespace)

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	built, ok := catalogs[resolved]
	if !ok {
		built = NewCatalog(resolved, messages)
		catalogs[resolved] = built
	}
	catalogs[matched] = built
	return built
}

// NewCatalog creates a catalog with the given locale and code templates.
func NewCatalog(locale string, messages map[string]string) *Catalog {
	cloned := make(map[string]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template for code with metadata.
// Unknown codes render as the code itself; broken templates render verbatim.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	raw, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	var tmpl *template.Template
	if cached, ok := c.templates.Load(code); ok {
		tmpl = cached.(*template.Template)
	} else {
		parsed, err := template.New(code).Parse(raw)
		if err != nil {
			return raw
		}
		c.templates.Store(code, parsed)
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}

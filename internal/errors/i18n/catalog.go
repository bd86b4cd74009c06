package i18n

import "strings"

// Catalog holds locale-specific error message templates.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's locale code.
func (c *Catalog) Locale() string {
	if c == nil {
		return "en-US"
	}
	return c.locale
}

// Format renders the message template for code, substituting {{.Key}}
// placeholders from metadata. Unknown codes fall back to the code itself.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	if c == nil {
		return code
	}
	tmpl, ok := c.messages[Code(code)]
	if !ok {
		return code
	}
	for key, value := range metadata {
		tmpl = strings.ReplaceAll(tmpl, "{{."+key+"}}", value)
	}
	return tmpl
}

var catalogs = map[string]*Catalog{
	"en-US": enUSCatalog,
}

// GetCatalog returns the catalog for locale, falling back to en-US.
func GetCatalog(locale string) *Catalog {
	if catalog, ok := catalogs[locale]; ok {
		return catalog
	}
	return enUSCatalog
}

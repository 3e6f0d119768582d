package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/kbukum/polyglot/errors"
)

//go:embed languages.json
var defaultLanguages []byte

// Direction is the writing direction of a script.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Language is one catalog entry. Code is the translator's code for it.
type Language struct {
	Code       string       `json:"-"`
	Name       string       `json:"name"`
	NativeName string       `json:"nativeName"`
	Dir        Direction    `json:"dir"`
	Tag        language.Tag `json:"-"`
}

// Catalog is an immutable code to language map.
type Catalog struct {
	byCode  map[string]Language
	byLower map[string]string
	sorted  []Language
}

// Config selects the catalog source.
type Config struct {
	// Path overrides the embedded catalog with a JSON file.
	Path string `yaml:"path" mapstructure:"path"`
}

// Open loads the catalog named by cfg, or the embedded one when Path is empty.
func Open(cfg Config) (*Catalog, error) {
	if cfg.Path == "" {
		return Default()
	}
	return Load(cfg.Path)
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultLanguages)
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a catalog from r.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes the {code: {name, nativeName, dir}} document. Every code
// must parse as a BCP 47 tag and every entry needs a name.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Language
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		byCode:  make(map[string]Language, len(raw)),
		byLower: make(map[string]string, len(raw)),
		sorted:  make([]Language, 0, len(raw)),
	}
	for code, lang := range raw {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("catalog code %q: %w", code, err)
		}
		if strings.TrimSpace(lang.Name) == "" {
			return nil, fmt.Errorf("catalog code %q: missing name", code)
		}
		if lang.Dir == "" {
			lang.Dir = LTR
		}
		lang.Code, lang.Tag = code, tag
		c.byCode[code] = lang
		c.byLower[strings.ToLower(code)] = code
		c.sorted = append(c.sorted, lang)
	}
	sort.Slice(c.sorted, func(i, j int) bool {
		if c.sorted[i].Name != c.sorted[j].Name {
			return c.sorted[i].Name < c.sorted[j].Name
		}
		return c.sorted[i].Code < c.sorted[j].Code
	})
	return c, nil
}

// Lookup finds a language by exact code, then case-insensitively.
func (c *Catalog) Lookup(code string) (Language, bool) {
	if lang, ok := c.byCode[code]; ok {
		return lang, true
	}
	if canonical, ok := c.byLower[strings.ToLower(strings.TrimSpace(code))]; ok {
		return c.byCode[canonical], true
	}
	return Language{}, false
}

// Resolve is Lookup returning an INVALID_LANGUAGE error on a miss.
func (c *Catalog) Resolve(code string) (Language, error) {
	lang, ok := c.Lookup(code)
	if !ok {
		return Language{}, errors.InvalidLanguage(code)
	}
	return lang, nil
}

// Has reports whether code is in the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Name returns the display name for code, or code itself when unknown.
func (c *Catalog) Name(code string) string {
	if lang, ok := c.Lookup(code); ok {
		return lang.Name
	}
	return code
}

// Languages returns all entries sorted by display name.
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Len returns the number of languages.
func (c *Catalog) Len() int {
	return len(c.byCode)
}

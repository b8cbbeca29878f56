package palette

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
)

// Family identifies a family of built-in colour schemes.
type Family string

const (
	// Base16 schemes define 16 colours.
	Base16 Family = "base16"

	// Base24 schemes define 24 colours.
	Base24 Family = "base24"
)

var (
	// ErrSchemeNotFound is returned when no built-in scheme has the requested name.
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrUnknownFamily is returned for families other than Base16 and Base24.
	ErrUnknownFamily = errors.New("unknown scheme family")
)

// Families returns all scheme families in a stable order.
func Families() []Family {
	return []Family{Base16, Base24}
}

// ParseFamily resolves a family name such as "base16", ignoring case.
func ParseFamily(name string) (Family, error) {
	for _, f := range Families() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid families: base16, base24)", ErrUnknownFamily, name)
}

// Size returns the number of colours every scheme of the family defines.
func (f Family) Size() int {
	switch f {
	case Base16:
		return 16
	case Base24:
		return 24
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (f Family) String() string {
	return string(f)
}

// Scheme JSON files are generated offline from the tinted-theming scheme
// sources, one file per scheme named after it.
//
//go:embed schemes/base16/*.json schemes/base24/*.json
var schemeFS embed.FS

// registry holds the decoded built-in schemes. It is built once and only
// read afterwards.
type registry struct {
	names   map[Family][]string
	schemes map[Family]map[string]*Palette
}

var loadRegistry = sync.OnceValues(func() (*registry, error) {
	return buildRegistry(schemeFS)
})

func buildRegistry(fsys fs.FS) (*registry, error) {
	reg := &registry{
		names:   make(map[Family][]string),
		schemes: make(map[Family]map[string]*Palette),
	}

	for _, family := range Families() {
		dir := path.Join("schemes", string(family))
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schemes: %w", family, err)
		}

		reg.schemes[family] = make(map[string]*Palette, len(entries))
		for _, entry := range entries {
			name, ok := strings.CutSuffix(entry.Name(), ".json")
			if entry.IsDir() || !ok {
				continue
			}

			data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("failed to read scheme %s/%s: %w", family, name, err)
			}

			parsed, err := Parse(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse scheme %s/%s: %w", family, name, err)
			}
			if parsed.Len() != family.Size() {
				return nil, fmt.Errorf("scheme %s/%s has %d colours, want %d", family, name, parsed.Len(), family.Size())
			}

			reg.schemes[family][name] = &Palette{
				id:     string(family) + "/" + name,
				colors: parsed.colors,
			}
			reg.names[family] = append(reg.names[family], name)
		}

		slices.Sort(reg.names[family])
	}

	return reg, nil
}

// Builtin returns the built-in scheme with the exact (case-sensitive) name.
// The palette ID is "<family>/<name>".
func Builtin(family Family, name string) (*Palette, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	schemes, ok := reg.schemes[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}

	p, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrSchemeNotFound, family, name)
	}
	return p, nil
}

// BuiltinNames returns the names of all schemes in the family, sorted
// lexicographically. Unknown families yield nil.
func BuiltinNames(family Family) []string {
	reg, err := loadRegistry()
	if err != nil {
		return nil
	}
	return slices.Clone(reg.names[family])
}

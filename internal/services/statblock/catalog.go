package statblock

import (
	_ "embed"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

//go:embed miniatures.yaml
var defaultCatalog []byte

// Catalog is an indexed, read-only set of stat blocks
type Catalog struct {
	byID map[string]*miniature.StatBlock
	ids  []string
}

type catalogFile struct {
	Miniatures []*miniature.StatBlock `yaml:"miniatures"`
}

// DefaultCatalog returns the catalog shipped with the binary
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalogFile reads a YAML catalog from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadCatalog(f)
}

// LoadCatalog decodes a YAML catalog from r
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog")
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML catalog bytes. Every stat block must have a
// unique id and weapon references are checked later, when the block is served.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}

	c := &Catalog{byID: make(map[string]*miniature.StatBlock, len(file.Miniatures))}
	for i, sb := range file.Miniatures {
		if sb == nil || sb.ID == "" {
			return nil, errors.InvalidArgumentf("catalog entry %d has no id", i)
		}
		if _, exists := c.byID[sb.ID]; exists {
			return nil, errors.InvalidArgumentf("duplicate catalog id %s", sb.ID)
		}
		if len(sb.Weapons) == 0 {
			if err := sb.Validate(); err != nil {
				return nil, errors.Wrapf(err, "catalog entry %s", sb.ID)
			}
		}
		c.byID[sb.ID] = sb
		c.ids = append(c.ids, sb.ID)
	}
	sort.Strings(c.ids)

	return c, nil
}

// Len returns the number of stat blocks in the catalog
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Get returns a copy of the stat block with the given id
func (c *Catalog) Get(id string) (*miniature.StatBlock, bool) {
	sb, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return sb.Clone(), true
}

// All returns copies of every stat block ordered by id
func (c *Catalog) All() []*miniature.StatBlock {
	out := make([]*miniature.StatBlock, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

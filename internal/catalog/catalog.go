// Package catalog holds the static retreat price list. It is loaded once at
// startup and never mutated; tests build their own with New.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("retreat not found in catalog")
	ErrInvalid  = errors.New("invalid catalog")
)

//go:embed retreats.yaml
var defaultCatalogYAML []byte

// KeySeparator joins a retreat name and an accommodation variant into a price key.
const KeySeparator = " - "

type Accommodation struct {
	Name         string `yaml:"name"`
	FullPrice    int64  `yaml:"full_price"`
	DepositPrice int64  `yaml:"deposit_price"`
}

type Retreat struct {
	Name                  string          `yaml:"name"`
	Aliases               []string        `yaml:"aliases"`
	Currency              string          `yaml:"currency"`
	FullPrice             int64           `yaml:"full_price"`
	DepositPrice          int64           `yaml:"deposit_price"`
	MaxCapacity           int             `yaml:"max_capacity"`
	RequiresAccommodation bool            `yaml:"requires_accommodation"`
	Dates                 string          `yaml:"dates"`
	Accommodations        []Accommodation `yaml:"accommodations"`
}

type Price struct {
	Key          string
	FullPrice    int64
	DepositPrice int64
	Currency     string
}

func (p Price) RemainingBalance() int64 {
	return p.FullPrice - p.DepositPrice
}

type Catalog struct {
	retreats []Retreat
	byName   map[string]int
	prices   map[string]Price
}

type catalogFile struct {
	Retreats []Retreat `yaml:"retreats"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return New(file.Retreats)
}

func New(retreats []Retreat) (*Catalog, error) {
	c := &Catalog{
		retreats: make([]Retreat, 0, len(retreats)),
		byName:   make(map[string]int),
		prices:   make(map[string]Price),
	}

	for _, r := range retreats {
		r.Name = strings.TrimSpace(r.Name)
		r.Currency = strings.ToLower(strings.TrimSpace(r.Currency))
		if r.Name == "" {
			return nil, fmt.Errorf("%w: retreat name is required", ErrInvalid)
		}
		if r.Currency == "" {
			return nil, fmt.Errorf("%w: %s: currency is required", ErrInvalid, r.Name)
		}
		if r.MaxCapacity < 0 {
			return nil, fmt.Errorf("%w: %s: max_capacity must not be negative", ErrInvalid, r.Name)
		}

		idx := len(c.retreats)
		for _, name := range append([]string{r.Name}, r.Aliases...) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, exists := c.byName[name]; exists {
				return nil, fmt.Errorf("%w: duplicate retreat name %q", ErrInvalid, name)
			}
			c.byName[name] = idx
		}

		if r.FullPrice != 0 || r.DepositPrice != 0 {
			if err := c.addPrice(r.Name, r.FullPrice, r.DepositPrice, r.Currency); err != nil {
				return nil, err
			}
		}
		for _, acc := range r.Accommodations {
			accName := strings.TrimSpace(acc.Name)
			if accName == "" {
				return nil, fmt.Errorf("%w: %s: accommodation name is required", ErrInvalid, r.Name)
			}
			if err := c.addPrice(r.Name+KeySeparator+accName, acc.FullPrice, acc.DepositPrice, r.Currency); err != nil {
				return nil, err
			}
		}
		if _, ok := c.prices[r.Name]; !ok && len(r.Accommodations) == 0 {
			return nil, fmt.Errorf("%w: %s: no price configured", ErrInvalid, r.Name)
		}

		c.retreats = append(c.retreats, r)
	}

	return c, nil
}

func (c *Catalog) addPrice(key string, full, deposit int64, currency string) error {
	if full <= 0 || deposit <= 0 {
		return fmt.Errorf("%w: %s: prices must be greater than 0", ErrInvalid, key)
	}
	if deposit > full {
		return fmt.Errorf("%w: %s: deposit exceeds full price", ErrInvalid, key)
	}
	if _, exists := c.prices[key]; exists {
		return fmt.Errorf("%w: duplicate price key %q", ErrInvalid, key)
	}
	c.prices[key] = Price{Key: key, FullPrice: full, DepositPrice: deposit, Currency: currency}
	return nil
}

// Lookup returns the price stored under an exact key.
func (c *Catalog) Lookup(key string) (Price, error) {
	if p, ok := c.prices[strings.TrimSpace(key)]; ok {
		return p, nil
	}
	return Price{}, ErrNotFound
}

// ResolvePrice prefers "<retreat> - <variant>" and falls back to the bare
// retreat key. A blank variant is treated as absent.
func (c *Catalog) ResolvePrice(retreat, variant string) (Price, error) {
	name := c.Canonical(retreat)
	if name == "" {
		return Price{}, ErrNotFound
	}
	if v := strings.TrimSpace(variant); v != "" {
		if p, ok := c.prices[name+KeySeparator+v]; ok {
			return p, nil
		}
	}
	return c.Lookup(name)
}

// Canonical maps a display alias to the retreat's canonical name. Unknown
// names are returned trimmed but otherwise unchanged.
func (c *Catalog) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if idx, ok := c.byName[name]; ok {
		return c.retreats[idx].Name
	}
	return name
}

// BookingNames lists every retreat_name a stored booking for this retreat
// may carry.
func (c *Catalog) BookingNames(name string) []string {
	name = strings.TrimSpace(name)
	names := []string{name}
	if r, ok := c.Retreat(name); ok {
		names = append(names, r.Name)
		names = append(names, r.Aliases...)
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (c *Catalog) Retreat(name string) (Retreat, bool) {
	idx, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return Retreat{}, false
	}
	return c.retreats[idx], true
}

func (c *Catalog) Retreats() []Retreat {
	out := make([]Retreat, len(c.retreats))
	copy(out, c.retreats)
	return out
}

func (c *Catalog) RequiresAccommodation(name string) bool {
	r, ok := c.Retreat(name)
	return ok && r.RequiresAccommodation
}

func (c *Catalog) Dates(name string) string {
	r, _ := c.Retreat(name)
	return r.Dates
}

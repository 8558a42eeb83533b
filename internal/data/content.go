package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embeddedContent []byte

// Content holds every static table the simulation consumes.
// Slices keep file order so that seeded random picks stay reproducible.
type Content struct {
	Player    Player     `yaml:"player"`
	Classes   []*Class   `yaml:"classes"`
	Abilities []*Ability `yaml:"abilities"`
	Biomes    []*Biome   `yaml:"biomes"`
	Items     []*Item    `yaml:"items"`

	classes   map[ClassID]*Class
	abilities map[string]*Ability
	biomes    map[string]*Biome
	items     map[string]*Item
}

// LoadContent parses the content tables compiled into the binary.
func LoadContent() (*Content, error) {
	return ParseContent(embeddedContent)
}

// LoadContentFile parses content tables from a YAML file.
func LoadContentFile(path string) (*Content, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	c, err := ParseContent(raw)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// ParseContent decodes and indexes raw YAML content.
func ParseContent(raw []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}

	slog.Debug("loaded content",
		"classes", len(c.Classes),
		"abilities", len(c.Abilities),
		"biomes", len(c.Biomes),
		"items", len(c.Items))
	return &c, nil
}

func (c *Content) index() error {
	c.classes = make(map[ClassID]*Class, len(c.Classes))
	c.abilities = make(map[string]*Ability, len(c.Abilities))
	c.biomes = make(map[string]*Biome, len(c.Biomes))
	c.items = make(map[string]*Item, len(c.Items))

	for _, a := range c.Abilities {
		if _, dup := c.abilities[a.ID]; dup {
			return fmt.Errorf("duplicate ability %q", a.ID)
		}
		c.abilities[a.ID] = a
	}
	for _, cl := range c.Classes {
		if _, dup := c.classes[cl.ID]; dup {
			return fmt.Errorf("duplicate class %q", cl.ID)
		}
		c.classes[cl.ID] = cl
	}
	for _, b := range c.Biomes {
		c.biomes[b.ID] = b
	}
	for _, it := range c.Items {
		c.items[it.Name] = it
	}
	return c.Validate()
}

// Validate checks cross references between tables.
func (c *Content) Validate() error {
	var errs []error
	if len(c.Classes) == 0 {
		errs = append(errs, errors.New("no classes defined"))
	}
	for _, cl := range c.Classes {
		for _, id := range cl.Abilities {
			if _, ok := c.abilities[id]; !ok {
				errs = append(errs, fmt.Errorf("class %q references unknown ability %q", cl.ID, id))
			}
		}
	}
	for _, b := range c.Biomes {
		if len(b.Enemies) == 0 {
			errs = append(errs, fmt.Errorf("biome %q has no enemies", b.ID))
		}
	}
	return errors.Join(errs...)
}

// Class returns the class template by id.
func (c *Content) Class(id ClassID) (*Class, bool) {
	cl, ok := c.classes[id]
	return cl, ok
}

// Ability returns the ability template by id.
func (c *Content) Ability(id string) (*Ability, bool) {
	a, ok := c.abilities[id]
	return a, ok
}

// AbilitiesOf resolves the ability list of a class in declaration order.
func (c *Content) AbilitiesOf(cl *Class) []*Ability {
	out := make([]*Ability, 0, len(cl.Abilities))
	for _, id := range cl.Abilities {
		if a, ok := c.abilities[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Biome returns the biome by id.
func (c *Content) Biome(id string) (*Biome, bool) {
	b, ok := c.biomes[id]
	return b, ok
}

// Item returns the item by name.
func (c *Content) Item(name string) (*Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

// Equip builds an Equipment set from item names. Unknown names are an error.
func (c *Content) Equip(names ...string) (Equipment, error) {
	eq := make(Equipment, len(names))
	for _, n := range names {
		it, ok := c.items[n]
		if !ok {
			return nil, fmt.Errorf("unknown item %q", n)
		}
		eq[it.Slot()] = it
	}
	return eq, nil
}

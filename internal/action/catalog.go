package action

import (
	"github.com/rs/zerolog"
)

// Group is the capability interface an action-group collaborator
// implements. Name qualifies the identifiers of its definitions
// ("Volume" + "Increase" -> "Volume:Increase"); an empty name leaves
// them unqualified.
type Group interface {
	Name() string
	Definitions() []Definition
}

// Catalog indexes action definitions discovered from groups at startup.
// The set is static after construction.
type Catalog struct {
	log   zerolog.Logger
	defs  []*Definition
	index map[string]*Definition
}

// NewCatalog discovers every group's definitions once. On identifier
// collision the first definition wins and the duplicate is rejected
// with a warning.
func NewCatalog(log zerolog.Logger, groups ...Group) *Catalog {
	c := &Catalog{
		log:   log.With().Str("component", "actions").Logger(),
		index: make(map[string]*Definition),
	}
	for _, g := range groups {
		for _, def := range g.Definitions() {
			def := def
			if def.Name == "" || def.Invoke == nil {
				c.log.Warn().Str("group", g.Name()).Msg("Skipping incomplete action definition")
				continue
			}
			def.Identifier = qualify(g.Name(), def.Name)
			if _, exists := c.index[def.Identifier]; exists {
				c.log.Warn().Str("identifier", def.Identifier).Msg("Duplicate action identifier, keeping first")
				continue
			}
			c.index[def.Identifier] = &def
			c.defs = append(c.defs, &def)
		}
	}
	return c
}

func qualify(group, name string) string {
	if group == "" {
		return name
	}
	return group + ":" + name
}

// Definition looks up a definition by exact identifier.
func (c *Catalog) Definition(identifier string) (*Definition, bool) {
	def, ok := c.index[identifier]
	return def, ok
}

// Definitions returns every indexed definition in discovery order.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// NewInstance builds an instance whose settings are entirely the
// schema defaults.
func (c *Catalog) NewInstance(def *Definition) *Instance {
	return c.MergeInstance(def, nil)
}

// MergeInstance builds an instance from supplied settings merged over
// the schema. For each schema field in order: a supplied setting with
// the exact same name and a matching kind wins; a mismatched kind falls
// back to the default with a warning; a missing one uses the default.
// Supplied settings without a schema entry are dropped. The result is
// always exactly the schema's length and order.
func (c *Catalog) MergeInstance(def *Definition, supplied []Setting) *Instance {
	settings := make([]Setting, len(def.Schema))
	for i, f := range def.Schema {
		settings[i] = Setting{Name: f.Name, Value: f.Default}
		sup, ok := findSetting(supplied, f.Name)
		if !ok {
			continue
		}
		v, ok := f.accept(sup.Value)
		if !ok {
			c.log.Warn().
				Str("action", def.Identifier).
				Str("setting", f.Name).
				Str("want", f.Kind.String()).
				Str("got", sup.Value.Kind().String()).
				Msg("Setting type mismatch, using schema default")
			continue
		}
		settings[i].Value = v
	}
	return &Instance{def: def, settings: settings}
}

// findSetting returns the first supplied setting named name.
func findSetting(supplied []Setting, name string) (Setting, bool) {
	for _, s := range supplied {
		if s.Name == name {
			return s, true
		}
	}
	return Setting{}, false
}

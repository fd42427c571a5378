package syntax

// Registry is the flat, closed-set table of language definitions
// (spec.md §9: "a sum type over a fixed language set... keep the set
// closed and avoid runtime plugin loading"). It mirrors the teacher's
// flat name->factory registration idiom (registry/registry.go) but maps
// straight to Definition values rather than constructors, since lexers
// are stateless pure functions.
type Registry struct {
	defs []*Definition
}

// NewRegistry builds the registry with every built-in language
// definition registered.
func NewRegistry() *Registry {
	r := &Registry{}
	r.register(cDefinition())
	r.register(pythonDefinition())
	r.register(javaDefinition())
	r.register(jsonDefinition())
	r.register(xmlDefinition())
	r.register(makeDefinition())
	r.register(diffDefinition())
	r.register(rustDefinition())
	r.register(bashDefinition())
	r.register(markdownDefinition(r))
	return r
}

func (r *Registry) register(d *Definition) { r.defs = append(r.defs, d) }

// All returns every registered definition, in registration order.
func (r *Registry) All() []*Definition { return r.defs }

// ByName finds a definition by exact name (e.g. "c", "python"), or nil.
func (r *Registry) ByName(name string) *Definition {
	for _, d := range r.defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// ByExtension finds the first definition claiming the given file
// extension (without the leading dot, lowercase), or nil.
func (r *Registry) ByExtension(ext string) *Definition {
	for _, d := range r.defs {
		for _, e := range d.Extensions {
			if e == ext {
				return d
			}
		}
	}
	return nil
}

// nestBases gives the disjoint state-offset each language occupies when
// composed under Markdown's fenced-code trampoline (spec.md §9's exact
// table), keyed by language name.
var nestBases = map[string]int{
	"c":      2,
	"python": 5,
	"java":   8,
	"json":   10,
	"xml":    11,
	"make":   16,
	"diff":   17,
	"rust":   18,
}

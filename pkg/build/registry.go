package build

import "sort"

// Step is one named, atomic unit of build work.
type Step interface {
	Name() string
	Run(info *Info) error
}

// Registry maps step names to implementations. A miss is not an error at
// lookup time; the runner turns it into an InvalidStep result when it tries
// to execute the name.
type Registry struct {
	steps map[string]Step
}

// NewRegistry creates a registry holding the given steps.
func NewRegistry(steps ...Step) *Registry {
	r := &Registry{steps: make(map[string]Step, len(steps))}
	for _, s := range steps {
		r.Register(s)
	}
	return r
}

// Register adds a step, replacing any previous step of the same name.
func (r *Registry) Register(s Step) {
	r.steps[s.Name()] = s
}

// Lookup returns the step registered under name, if any.
func (r *Registry) Lookup(name string) (Step, bool) {
	s, ok := r.steps[name]
	return s, ok
}

// Names lists the registered step names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

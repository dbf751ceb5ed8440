package rules

import (
	"fmt"
	"sync"

	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// Registry holds the rule catalog consumed by every scan surface. It is the
// single source of severity and message text for each rule id, so two
// renderings of the same rule can never disagree.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Default creates a registry pre-loaded with the built-in catalog.
func Default() (*Registry, error) {
	r := NewRegistry()
	for _, rule := range Builtin() {
		if err := r.Register(rule); err != nil {
			return nil, fmt.Errorf("registering builtin catalog: %w", err)
		}
	}
	return r, nil
}

// Register validates, compiles, and adds a rule to the registry.
func (r *Registry) Register(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.ID]; exists {
		return fmt.Errorf("rule %q already registered", rule.ID)
	}
	r.rules[rule.ID] = rule
	r.order = append(r.order, rule.ID)
	return nil
}

// Get returns a registered rule by id.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, exists := r.rules[id]
	return rule, exists
}

// All returns every rule in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// ForCategory returns the rules belonging to one category, in registration
// order. This is the subset a category agent evaluates.
func (r *Registry) ForCategory(c types.Category) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, id := range r.order {
		if rule := r.rules[id]; rule.Category == c {
			out = append(out, rule)
		}
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

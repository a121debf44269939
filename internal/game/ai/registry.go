package ai

import (
	"fmt"
	"maps"
	"slices"
)

// Registry holds one Planner per loaded domain, keyed by domain ID.
type Registry struct {
	planners map[string]*Planner
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{planners: make(map[string]*Planner)}
}

// Register validates domain and stores a Planner for it whose preconditions
// run in scope.
//
// Postcondition: an invalid domain or a reused domain ID is rejected and the
// registry is unchanged.
func (r *Registry) Register(domain *Domain, caller ScriptCaller, scope string) error {
	if err := domain.Validate(); err != nil {
		return err
	}
	if _, dup := r.planners[domain.ID]; dup {
		return fmt.Errorf("ai.Registry: domain %q already registered", domain.ID)
	}
	r.planners[domain.ID] = NewPlanner(domain, caller, scope)
	return nil
}

// PlannerFor looks up the Planner for domainID.
func (r *Registry) PlannerFor(domainID string) (*Planner, bool) {
	p, ok := r.planners[domainID]
	return p, ok
}

// DomainIDs lists the registered domains, sorted.
func (r *Registry) DomainIDs() []string {
	return slices.Sorted(maps.Keys(r.planners))
}

package validation

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
)

// Overlay is the per-operation registry layered over the schema registry.
// It holds the variable and fragment descriptors the validator mints and
// lives for a single validation/execution session.
type Overlay struct {
	local *schema.Registry
	base  *schema.Registry

	Vars  map[string]schema.Spec
	Frags map[string]schema.Spec
}

func newOverlay(base *schema.Registry) *Overlay {
	return &Overlay{
		local: schema.NewRegistry(),
		base:  base,
		Vars:  make(map[string]schema.Spec),
		Frags: make(map[string]schema.Spec),
	}
}

// Local exposes the overlay-scoped registry descriptors are minted into.
func (o *Overlay) Local() *schema.Registry {
	return o.local
}

// Get looks a spec up in the overlay first, then the schema registry.
func (o *Overlay) Get(s schema.Spec) (*schema.Descriptor, bool) {
	if d, ok := o.local.Get(s); ok {
		return d, true
	}
	return o.base.Get(s)
}

// Resolve follows alias descriptors across both layers until a direct
// descriptor is reached.
func (o *Overlay) Resolve(s schema.Spec) (*schema.Descriptor, *errors.GraphQLError) {
	seen := map[schema.Spec]bool{}
	for {
		if seen[s] {
			return nil, errors.New("Alias cycle at spec %q.", s)
		}
		seen[s] = true
		d, ok := o.Get(s)
		if !ok {
			return nil, errors.New("Unknown spec %q.", s)
		}
		if d.Kind != schema.Alias {
			return d, nil
		}
		s = d.Aliased
	}
}

// Base resolves s and unwraps list and non-null levels down to the named
// base descriptor.
func (o *Overlay) Base(s schema.Spec) (*schema.Descriptor, *errors.GraphQLError) {
	for {
		d, err := o.Resolve(s)
		if err != nil {
			return nil, err
		}
		if d.Kind != schema.List && d.Kind != schema.NonNull {
			return d, nil
		}
		s = d.Inner
	}
}

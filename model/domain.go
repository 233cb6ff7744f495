package model

// Domain classifies what kind of artefact a specification produces. The
// planner uses it to select default performance and domain requirements.
type Domain string

const (
	DomainUI            Domain = "UI"
	DomainCode          Domain = "CODE"
	DomainDocumentation Domain = "DOCUMENTATION"
	DomainGeneric       Domain = "GENERIC"
)

// DomainDefaults bundles the requirement lists keyed by domain. Kept as a
// static table rather than branching logic so that adding a domain does not
// touch control flow.
type DomainDefaults struct {
	Performance  []string `json:"performance,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

var domainDefaults = map[Domain]DomainDefaults{
	DomainUI: {
		Performance: []string{
			"rendering stays responsive under realistic content volume",
			"interaction latency remains imperceptible",
		},
		Requirements: []string{
			"meets accessibility guidelines",
			"works across current mainstream browsers",
			"layout adapts to small and large viewports",
		},
	},
	DomainCode: {
		Performance: []string{
			"algorithmic complexity appropriate for expected input size",
			"memory footprint bounded and documented",
		},
		Requirements: []string{
			"maintainable structure with clear separation of concerns",
			"public surface documented",
			"covered by automated tests",
		},
	},
	DomainDocumentation: {
		Performance: []string{
			"efficient to navigate and scan",
		},
		Requirements: []string{
			"clear hierarchical structure",
			"includes worked examples",
			"searchable headings and terminology",
		},
	},
	DomainGeneric: {
		Performance: []string{
			"efficient use of resources for the task at hand",
		},
		Requirements: []string{
			"follows established best practices for the output format",
		},
	},
}

// DefaultsFor returns the requirement defaults for a domain, falling back to
// the generic entry for unknown domains.
func DefaultsFor(domain Domain) DomainDefaults {
	if defaults, ok := domainDefaults[domain]; ok {
		return defaults
	}
	return domainDefaults[DomainGeneric]
}

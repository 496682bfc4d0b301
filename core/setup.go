package core

// InstanceSetup configures a single parallel tree instance. Setups are
// author-supplied and immutable once read by the registry.
type InstanceSetup struct {
	// ID identifies the instance for lookup and removal. It may be empty
	// (a generated display name is used for diagnostics) and is not
	// required to be unique; single-target operations act on the first
	// match in insertion order while bulk removal acts on every match.
	ID string

	// Definition references the tree to run. It may be nil when the
	// reference did not resolve, in which case adding the instance fails.
	Definition *TreeDefinition
}

// Package fields defines the ordered field registry that drives generated
// create/update forms. A registry maps unique field names to descriptors
// (type, label, view namespace, arbitrary attributes) and preserves insertion
// order, which is user visible in rendered output. Registries are scoped per
// operation (create, update) and live for a single request; see pkg/panel for
// the per-operation wiring.
package fields

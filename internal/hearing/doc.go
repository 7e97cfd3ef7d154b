// Package hearing holds the hearing record model, the loader that turns a
// tabular source into a working set and the filter pipeline that narrows and
// orders it.
//
// Everything here is pure: a Dataset is built once per load and never
// mutated, and Apply returns a fresh slice for every call.
package hearing

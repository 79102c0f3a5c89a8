// Package form models the schema-driven provider editing surface.
//
// A Form is built from a provider entry plus the field schema for its
// type. The provider type itself appears as the first row so it hashes
// and navigates like any other field. Content hashing backs the save
// gate: a dirty form can only be saved after its exact current content
// passed a provider test.
package form

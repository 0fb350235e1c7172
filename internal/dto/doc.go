// Package dto defines the JSON contracts of the HTTP API.
//
// Inputs are bound by gin and validated through binding tags. Outputs are
// projections of entities: passwords never appear, and loans and favorites
// embed their book only when it was loaded.
package dto

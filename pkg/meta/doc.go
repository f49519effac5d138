// Package meta defines the raw database-introspection descriptors consumed
// by the normalizer.
//
// Descriptors mirror the declared output shape of the external extraction
// scripts (one JSON payload per introspection run). They are pre-normalized
// data: possibly duplicated, unordered, and with optional attributes simply
// absent. Package normalize turns them into the model types.
//
// [NormalizeSchema] is the single definition of the canonical absent-schema
// sentinel; every place that compares schema names goes through it.
package meta

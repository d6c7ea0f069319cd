// Package compose implements the resolution engine: given a resolved
// generator, an activation context, known providers and a target type, it
// recursively builds the expression implementing the generator for that
// type plus any auxiliary top-level declarations needed for recursion.
//
// Composition is a pure, synchronous tree transformation. Failures are
// fail-fast diagnostics from the diagnostic package; there is no partial
// success. Independent Generate calls may run concurrently: the registry
// and activation context are read-only, and all mutable state lives in a
// per-call run.
package compose

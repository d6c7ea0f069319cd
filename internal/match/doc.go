// Package match provides name-similarity ranking used to decorate
// "no matching resolver" diagnostics with nearest registered type names.
package match

// Package expr defines the in-memory expression and declaration trees the
// engine synthesizes, together with the traversal helpers the simplifier
// and composer rely on (substitution, free variables, self-reference
// detection) and a surface-syntax printer used for diagnostics and output.
package expr

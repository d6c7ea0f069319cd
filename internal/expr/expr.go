package expr

import "derive-generator/internal/typemodel"

// Expr is the closed sum of expression shapes the engine synthesizes.
type Expr interface {
	exprNode()
	String() string
}

// Ref is a reference to a top-level value, qualified by module path.
// A Ref with an empty module refers to a declaration in the module being
// generated into (auxiliary declarations reference each other this way).
type Ref struct {
	Module string
	Name   string
}

// Var is a reference to a lambda-bound variable.
type Var struct {
	Name string
}

// Lambda is an anonymous function. Composer-synthesized lambdas always use
// fresh, unique parameter names; the simplifier depends on that.
type Lambda struct {
	Params []Pattern
	Body   Expr
}

// Apply is the application of a function expression to ordered arguments.
type Apply struct {
	Fn   Expr
	Args []Expr
}

// RecordField is a single field assignment inside a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// Record is a record literal with ordered field assignments.
type Record struct {
	Fields []RecordField
}

// TupleLit is a tuple literal.
type TupleLit struct {
	Items []Expr
}

// ListLit is a list literal.
type ListLit struct {
	Items []Expr
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

func (*Ref) exprNode()       {}
func (*Var) exprNode()       {}
func (*Lambda) exprNode()    {}
func (*Apply) exprNode()     {}
func (*Record) exprNode()    {}
func (*TupleLit) exprNode()  {}
func (*ListLit) exprNode()   {}
func (*StringLit) exprNode() {}
func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}

// Pattern is the closed sum of binding patterns in lambda parameters and
// declaration arguments. Only simple binds participate in simplification.
type Pattern interface {
	patternNode()
	String() string
}

// PVar is a simple variable bind.
type PVar struct {
	Name string
}

// PAny is the wildcard pattern.
type PAny struct{}

func (*PVar) patternNode() {}
func (*PAny) patternNode() {}

// Declaration is a top-level binding: a name, declared argument patterns,
// an optional type annotation, and a body expression.
type Declaration struct {
	Name   string
	Params []Pattern
	Type   typemodel.Type // nil when no annotation is emitted
	Body   Expr
}

// NewRef builds a qualified reference.
func NewRef(module, name string) *Ref {
	return &Ref{Module: module, Name: name}
}

// Call applies fn to args. With no args it returns fn unchanged, so
// resolver fragments can apply children unconditionally.
func Call(fn Expr, args ...Expr) Expr {
	if len(args) == 0 {
		return fn
	}

	return &Apply{Fn: fn, Args: args}
}

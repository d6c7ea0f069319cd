package expr

import (
	"strconv"
	"strings"
)

func (e *Ref) String() string {
	if e.Module == "" {
		return e.Name
	}

	return e.Module + "." + e.Name
}

func (e *Var) String() string { return e.Name }

func (e *Lambda) String() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.String()
	}

	return "\\" + strings.Join(params, " ") + " -> " + e.Body.String()
}

func (e *Apply) String() string {
	parts := make([]string, 0, len(e.Args)+1)
	parts = append(parts, operandString(e.Fn, true))

	for _, arg := range e.Args {
		parts = append(parts, operandString(arg, false))
	}

	return strings.Join(parts, " ")
}

func (e *Record) String() string {
	if len(e.Fields) == 0 {
		return "{}"
	}

	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Name + " = " + f.Value.String()
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

func (e *TupleLit) String() string {
	if len(e.Items) == 0 {
		return "()"
	}

	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.String()
	}

	return "( " + strings.Join(parts, ", ") + " )"
}

func (e *ListLit) String() string {
	if len(e.Items) == 0 {
		return "[]"
	}

	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.String()
	}

	return "[ " + strings.Join(parts, ", ") + " ]"
}

func (e *StringLit) String() string { return strconv.Quote(e.Value) }
func (e *IntLit) String() string    { return strconv.FormatInt(e.Value, 10) }

func (e *FloatLit) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (p *PVar) String() string { return p.Name }
func (p *PAny) String() string { return "_" }

// operandString parenthesizes sub-expressions that would be ambiguous in
// application position. The head of an application only needs parens when
// it is itself a lambda.
func operandString(e Expr, head bool) string {
	switch e.(type) {
	case *Lambda:
		return "(" + e.String() + ")"
	case *Apply:
		if head {
			return e.String()
		}

		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// String renders a declaration with its optional annotation, in the shape
// the external pretty-printer would emit it.
func (d Declaration) String() string {
	var b strings.Builder

	if d.Type != nil {
		b.WriteString(d.Name)
		b.WriteString(" : ")
		b.WriteString(d.Type.String())
		b.WriteString("\n")
	}

	b.WriteString(d.Name)

	for _, p := range d.Params {
		b.WriteString(" ")
		b.WriteString(p.String())
	}

	b.WriteString(" = ")
	b.WriteString(d.Body.String())

	return b.String()
}

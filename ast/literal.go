package ast

// ParsedValue is the parse-time representation of a literal. It is
// deliberately distinct from value.Value (spec.md §3): a table
// constructor's entries are still unevaluated expression nodes, not
// runtime values, since table construction happens during evaluation.
type ParsedValue struct {
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Table *TableConstructor
}

// LiteralKind tags which field of ParsedValue is populated.
type LiteralKind uint8

const (
	LitNil LiteralKind = iota
	LitBool
	LitInt
	LitFloat
	LitString
	LitTable
)

// TableConstructor is the parse-time shape of `{ ... }`: an ordered array
// part (by position) and a keyed map part (`name = expr` or
// `[expr] = expr`), both still holding unevaluated ast.Node children.
type TableConstructor struct {
	Array []Node
	Map   []TableEntry
}

// TableEntry is one `key = value` pair of a table constructor's map part.
type TableEntry struct {
	Key   Node
	Value Node
}

// NilLiteral, BoolLiteral, IntLiteral, FloatLiteral, and StringLiteral
// build the corresponding ParsedValue.
func NilLiteral() ParsedValue           { return ParsedValue{Kind: LitNil} }
func BoolLiteral(b bool) ParsedValue    { return ParsedValue{Kind: LitBool, Bool: b} }
func IntLiteral(i int64) ParsedValue    { return ParsedValue{Kind: LitInt, Int: i} }
func FloatLiteral(f float64) ParsedValue { return ParsedValue{Kind: LitFloat, Float: f} }
func StringLiteral(s string) ParsedValue { return ParsedValue{Kind: LitString, Str: s} }
func TableLiteral(t *TableConstructor) ParsedValue {
	return ParsedValue{Kind: LitTable, Table: t}
}

// Package ast defines the declaration-level syntax tree consumed by the
// symbol registrar. The lexer, parser and type checker that produce these
// nodes live outside this module; this package only describes the shapes
// they hand off.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos is a position in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span is a range in a source file.
type Span struct {
	Start Pos
	End   Pos
}

// SymbolRef is the marker interface a registered symbol handle satisfies.
// It lets declaration nodes carry a back-reference to their symbol
// without this package importing the sym package (sym imports ast for
// TypeExpr, so the dependency can't run the other way).
type SymbolRef interface {
	IsSymbolRef()
}

// Expr is a placeholder for the value-level expressions the checker
// produces (initializers, default arguments). The registrar never
// inspects an Expr's shape; it only carries it through to the symbol it
// attaches to, so a single opaque node suffices here.
type Expr interface {
	Node
	exprNode()
}

// Ident is a bare name used in expression position. The registrar does
// not inspect it; Extend targets are resolved from TypeExprs (see
// ExtendDecl).
type Ident struct {
	Name string
	Pos_ Pos
}

func (i *Ident) String() string { return i.Name }
func (i *Ident) Position() Pos  { return i.Pos_ }
func (i *Ident) exprNode()      {}

// OpaqueExpr wraps any checker-produced expression this package does not
// need to understand (const initializers, field/arg defaults).
type OpaqueExpr struct {
	Desc string
	Pos_ Pos
}

func (o *OpaqueExpr) String() string { return o.Desc }
func (o *OpaqueExpr) Position() Pos  { return o.Pos_ }
func (o *OpaqueExpr) exprNode()      {}

// TypeExpr is a reference to a type as written in source, before it is
// resolved to a symbol. Most variants just name a type; NamedType and
// ResolvedType are the only ones the registrar's Extend-target resolution
// inspects directly.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is a bare identifier type reference, e.g. `Point` or `string`.
type NamedType struct {
	Name string
	Pos_ Pos
}

func (n *NamedType) String() string { return n.Name }
func (n *NamedType) Position() Pos  { return n.Pos_ }
func (n *NamedType) typeExprNode()  {}

// ResolvedType wraps a symbol handle directly, used where the registrar
// or an upstream pass already knows exactly which Type symbol a
// reference names (e.g. a synthesized destructor's `self` parameter)
// rather than spelling it out as a NamedType to be looked up again.
type ResolvedType struct {
	Sym  SymbolRef
	Pos_ Pos
}

func (r *ResolvedType) String() string { return fmt.Sprintf("%v", r.Sym) }
func (r *ResolvedType) Position() Pos  { return r.Pos_ }
func (r *ResolvedType) typeExprNode()  {}

// PtrType, RefType, OptionalType, ResultType, ArrayType, SliceType,
// TupleType and FnType mirror the IR's type shapes at the surface level;
// the registrar only stores these, it never lowers them (that's the
// emitter's job, operating on the IR's own type representation instead).
type PtrType struct {
	Elem TypeExpr
	Pos_ Pos
}

func (p *PtrType) String() string { return "*" + p.Elem.String() }
func (p *PtrType) Position() Pos  { return p.Pos_ }
func (p *PtrType) typeExprNode()  {}

type RefType struct {
	Elem TypeExpr
	Pos_ Pos
}

func (r *RefType) String() string { return "&" + r.Elem.String() }
func (r *RefType) Position() Pos  { return r.Pos_ }
func (r *RefType) typeExprNode()  {}

type OptionalType struct {
	Elem TypeExpr
	Pos_ Pos
}

func (o *OptionalType) String() string { return "?" + o.Elem.String() }
func (o *OptionalType) Position() Pos  { return o.Pos_ }
func (o *OptionalType) typeExprNode()  {}

type ResultType struct {
	Elem TypeExpr
	Pos_ Pos
}

func (r *ResultType) String() string { return "!" + r.Elem.String() }
func (r *ResultType) Position() Pos  { return r.Pos_ }
func (r *ResultType) typeExprNode()  {}

type ArrayType struct {
	Elem TypeExpr
	Size uint64
	Pos_ Pos
}

func (a *ArrayType) String() string { return fmt.Sprintf("[%d]%s", a.Size, a.Elem) }
func (a *ArrayType) Position() Pos  { return a.Pos_ }
func (a *ArrayType) typeExprNode()  {}

type SliceType struct {
	Elem TypeExpr
	Pos_ Pos
}

func (s *SliceType) String() string { return "[]" + s.Elem.String() }
func (s *SliceType) Position() Pos  { return s.Pos_ }
func (s *SliceType) typeExprNode()  {}

type TupleType struct {
	Elems []TypeExpr
	Pos_  Pos
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) Position() Pos { return t.Pos_ }
func (t *TupleType) typeExprNode() {}

type FnType struct {
	Args     []TypeExpr
	Ret      TypeExpr
	IsMethod bool
	Pos_     Pos
}

func (f *FnType) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("fn(%s) %s", strings.Join(parts, ", "), f.Ret)
}
func (f *FnType) Position() Pos { return f.Pos_ }
func (f *FnType) typeExprNode() {}

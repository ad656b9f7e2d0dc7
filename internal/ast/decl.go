package ast

import "fmt"

// Decl is the base interface for every declaration the registrar walks.
// It is a closed tagged union: only this package's own types implement
// declNode, so the type switch in register.walkDecl covers every variant
// that can ever reach it.
type Decl interface {
	Node
	declNode()
}

// Vis is a symbol's visibility.
type Vis int

const (
	Priv Vis = iota
	Pub
)

func (v Vis) String() string {
	if v == Pub {
		return "pub"
	}
	return "priv"
}

// ABI is the calling-convention marker attached to extern blocks and
// inherited by the declarations nested inside them.
type ABI int

const (
	RivetABI ABI = iota
	CABI
)

func (a ABI) String() string {
	if a == CABI {
		return "C"
	}
	return "Rivet"
}

// File is a single parsed source file, the unit walk_files iterates over.
type File struct {
	Path      string
	IsRuntime bool // structural flag: this file belongs to the runtime module
	Decls     []Decl
	Pos_      Pos
}

func (f *File) String() string { return f.Path }
func (f *File) Position() Pos  { return f.Pos_ }

// ExternBlockDecl groups declarations under one ABI.
type ExternBlockDecl struct {
	ABI   ABI
	Decls []Decl
	Pos_  Pos
}

func (e *ExternBlockDecl) String() string { return fmt.Sprintf("extern (%s) {...}", e.ABI) }
func (e *ExternBlockDecl) Position() Pos  { return e.Pos_ }
func (e *ExternBlockDecl) declNode()      {}

// ConstDecl is a module- or type-scoped constant.
type ConstDecl struct {
	Vis  Vis
	Name string
	Type TypeExpr
	Expr Expr
	Pos_ Pos
}

func (c *ConstDecl) String() string { return fmt.Sprintf("const %s", c.Name) }
func (c *ConstDecl) Position() Pos  { return c.Pos_ }
func (c *ConstDecl) declNode()      {}

// LetBinding is one left-hand-side binding of a LetDecl.
type LetBinding struct {
	Name  string
	IsMut bool
	Type  TypeExpr
	Sym   SymbolRef // populated by the registrar with the new *sym.Symbol handle
	Pos_  Pos
}

func (b *LetBinding) Position() Pos { return b.Pos_ }

// LetDecl declares one or more global variables.
type LetDecl struct {
	Vis      Vis
	IsExtern bool
	Lefts    []*LetBinding
	Pos_     Pos
}

func (l *LetDecl) String() string { return "let ..." }
func (l *LetDecl) Position() Pos  { return l.Pos_ }
func (l *LetDecl) declNode()      {}

// TypeAliasDecl declares `type Name = Parent;`.
type TypeAliasDecl struct {
	Vis    Vis
	Name   string
	Parent TypeExpr
	Pos_   Pos
}

func (t *TypeAliasDecl) String() string { return fmt.Sprintf("type %s", t.Name) }
func (t *TypeAliasDecl) Position() Pos  { return t.Pos_ }
func (t *TypeAliasDecl) declNode()      {}

// TraitDecl declares a trait and its nested method signatures.
type TraitDecl struct {
	Vis   Vis
	Name  string
	Decls []Decl
	Sym   SymbolRef
	Pos_  Pos
}

func (t *TraitDecl) String() string { return fmt.Sprintf("trait %s", t.Name) }
func (t *TraitDecl) Position() Pos  { return t.Pos_ }
func (t *TraitDecl) declNode()      {}

// ClassDecl declares a class and its nested members.
type ClassDecl struct {
	Vis   Vis
	Name  string
	Base  TypeExpr // optional
	Decls []Decl
	Sym   SymbolRef
	Pos_  Pos
}

func (c *ClassDecl) String() string { return fmt.Sprintf("class %s", c.Name) }
func (c *ClassDecl) Position() Pos  { return c.Pos_ }
func (c *ClassDecl) declNode()      {}

// StructDecl declares a struct and its nested members.
type StructDecl struct {
	Vis      Vis
	Name     string
	IsOpaque bool
	Decls    []Decl
	Sym      SymbolRef
	Pos_     Pos
}

func (s *StructDecl) String() string { return fmt.Sprintf("struct %s", s.Name) }
func (s *StructDecl) Position() Pos  { return s.Pos_ }
func (s *StructDecl) declNode()      {}

// EnumDecl declares an enum; Values holds variant names in source order
// (duplicates included — the registrar is responsible for deduping).
type EnumDecl struct {
	Vis        Vis
	Name       string
	Underlying TypeExpr
	Values     []string
	Decls      []Decl
	Sym        SymbolRef
	Pos_       Pos
}

func (e *EnumDecl) String() string { return fmt.Sprintf("enum %s", e.Name) }
func (e *EnumDecl) Position() Pos  { return e.Pos_ }
func (e *EnumDecl) declNode()      {}

// FieldDecl declares one field of the enclosing type.
type FieldDecl struct {
	Vis        Vis
	Name       string
	IsMut      bool
	Type       TypeExpr
	HasDefExpr bool
	DefExpr    Expr
	Pos_       Pos
}

func (f *FieldDecl) String() string { return fmt.Sprintf("field %s", f.Name) }
func (f *FieldDecl) Position() Pos  { return f.Pos_ }
func (f *FieldDecl) declNode()      {}

// ExtendDecl reopens an existing (or not-yet-declared) type to add members.
type ExtendDecl struct {
	// Target is the type expression naming what is being extended. A
	// Target that is not a *NamedType (and carries no pre-resolved
	// symbol via ResolvedSym) is always an InvalidExtendTarget.
	Target      TypeExpr
	ResolvedSym SymbolRef // set when the checker already bound this type; otherwise filled in by the registrar
	Decls       []Decl
	Pos_        Pos
}

func (e *ExtendDecl) String() string { return fmt.Sprintf("extend %s", e.Target) }
func (e *ExtendDecl) Position() Pos  { return e.Pos_ }
func (e *ExtendDecl) declNode()      {}

// FnDecl declares a free function or method.
type FnDecl struct {
	Vis          Vis
	Name         string
	NamePos      Pos
	IsExtern     bool
	IsUnsafe     bool
	IsMethod     bool
	IsVariadic   bool
	Args         []*ArgDecl
	Ret          TypeExpr
	HasNamedArgs bool
	HasBody      bool
	SelfIsMut    bool
	SelfIsRef    bool
	Sym          SymbolRef
	Pos_         Pos
}

func (f *FnDecl) String() string { return fmt.Sprintf("fn %s", f.Name) }
func (f *FnDecl) Position() Pos  { return f.Pos_ }
func (f *FnDecl) declNode()      {}

// ArgDecl is one function/method parameter.
type ArgDecl struct {
	Name       string
	Type       TypeExpr
	HasDefExpr bool
	DefExpr    Expr
	Pos_       Pos
}

func (a *ArgDecl) Position() Pos { return a.Pos_ }

// DestructorDecl declares `~Self(self) {...}`.
type DestructorDecl struct {
	SelfIsMut bool
	Pos_      Pos
}

func (d *DestructorDecl) String() string { return "~Self" }
func (d *DestructorDecl) Position() Pos  { return d.Pos_ }
func (d *DestructorDecl) declNode()      {}

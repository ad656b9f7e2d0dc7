// Package sym implements the compiler's symbol graph: scopes, types,
// functions, constants and variables, addressed by stable integer handles
// into an arena rather than by pointer, so the parent/child relationship
// between a Type and its owning Scope never forms an ownership cycle
// (types refer to their scope and the scope back to its owner, so an
// owning-pointer representation would cycle).
package sym

import (
	"fmt"

	"github.com/rivet-lang/rivetcore/internal/ast"
)

// ID is a stable handle into a Graph's symbol arena. Handles start at
// zero, so the zero value is a valid handle; use NoID for "absent".
type ID int

// NoID marks the absence of a symbol/scope handle.
const NoID ID = -1

// IsSymbolRef lets *Symbol satisfy ast.SymbolRef, so declaration nodes can
// carry a typed back-reference to the symbol the registrar created for
// them without an import cycle.
func (s *Symbol) IsSymbolRef() {}

// Vis mirrors ast.Vis for symbol-graph entries.
type Vis = ast.Vis

const (
	Priv = ast.Priv
	Pub  = ast.Pub
)

// ABI mirrors ast.ABI.
type ABI = ast.ABI

const (
	RivetABI = ast.RivetABI
	CABI     = ast.CABI
)

// Kind tags what a Symbol is.
type Kind int

const (
	KindModule Kind = iota
	KindType
	KindFn
	KindConst
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindType:
		return "type"
	case KindFn:
		return "function"
	case KindConst:
		return "constant"
	case KindVar:
		return "variable"
	default:
		return "unknown"
	}
}

// TypeKind tags the kind of a Type symbol's payload.
type TypeKind int

const (
	Placeholder TypeKind = iota
	Alias
	Trait
	Class
	Struct
	Enum
	Tuple
	Array
	Slice
)

func (k TypeKind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Alias:
		return "alias"
	case Trait:
		return "trait"
	case Class:
		return "class"
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Tuple:
		return "tuple"
	case Array:
		return "array"
	case Slice:
		return "slice"
	default:
		return "unknown"
	}
}

// Field is one field of a Type.
type Field struct {
	Name       string
	Mutable    bool
	Vis        Vis
	Type       ast.TypeExpr
	HasDefault bool
	Default    ast.Expr
	Pos        ast.Pos
}

// Arg is one function/method parameter.
type Arg struct {
	Name       string
	Mutable    bool
	Type       ast.TypeExpr
	HasDefault bool
	Default    ast.Expr
	Pos        ast.Pos
}

// AliasInfo is the payload of a TypeKind=Alias symbol.
type AliasInfo struct {
	Parent ast.TypeExpr
}

// TraitInfo is the payload of a TypeKind=Trait symbol.
type TraitInfo struct {
	Implementers []ID
}

// ClassInfo is the payload of a TypeKind=Class symbol.
type ClassInfo struct {
	Base ID // NoID if no base class
}

// StructInfo is the payload of a TypeKind=Struct symbol.
type StructInfo struct {
	IsOpaque bool
}

// EnumInfo is the payload of a TypeKind=Enum symbol. Variants preserves
// source order; Values holds the ordinal assigned to each unique name.
type EnumInfo struct {
	Underlying ast.TypeExpr
	Variants   []string
	Values     map[string]int64
}

// HasValue reports whether name has already been assigned an ordinal.
func (e *EnumInfo) HasValue(name string) bool {
	_, ok := e.Values[name]
	return ok
}

// AddValue records variant name with ordinal v and appends it to Variants.
func (e *EnumInfo) AddValue(name string, v int64) {
	if e.Values == nil {
		e.Values = map[string]int64{}
	}
	e.Values[name] = v
	e.Variants = append(e.Variants, name)
}

// ArrayInfo is the payload of a TypeKind=Array symbol. The emitter does
// not read or set HasWrapper: it works on IR types and tracks which
// `_Ret` wrappers it has emitted in its own per-mangled-name set.
type ArrayInfo struct {
	Elem       ast.TypeExpr
	Size       uint64
	HasWrapper bool
}

// TypeData holds the kind-specific payload plus the ordered field list
// every Type symbol owns, regardless of kind.
type TypeData struct {
	Kind   TypeKind
	Alias  *AliasInfo
	Trait  *TraitInfo
	Class  *ClassInfo
	Struct *StructInfo
	Enum   *EnumInfo
	Array  *ArrayInfo
	Fields []*Field
}

// FnData is the payload of a Fn symbol.
type FnData struct {
	ABI          ABI
	IsExtern     bool
	IsUnsafe     bool
	IsMethod     bool
	IsVariadic   bool
	Args         []*Arg
	Ret          ast.TypeExpr
	HasNamedArgs bool
	HasBody      bool
	SelfIsMut    bool
	SelfIsRef    bool
	NamePos      ast.Pos
}

// ConstData is the payload of a Const symbol.
type ConstData struct {
	Type ast.TypeExpr
	Init ast.Expr
}

// VarData is the payload of a Var symbol.
type VarData struct {
	Mutable  bool
	IsExtern bool
	ABI      ABI
	Type     ast.TypeExpr
}

// ModuleData is the payload of a Module symbol.
type ModuleData struct {
	IsRuntime bool
}

// Symbol is one entry of a Scope: a Module, Type, Fn, Const or Var.
type Symbol struct {
	ID     ID
	Name   string
	Vis    Vis
	Scope  ID // the Scope this symbol lives in
	Kind   Kind
	Pos    ast.Pos
	Module *ModuleData
	Type   *TypeData
	Fn     *FnData
	Const  *ConstData
	Var    *VarData

	// OwnScope is the Scope this symbol owns for its children (non-NoID
	// for Module and Type symbols only).
	OwnScope ID
}

// Path returns the symbol's fully-qualified dotted path by walking
// parent scopes up to the root.
func (s *Symbol) Path(g *Graph) string {
	if s == nil {
		return ""
	}
	scope := g.Scope(s.Scope)
	if scope == nil || scope.Owner == NoID {
		return s.Name
	}
	owner := g.Symbol(scope.Owner)
	parent := owner.Path(g)
	if parent == "" {
		return s.Name
	}
	return parent + "." + s.Name
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

// Scope is a named container of symbols with O(1) lookup by short name
// and order-preserving iteration in declaration order.
type Scope struct {
	ID     ID
	Owner  ID // the Symbol (Module or Type) that owns this scope; NoID for none
	Parent ID // the enclosing scope; NoID for the root
	order  []ID
	byName map[string]ID
}

// Order returns the scope's symbols in insertion (declaration) order.
func (s *Scope) Order() []ID {
	return s.order
}

// Lookup finds a direct child of this scope by short name. It does not
// chase parent scopes, aliases or imports — the registrar's own
// single-scope Extend resolution relies on exactly this behavior.
func (s *Scope) Lookup(name string) (ID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// DuplicateSymbolError is returned by Graph.AddType, AddFn, AddConst and
// AddVar when name is already bound directly in the target scope.
type DuplicateSymbolError struct {
	ScopeName string
	Name      string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q in scope %q", e.Name, e.ScopeName)
}

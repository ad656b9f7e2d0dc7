// Package ir defines the typed, register-based intermediate
// representation the emitter lowers into C. It is produced by a type
// checker and IR builder that
// live outside this module; this package only describes the shapes they
// hand to CEmitter.
package ir

import (
	"fmt"
	"strings"
)

// Type is the IR's own type representation — deliberately decoupled from
// the symbol graph (package sym) per the documented data flow (AST+ctx ->
// SymbolRegistrar -> [checker, IR builder, external] -> IR -> CEmitter):
// by the time a Type reaches the emitter it is fully resolved, carrying
// whatever mangled names it needs directly.
type Type interface {
	fmt.Stringer
	typeNode()
}

// Primitive is a fixed-width integer/float/bool/rune/size type. Name must
// be one of the identifiers the fixed HEADER typedefs (i8..i64, u8..u64,
// f32, f64, bool, rune, isize, usize, untyped_int, untyped_float).
type Primitive struct {
	Name     string
	Unsigned bool
	Bits     int // 0 for non-integer primitives
}

func (p *Primitive) String() string { return p.Name }
func (*Primitive) typeNode()        {}

// Void lowers to C `void`.
type Void struct{}

func (*Void) String() string { return "void" }
func (*Void) typeNode()      {}

// Never is the source language's bottom type; it also lowers to `void`
// (the RIVET_NORETURN attribute, not the type, signals non-return).
type Never struct{}

func (*Never) String() string { return "void" }
func (*Never) typeNode()      {}

// Ptr lowers to `<Elem>*`.
type Ptr struct{ Elem Type }

func (p *Ptr) String() string { return p.Elem.String() + "*" }
func (*Ptr) typeNode()        {}

// Ref lowers identically to Ptr (a reference is a non-null pointer at
// the C level).
type Ref struct{ Elem Type }

func (r *Ref) String() string { return r.Elem.String() + "*" }
func (*Ref) typeNode()        {}

// Optional lowers to `<Elem>*` when Elem is itself a Ptr or Ref (nil
// represents "none"), otherwise to the mangled name of a generated
// wrapper struct.
type Optional struct {
	Elem        Type
	WrapperName string // used only when Elem is not Ptr/Ref
}

func (o *Optional) String() string {
	if _, ok := o.Elem.(*Ptr); ok {
		return o.Elem.String()
	}
	if _, ok := o.Elem.(*Ref); ok {
		return o.Elem.String()
	}
	return o.WrapperName
}
func (*Optional) typeNode() {}

// Result lowers to the mangled name of its wrapper type.
type Result struct{ WrapperName string }

func (r *Result) String() string { return r.WrapperName }
func (*Result) typeNode()        {}

// Slice lowers to the fixed runtime type `_R4core6_slice`.
type Slice struct{}

func (*Slice) String() string { return "_R4core6_slice" }
func (*Slice) typeNode()      {}

// Array lowers to its mangled type name, or — in a function-return-type
// position — to `<name>_Ret`. Whether the `_Ret` wrapper has already been
// materialized is tracked by the emitter (keyed on MangledName), not on
// this value, so every occurrence of the same array type shares one
// wrapper.
type Array struct {
	Elem        Type
	Size        uint64
	MangledName string
}

func (a *Array) String() string { return a.MangledName }
func (*Array) typeNode()        {}

// RetName is the `_Ret` wrapper type's name for this array type.
func (a *Array) RetName() string { return a.MangledName + "_Ret" }

// Fn lowers to a C function-pointer type. A method additionally carries
// a leading `void* self` parameter in the C signature.
type Fn struct {
	Args     []Type
	Ret      Type
	IsMethod bool
}

// String renders Fn as an anonymous C function-pointer type, `ret (*)(args)`.
// Named positions (a struct field, a local, an extern parameter) go through
// DeclString instead, since C splices the declared name between the `*`
// and the parameter list rather than after the type.
func (f *Fn) String() string { return f.DeclString("") }

// DeclString renders Fn as a C function-pointer declarator for name (empty
// for the anonymous form String uses). Methods get a leading `void* self`
// parameter ahead of the declared args.
func (f *Fn) DeclString(name string) string {
	args := make([]string, 0, len(f.Args)+1)
	if f.IsMethod {
		args = append(args, "void* self")
	}
	for _, a := range f.Args {
		args = append(args, a.String())
	}
	if len(args) == 0 {
		args = append(args, "void")
	}
	ret := "void"
	if f.Ret != nil {
		ret = f.Ret.String()
	}
	return fmt.Sprintf("%s (*%s)(%s)", ret, name, strings.Join(args, ", "))
}

func (*Fn) typeNode() {}

// Enum lowers to its underlying primitive type — substitution happens
// wherever a type string is requested, recursively, through the single
// shared type-lowering entry point.
type Enum struct {
	Underlying  Type
	MangledName string
}

func (e *Enum) String() string { return e.Underlying.String() }
func (*Enum) typeNode()        {}

// Named is any other named type (struct/union/alias/class/trait/tuple)
// lowered to its mangled name directly.
type Named struct{ MangledName string }

func (n *Named) String() string { return n.MangledName }
func (*Named) typeNode()        {}

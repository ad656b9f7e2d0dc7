package cemit

import (
	"fmt"

	"github.com/rivet-lang/rivetcore/internal/ir"
	"github.com/rivet-lang/rivetcore/internal/mangle"
)

// typeString is the single shared type-lowering entry point every other
// part of the emitter calls through: Enum substitutes its underlying
// type recursively here, so a caller never needs its own enum
// special-case.
func (e *Emitter) typeString(t ir.Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

// retTypeString is typeString specialized for a function's return-type
// position: an Array return type lowers to its `_Ret` wrapper instead of
// the bare array typedef, since C cannot return an array by value. The
// wrapper is materialized into e.types the first time a given mangled
// array name is seen in this position and reused afterwards.
func (e *Emitter) retTypeString(t ir.Type) string {
	arr, ok := t.(*ir.Array)
	if !ok {
		return e.typeString(t)
	}
	e.ensureArrayWrapper(arr)
	return arr.RetName()
}

// ensureArrayWrapper emits the `_Ret` wrapper (forward typedef plus
// struct) the first time arr.MangledName is seen in return position, then
// becomes a no-op for any later occurrence of the same type. The bare
// array typedef itself comes from the module's own AliasRecord TypeDecl;
// only the wrapper is synthesized here. The wrapper's `arr` member is a
// pointer, not an embedded array, so a use_arr_field Ident (`.arr`) can
// be passed to memcpy without an extra address-of.
func (e *Emitter) ensureArrayWrapper(arr *ir.Array) {
	if e.arrWrapped[arr.MangledName] {
		return
	}
	e.arrWrapped[arr.MangledName] = true
	fmt.Fprintf(&e.typedefs, "typedef struct %s %s;\n", arr.RetName(), arr.RetName())
	fmt.Fprintf(&e.types, "struct %s { %s* arr; };\n", arr.RetName(), e.typeString(arr.Elem))
}

// declString renders a single `<type> <name>` declarator for name. Fn
// types are function pointers in C, where the declared name is spliced
// between the `*` and the parameter list (`ret (*name)(args)`) rather
// than trailing a type string the way every other type lowers.
func (e *Emitter) declString(t ir.Type, name string) string {
	if fn, ok := t.(*ir.Fn); ok {
		return fn.DeclString(name)
	}
	return e.typeString(t) + " " + name
}

// fieldListString renders a C parameter list, escaping reserved names.
func (e *Emitter) fieldListString(fields []ir.Field) string {
	if len(fields) == 0 {
		return "void"
	}
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += e.declString(f.Type, mangle.Escape(f.Name))
	}
	return s
}

package cemit

import (
	"fmt"

	"github.com/rivet-lang/rivetcore/internal/ir"
	"github.com/rivet-lang/rivetcore/internal/mangle"
)

// emitTypeDecl lowers one ir.TypeDecl. Every struct or union record gets a
// `typedef <kw> N N;` forward declaration in the typedefs buffer, so
// later fields and signatures can name it regardless of emission order;
// the body (if any) goes into the types buffer. AliasRecords are fixed
// array typedefs; UnionRecords are the tagged-union lowering of the
// source language's sum types; opaque StructRecords never get a body.
func (e *Emitter) emitTypeDecl(td *ir.TypeDecl) {
	switch td.Kind {
	case ir.AliasRecordKind:
		kw := ""
		if td.AliasElemIsRecord {
			kw = "struct "
		}
		fmt.Fprintf(&e.typedefs, "typedef %s%s %s[%d];\n", kw, e.typeString(td.AliasElem), td.Name, td.AliasSize)

	case ir.UnionRecordKind:
		fmt.Fprintf(&e.typedefs, "typedef struct %s %s;\n", td.Name, td.Name)
		fmt.Fprintf(&e.types, "struct %s {\n  union {\n", td.Name)
		for _, v := range td.Variants {
			// Each member is named after its mangled variant type.
			fmt.Fprintf(&e.types, "    %s %s;\n", e.typeString(v), e.typeString(v))
		}
		fmt.Fprintf(&e.types, "  };\n  i64 idx;\n};\n\n")

	case ir.StructRecordKind:
		kw := "struct"
		if td.IsUnion {
			kw = "union"
		}
		fmt.Fprintf(&e.typedefs, "typedef %s %s %s;\n", kw, td.Name, td.Name)
		if td.IsOpaque {
			fmt.Fprintf(&e.types, "%s %s;\n\n", kw, td.Name)
			return
		}
		fmt.Fprintf(&e.types, "%s %s {\n", kw, td.Name)
		for _, f := range td.Fields {
			fmt.Fprintf(&e.types, "  %s;\n", e.declString(f.Type, mangle.Escape(f.Name)))
		}
		fmt.Fprintf(&e.types, "};\n\n")
	}
}

// emitExtern writes a prototype for a foreign (`extern(C)`/`extern(Rivet)`)
// function. Externs have no body: they are declared, never defined, by
// this translation unit.
func (e *Emitter) emitExtern(ext *ir.Extern) {
	args := e.fieldListString(ext.Args)
	if ext.IsVariadic && len(ext.Args) > 0 {
		args += ", ..."
	}
	noreturn := ""
	if _, ok := ext.Ret.(*ir.Never); ok {
		noreturn = "RIVET_NORETURN "
	}
	fmt.Fprintf(&e.protos, "extern %s%s %s(%s);\n", noreturn, e.retTypeString(ext.Ret), ext.Name, args)
}

// emitStatic writes a file-scope variable declaration. Extern statics are
// declared `extern`; private ones get hidden visibility; a public
// non-extern static is a plain file-scope definition.
func (e *Emitter) emitStatic(s *ir.Static) {
	storage := ""
	if s.IsExtern {
		storage = "extern "
	} else if !s.IsPublic {
		storage = "RIVET_LOCAL_SYMBOL "
	}
	fmt.Fprintf(&e.statics, "%s%s;\n", storage, e.declString(s.Type, s.Name))
}

// emitVTable writes a file-scope array of per-implementer method-pointer
// rows. Every slot is cast to `void*` regardless of its real function
// pointer type: the vtable struct's slots are `void*` fields, and the
// trait-dispatch runtime casts back to the right function pointer type at
// the call site, so the table itself carries no signature information.
func (e *Emitter) emitVTable(vt *ir.VTable) {
	fmt.Fprintf(&e.statics, "static %s %s[%d] = {\n", vt.StructType, vt.Name, vt.ImplementNr)
	for i, row := range vt.Rows {
		fmt.Fprintf(&e.statics, "  {\n")
		for j, slot := range row.Slots {
			comma := ","
			if j == len(row.Slots)-1 {
				comma = ""
			}
			fmt.Fprintf(&e.statics, "    .%s = (void*)%s%s\n", mangle.Escape(slot.Method), slot.Impl, comma)
		}
		if i < len(vt.Rows)-1 {
			fmt.Fprintf(&e.statics, "  },\n")
		} else {
			fmt.Fprintf(&e.statics, "  }\n")
		}
	}
	fmt.Fprintf(&e.statics, "};\n")
}

// emitFnDecl writes both the prototype and the definition of a function
// or method, with textually identical signatures. Multi-block bodies
// (conditional branches, loops) are flattened into a single C function
// body with `goto`-style labels: each non-entry ir.BasicBlock becomes a C
// label, matching the register IR's own basic-block-as-label model rather
// than introducing nested C control structures the IR doesn't carry.
func (e *Emitter) emitFnDecl(fn *ir.FnDecl) {
	args := e.fieldListString(fn.Args)
	ret := e.retTypeString(fn.Ret)

	prefix := ""
	if _, ok := fn.Ret.(*ir.Never); ok {
		prefix = "RIVET_NORETURN "
	}
	if fn.IsPublic {
		prefix += "RIVET_EXPORTED_SYMBOL"
	} else {
		prefix += "RIVET_LOCAL_SYMBOL"
	}

	fmt.Fprintf(&e.protos, "%s %s %s(%s);\n", prefix, ret, fn.Name, args)
	fmt.Fprintf(&e.out, "%s %s %s(%s) {\n", prefix, ret, fn.Name, args)
	for i, bb := range fn.Blocks {
		if i > 0 {
			fmt.Fprintf(&e.out, "\n%s: {}\n", bb.Label)
		}
		for _, instr := range bb.Instrs {
			e.emitStmt(instr)
		}
	}
	fmt.Fprintf(&e.out, "}\n\n")
}

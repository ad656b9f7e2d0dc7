package cemit

import (
	"fmt"
	"strings"

	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/errors"
	"github.com/rivet-lang/rivetcore/internal/ir"
	"github.com/rivet-lang/rivetcore/internal/mangle"
)

var binOpText = map[ir.InstKind]string{
	ir.Add: "+", ir.Sub: "-", ir.Mult: "*", ir.Div: "/", ir.Mod: "%",
	ir.BitAnd: "&", ir.BitOr: "|", ir.BitXor: "^",
	ir.Lshift: "<<", ir.Rshift: ">>",
}

// emitStmt lowers one top-level instruction of a basic block. Instructions
// are indented two spaces and terminated with `;`, except Label (fresh
// line, column zero, `name: {}`), Comment and DbgStmtLine.
func (e *Emitter) emitStmt(instr *ir.Instr) {
	switch instr.Kind {
	case ir.Skip:
		return

	case ir.Comment:
		fmt.Fprintf(&e.out, "  /* %s */\n", instr.Text)

	case ir.Label:
		fmt.Fprintf(&e.out, "\n%s: {}\n", instr.Text)

	case ir.DbgStmtLine:
		fmt.Fprintf(&e.out, "  #line %d \"%s\"\n", instr.Line, instr.File)

	case ir.Alloca:
		name := mangle.Escape(instr.Name)
		decl := e.declString(instr.Type, name)
		if arr, ok := instr.Type.(*ir.Array); ok && len(instr.Args) > 0 {
			// A call returning an array actually returns the _Ret wrapper,
			// so the local holding its result is wrapper-typed too.
			if call, isCall := instr.Args[0].(*ir.Instr); isCall && call.Kind == ir.Call {
				e.ensureArrayWrapper(arr)
				decl = arr.RetName() + " " + name
			}
		}
		init := ""
		if len(instr.Args) > 0 {
			init = " = " + e.exprString(instr.Args[0])
		}
		fmt.Fprintf(&e.out, "  %s%s;\n", decl, init)

	case ir.Store, ir.StorePtr:
		dst, src := instr.Args[0], instr.Args[1]
		if arr, ok := instr.Type.(*ir.Array); ok {
			// Arrays copy by memcpy. dst is already a pointer for
			// StorePtr; Store's dst is a plain array lvalue and needs &.
			// src only skips & in use_arr_field mode, where it already
			// names a pointer (the _Ret wrapper's `.arr` field).
			dstExpr := e.exprString(dst)
			if instr.Kind == ir.Store {
				dstExpr = "&" + dstExpr
			}
			srcExpr := e.exprString(src)
			if id, isIdent := src.(*ir.Ident); !isIdent || !id.UseArrField {
				srcExpr = "&" + srcExpr
			}
			fmt.Fprintf(&e.out, "  memcpy(%s, %s, sizeof(%s));\n", dstExpr, srcExpr, arr.MangledName)
			return
		}
		if instr.Kind == ir.StorePtr {
			fmt.Fprintf(&e.out, "  (*%s) = %s;\n", e.exprString(dst), e.exprString(src))
			return
		}
		fmt.Fprintf(&e.out, "  %s = %s;\n", e.exprString(dst), e.exprString(src))

	case ir.Br:
		if len(instr.Args) == 1 {
			fmt.Fprintf(&e.out, "  goto %s;\n", instr.Args[0].(*ir.Name).Text)
			return
		}
		cond := e.exprString(instr.Args[0])
		then := instr.Args[1].(*ir.Name).Text
		els := instr.Args[2].(*ir.Name).Text
		fmt.Fprintf(&e.out, "  if (%s) goto %s; else goto %s;\n", cond, then, els)

	case ir.Ret:
		if len(instr.Args) == 0 {
			fmt.Fprintf(&e.out, "  return;\n")
			return
		}
		arr, retsArray := instr.Type.(*ir.Array)
		if lit, isLit := instr.Args[0].(*ir.ArrayLiteral); retsArray && isLit {
			e.ensureArrayWrapper(arr)
			fmt.Fprintf(&e.out, "  return (%s){.arr = %s};\n", arr.RetName(), e.exprString(lit))
			return
		}
		fmt.Fprintf(&e.out, "  return %s;\n", e.exprString(instr.Args[0]))

	default:
		// Everything else (Nop, Unreachable, Breakpoint, Call, Inc/Dec and
		// the pure-expression kinds appearing as dead statements) lowers
		// through the expression path and gets a terminating `;`.
		fmt.Fprintf(&e.out, "  %s;\n", e.exprString(instr))
	}
}

// exprString renders any ir.Value as a C expression fragment. This is the
// single recursive entry point both statement lowering and nested
// operands go through, matching the register IR's own convention of
// embedding an instruction directly as another instruction's operand.
func (e *Emitter) exprString(v ir.Value) string {
	switch val := v.(type) {
	case *ir.Ident:
		if val.UseArrField {
			return val.Name + ".arr"
		}
		return mangle.Escape(val.Name)

	case *ir.Selector:
		return e.exprString(val.Left) + "." + mangle.Escape(val.Field)

	case *ir.Name:
		return val.Text

	case *ir.TypeValue:
		return e.typeString(val.Type)

	case *ir.NoneLiteral:
		return "NULL"

	case *ir.IntLiteral:
		return e.intLiteralString(val)

	case *ir.FloatLiteral:
		if p, ok := val.Type.(*ir.Primitive); ok && p.Name == "f32" {
			return val.Lit + "f"
		}
		return val.Lit

	case *ir.RuneLiteral:
		return val.Lit

	case *ir.StringLiteral:
		if val.RawCString {
			return "(u8*)" + val.Lit
		}
		return fmt.Sprintf("(_R4core4_str){.ptr = ((u8*)%s), .len = %dU}", val.Lit, val.Len)

	case *ir.ArrayLiteral:
		parts := make([]string, len(val.Elems))
		for i, el := range val.Elems {
			parts[i] = e.exprString(el)
		}
		if val.IsVariadicInit {
			elemType := "void"
			if val.ElemType != nil {
				elemType = e.typeString(val.ElemType)
			}
			return fmt.Sprintf("(%s[]){ %s }", elemType, strings.Join(parts, ", "))
		}
		arrType := "void"
		if val.ArrType != nil {
			arrType = e.typeString(val.ArrType)
		}
		return fmt.Sprintf("(%s){ %s }", arrType, strings.Join(parts, ", "))

	case *ir.Instr:
		return e.exprStringInstr(val)
	}
	panic(errors.WrapReport(errors.New("emit", errors.GenMalformedIR,
		fmt.Sprintf("malformed IR: unknown value %T in operand position", v), ast.Pos{})))
}

// intLiteralString emits the original token plus the U/L width suffixes.
// MIN_I64 is special-cased: `-9223372036854775808` does not parse as a
// single C integer-literal token (the unary minus applies to
// `9223372036854775808`, which overflows i64), so the literal is written
// as a subtraction instead.
func (e *Emitter) intLiteralString(lit *ir.IntLiteral) string {
	if lit.Value == ir.MinI64 {
		return "(-9223372036854775807L - 1)"
	}
	suffix := ""
	if p, ok := underlyingPrimitive(lit.Type); ok {
		if p.Unsigned {
			suffix += "U"
		}
		if p.Bits == 64 {
			suffix += "L"
		}
	}
	return lit.Lit + suffix
}

// underlyingPrimitive peels an Enum down to its underlying primitive, so
// an enum-typed literal suffixes the way its underlying type does.
func underlyingPrimitive(t ir.Type) (*ir.Primitive, bool) {
	for {
		switch v := t.(type) {
		case *ir.Primitive:
			return v, true
		case *ir.Enum:
			t = v.Underlying
		default:
			return nil, false
		}
	}
}

// exprStringInstr lowers an instruction used in operand position. An
// instruction kind this switch does not know is a compiler bug, not a
// user error: it panics with a GEN001 report instead of producing text
// (well-formed IR never reaches the default arm).
func (e *Emitter) exprStringInstr(instr *ir.Instr) string {
	switch instr.Kind {
	case ir.Nop:
		return "/* NOP */"

	case ir.Alloca:
		return mangle.Escape(instr.Name)

	case ir.LoadPtr:
		return "(*(" + e.exprString(instr.Args[0]) + "))"

	case ir.GetElementPtr:
		return fmt.Sprintf("(%s + %s)", e.exprString(instr.Args[0]), e.exprString(instr.Args[1]))

	case ir.GetRef:
		operand := instr.Args[0]
		switch v := operand.(type) {
		case *ir.Ident, *ir.Selector:
			return "(&" + e.exprString(operand) + ")"
		case *ir.ArrayLiteral:
			return "(&" + e.exprString(v) + "[0])"
		case *ir.Instr:
			if v.Kind == ir.LoadPtr {
				return "(&" + e.exprString(v) + ")"
			}
		}
		// No addressable lvalue: take the address of a one-element
		// compound-literal array instead of the bare r-value.
		return fmt.Sprintf("(&((%s[]){ %s }[0]))", e.typeString(instr.Type), e.exprString(operand))

	case ir.Cast:
		return fmt.Sprintf("((%s)(%s))", e.exprString(instr.Args[1]), e.exprString(instr.Args[0]))

	case ir.Cmp:
		// Args[0] is an expression yielding the C operator text.
		return fmt.Sprintf("%s %s %s", e.exprString(instr.Args[1]), e.exprString(instr.Args[0]), e.exprString(instr.Args[2]))

	case ir.Select:
		return fmt.Sprintf("(%s) ? (%s) : (%s)", e.exprString(instr.Args[0]), e.exprString(instr.Args[1]), e.exprString(instr.Args[2]))

	case ir.Unreachable:
		return "RIVET_UNREACHABLE()"

	case ir.Breakpoint:
		return "RIVET_BREAKPOINT()"

	case ir.BitNot:
		return "~" + e.exprString(instr.Args[0])

	case ir.BooleanNot:
		return "!(" + e.exprString(instr.Args[0]) + ")"

	case ir.Neg:
		return "-" + e.exprString(instr.Args[0])

	case ir.Inc:
		return e.exprString(instr.Args[0]) + "++"

	case ir.Dec:
		return e.exprString(instr.Args[0]) + "--"

	case ir.Add, ir.Sub, ir.Mult, ir.Div, ir.Mod, ir.BitAnd, ir.BitOr, ir.BitXor, ir.Lshift, ir.Rshift:
		return fmt.Sprintf("%s %s %s", e.exprString(instr.Args[0]), binOpText[instr.Kind], e.exprString(instr.Args[1]))

	case ir.Br:
		if len(instr.Args) == 1 {
			return "goto " + instr.Args[0].(*ir.Name).Text
		}
		return fmt.Sprintf("if (%s) goto %s; else goto %s",
			e.exprString(instr.Args[0]), instr.Args[1].(*ir.Name).Text, instr.Args[2].(*ir.Name).Text)

	case ir.Call:
		args := make([]string, len(instr.Args)-1)
		for i, a := range instr.Args[1:] {
			args[i] = e.exprString(a)
		}
		return fmt.Sprintf("%s(%s)", e.exprString(instr.Args[0]), strings.Join(args, ", "))

	default:
		panic(errors.WrapReport(errors.New("emit", errors.GenUnknownInstruction,
			fmt.Sprintf("unknown instruction kind %d", instr.Kind), ast.Pos{})))
	}
}

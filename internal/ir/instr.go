package ir

// Value is anything that can appear as an instruction operand: an
// identifier, a literal, a field selector, or another instruction used
// in expression position (this IR is register-based: an instruction's
// result is referenced by embedding the instruction itself in a later
// instruction's Args).
type Value interface {
	valueNode()
}

// Ident is a bare name reference. UseArrField selects the `.arr`
// sub-field of a `_Ret` wrapper value, which already names a pointer, so
// Store's memcpy lowering skips the address-of on it.
type Ident struct {
	Name        string
	Type        Type
	UseArrField bool
}

func (*Ident) valueNode() {}

// Selector is a `.field` access off another value.
type Selector struct {
	Left  Value
	Field string
}

func (*Selector) valueNode() {}

// Name is a bare token used where no type/value semantics apply: a
// label target, a Cmp operator's text.
type Name struct{ Text string }

func (*Name) valueNode() {}

// TypeValue wraps a Type for use as a Cast's target-type operand.
type TypeValue struct{ Type Type }

func (*TypeValue) valueNode() {}

// NoneLiteral lowers to `NULL`.
type NoneLiteral struct{}

func (*NoneLiteral) valueNode() {}

// IntLiteral is an integer literal. Value is the literal's own int64
// reading (used only to detect the MIN_I64 sentinel); Lit is the
// original token text to emit verbatim in the common case.
type IntLiteral struct {
	Lit   string
	Value int64
	Type  Type // drives the U/L width suffixes
}

func (*IntLiteral) valueNode() {}

// MinI64 is the sentinel the emitter special-cases:
// `-9223372036854775808` does not parse as a single C literal token.
const MinI64 = -9223372036854775808

// FloatLiteral is a float literal.
type FloatLiteral struct {
	Lit  string
	Type Type // an `f` suffix is appended for 32-bit floats
}

func (*FloatLiteral) valueNode() {}

// RuneLiteral is emitted exactly as written.
type RuneLiteral struct{ Lit string }

func (*RuneLiteral) valueNode() {}

// StringLiteral carries both forms: RawCString selects the `(u8*)"..."`
// lowering, otherwise the runtime `_R4core4_str` struct literal is used.
type StringLiteral struct {
	Lit        string
	Len        int
	RawCString bool
}

func (*StringLiteral) valueNode() {}

// ArrayLiteral is `(ArrType){ e0, e1, ... }` — a compound literal of the
// full array type, which decays to a pointer wherever one is expected (a
// _Ret wrapper's `.arr` field, a slice's `ptr`) — or `(ElemType[]){ ... }`
// when used as a variadic call's slice-backing array, where there is no
// named array type to splice in and the element count is implicit in the
// initializer instead.
type ArrayLiteral struct {
	ElemType       Type // used only for the IsVariadicInit `(T[]){...}` form
	ArrType        Type // the full array type; used for the sized compound literal
	Elems          []Value
	IsVariadicInit bool
}

func (*ArrayLiteral) valueNode() {}

// InstKind tags a register-level instruction. The emitter's lowering
// switch is exhaustive over these.
type InstKind int

const (
	Nop InstKind = iota
	Skip
	Comment
	Label
	DbgStmtLine
	Alloca
	Store
	StorePtr
	LoadPtr
	GetElementPtr
	GetRef
	Cast
	Cmp
	Select
	Unreachable
	Breakpoint
	Add
	Sub
	Mult
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	Lshift
	Rshift
	Inc
	Dec
	BitNot
	BooleanNot
	Neg
	Br
	Call
	Ret
)

// Instr is one instruction. It satisfies Value so it can be embedded
// directly as another instruction's operand (register-based IR: the
// instruction producing a value *is* that value's handle).
//
// Argument conventions by Kind:
//
//	Alloca          Name, Type, Args[0] = initializer
//	Store/StorePtr  Args[0] = dst, Args[1] = src
//	LoadPtr         Args[0] = pointer
//	GetElementPtr   Args[0] = base, Args[1] = index
//	GetRef          Args[0] = operand
//	Cast            Args[0] = value, Args[1] = *TypeValue target
//	Cmp             Args[0] = *Name operator, Args[1] = a, Args[2] = b
//	Select          Args[0] = cond, Args[1] = then, Args[2] = else
//	DbgStmtLine     File, Line
//	Unreachable/Breakpoint  (no args)
//	binary arith/bitwise    Args[0], Args[1]
//	Inc/Dec/BitNot/BooleanNot/Neg   Args[0]
//	Br (unconditional)      Args[0] = *Name label
//	Br (conditional)        Args[0] = cond, Args[1] = *Name then, Args[2] = *Name else
//	Call                    Args[0] = callee, Args[1:] = arguments
//	Ret                     Args[0] = value, optional (len(Args)==0 for bare `return`)
//	Comment                 Text
//	Label                   Text
type Instr struct {
	Kind InstKind
	Args []Value
	Name string // Alloca's destination identifier
	Type Type   // Alloca's declared type; Store/StorePtr/Ret's value type; GetRef's operand type
	Text string // Comment/Label text
	File string // DbgStmtLine
	Line int    // DbgStmtLine
}

func (*Instr) valueNode() {}

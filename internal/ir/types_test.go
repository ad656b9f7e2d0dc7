package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumStringSubstitutesUnderlying(t *testing.T) {
	e := &Enum{Underlying: &Primitive{Name: "i32", Bits: 32}, MangledName: "_R4core5Color"}
	assert.Equal(t, "i32", e.String(), "Enum.String() should give the underlying primitive, not the mangled name")
}

func TestOptionalOfPtrLowersToBarePointer(t *testing.T) {
	o := &Optional{Elem: &Ptr{Elem: &Primitive{Name: "i32"}}, WrapperName: "_R4core6_OptZ"}
	assert.Equal(t, "i32*", o.String(), "nil doubles as none for Optional(Ptr)")
}

func TestOptionalOfValueUsesWrapper(t *testing.T) {
	o := &Optional{Elem: &Primitive{Name: "i32"}, WrapperName: "_R4core6_OptZ"}
	assert.Equal(t, "_R4core6_OptZ", o.String())
}

func TestArrayRetNameAppendsSuffix(t *testing.T) {
	a := &Array{Elem: &Primitive{Name: "i32"}, Size: 4, MangledName: "_R4core5_Arr4"}
	assert.Equal(t, "_R4core5_Arr4_Ret", a.RetName())
}

func TestSliceHasFixedRuntimeName(t *testing.T) {
	assert.Equal(t, "_R4core6_slice", (&Slice{}).String())
}

func TestFnDeclStringPlainFunction(t *testing.T) {
	f := &Fn{Args: []Type{&Primitive{Name: "i32"}, &Primitive{Name: "i32"}}, Ret: &Primitive{Name: "i32"}}
	assert.Equal(t, "i32 (*cb)(i32, i32)", f.DeclString("cb"))
}

func TestFnDeclStringMethodGetsLeadingSelf(t *testing.T) {
	f := &Fn{Args: []Type{&Primitive{Name: "i32"}}, Ret: &Void{}, IsMethod: true}
	assert.Equal(t, "void (*m0)(void* self, i32)", f.DeclString("m0"))
}

func TestFnDeclStringNoArgsIsVoid(t *testing.T) {
	f := &Fn{Ret: &Void{}}
	assert.Equal(t, "void (*)(void)", f.String())
}

package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivet-lang/rivetcore/internal/ast"
)

func TestDuplicateInsertionLeavesFirstUnchanged(t *testing.T) {
	g := NewGraph()
	_, scope := g.NewModule("main", false, ast.Pos{})

	first, err := g.AddConst(scope, Pub, "x", &ConstData{}, ast.Pos{Line: 1})
	require.NoError(t, err)

	_, err = g.AddFn(scope, Pub, "x", &FnData{}, ast.Pos{Line: 2})
	require.Error(t, err)
	var dup *DuplicateSymbolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
	assert.Equal(t, "main", dup.ScopeName)

	id, ok := g.Scope(scope).Lookup("x")
	require.True(t, ok)
	assert.Same(t, first, g.Symbol(id), "the first insertion must survive a duplicate attempt")
	assert.Len(t, g.Scope(scope).Order(), 1)
}

func TestScopeOrderMirrorsInsertionOrder(t *testing.T) {
	g := NewGraph()
	_, scope := g.NewModule("main", false, ast.Pos{})

	for _, name := range []string{"c", "a", "b"} {
		_, err := g.AddConst(scope, Priv, name, &ConstData{}, ast.Pos{})
		require.NoError(t, err)
	}

	var names []string
	for _, id := range g.Scope(scope).Order() {
		names = append(names, g.Symbol(id).Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestSymbolPathWalksParents(t *testing.T) {
	g := NewGraph()
	_, modScope := g.NewModule("core", false, ast.Pos{})

	vecSym, vecScope, err := g.AddType(modScope, Pub, "Vec", Class, &TypeData{Class: &ClassInfo{Base: NoID}}, ast.Pos{})
	require.NoError(t, err)
	pushSym, err := g.AddFn(vecScope, Pub, "push", &FnData{IsMethod: true}, ast.Pos{})
	require.NoError(t, err)

	assert.Equal(t, "core.Vec", vecSym.Path(g))
	assert.Equal(t, "core.Vec.push", pushSym.Path(g))
}

func TestLookupIsSingleScopeOnly(t *testing.T) {
	g := NewGraph()
	_, modScope := g.NewModule("main", false, ast.Pos{})
	_, err := g.AddConst(modScope, Pub, "outer", &ConstData{}, ast.Pos{})
	require.NoError(t, err)

	_, typeScope, err := g.AddType(modScope, Pub, "T", Struct, &TypeData{Struct: &StructInfo{}}, ast.Pos{})
	require.NoError(t, err)

	_, found := g.Scope(typeScope).Lookup("outer")
	assert.False(t, found, "Lookup must not chase parent scopes")
}

func TestAddPlaceholderIsPrivate(t *testing.T) {
	g := NewGraph()
	_, modScope := g.NewModule("main", false, ast.Pos{})

	ph, phScope := g.AddPlaceholder(modScope, "Later", ast.Pos{Line: 4})
	assert.Equal(t, Priv, ph.Vis)
	assert.Equal(t, Placeholder, ph.Type.Kind)
	assert.Equal(t, ph.ID, g.Scope(phScope).Owner)
}

func TestEnumInfoOrdinals(t *testing.T) {
	info := &EnumInfo{Values: map[string]int64{}}
	info.AddValue("A", 0)
	info.AddValue("B", 1)
	assert.True(t, info.HasValue("A"))
	assert.False(t, info.HasValue("C"))
	assert.Equal(t, []string{"A", "B"}, info.Variants)
}

package sym

import "github.com/rivet-lang/rivetcore/internal/ast"

// Graph is the arena owning every Symbol and Scope created during
// registration. It is append-only for the duration of a compilation: the
// registrar never deletes a symbol, even on error.
type Graph struct {
	symbols []*Symbol
	scopes  []*Scope
}

// NewGraph creates an empty arena with no symbols and no scopes; the
// first scope comes from NewModule.
func NewGraph() *Graph {
	return &Graph{}
}

// Symbol dereferences a handle. Returns nil for NoID or an out-of-range id.
func (g *Graph) Symbol(id ID) *Symbol {
	if id == NoID || int(id) < 0 || int(id) >= len(g.symbols) {
		return nil
	}
	return g.symbols[id]
}

// Scope dereferences a scope handle.
func (g *Graph) Scope(id ID) *Scope {
	if id == NoID || int(id) < 0 || int(id) >= len(g.scopes) {
		return nil
	}
	return g.scopes[id]
}

func (g *Graph) newScope(owner, parent ID) ID {
	id := ID(len(g.scopes))
	g.scopes = append(g.scopes, &Scope{
		ID:     id,
		Owner:  owner,
		Parent: parent,
		byName: map[string]ID{},
	})
	return id
}

// NewModule creates a fresh root Module symbol with its own scope and
// returns both handles. isRuntime flags the structurally-identified
// runtime module.
func (g *Graph) NewModule(name string, isRuntime bool, pos ast.Pos) (ID, ID) {
	symID := ID(len(g.symbols))
	scopeID := g.newScope(symID, NoID)
	s := &Symbol{
		ID:       symID,
		Name:     name,
		Vis:      Pub,
		Kind:     KindModule,
		Pos:      pos,
		Module:   &ModuleData{IsRuntime: isRuntime},
		OwnScope: scopeID,
		Scope:    NoID,
	}
	g.symbols = append(g.symbols, s)
	return symID, scopeID
}

// addRaw inserts sy into scope, detecting a duplicate short name. On
// success sy.ID and sy.Scope are set and sy is appended to the arena. On
// duplicate the scope and arena are left untouched, so the first
// insertion under a name always survives.
func (g *Graph) addRaw(scopeID ID, sy *Symbol) (*Symbol, error) {
	scope := g.Scope(scopeID)
	if scope == nil {
		panic("sym: add into invalid scope")
	}
	if _, exists := scope.byName[sy.Name]; exists {
		return nil, &DuplicateSymbolError{ScopeName: scopeName(g, scope), Name: sy.Name}
	}
	sy.ID = ID(len(g.symbols))
	sy.Scope = scopeID
	g.symbols = append(g.symbols, sy)
	scope.order = append(scope.order, sy.ID)
	scope.byName[sy.Name] = sy.ID
	return sy, nil
}

func scopeName(g *Graph, scope *Scope) string {
	if owner := g.Symbol(scope.Owner); owner != nil {
		return owner.Name
	}
	return "<root>"
}

// AddType inserts a Type symbol into scopeID and allocates its own child
// scope for members (methods, nested types, associated functions). On
// duplicate, returns the error and a nil symbol/NoID scope.
func (g *Graph) AddType(scopeID ID, vis Vis, name string, kind TypeKind, data *TypeData, pos ast.Pos) (*Symbol, ID, error) {
	sy := &Symbol{
		Name: name,
		Vis:  vis,
		Kind: KindType,
		Pos:  pos,
		Type: data,
	}
	data.Kind = kind
	sy, err := g.addRaw(scopeID, sy)
	if err != nil {
		return nil, NoID, err
	}
	ownScope := g.newScope(sy.ID, scopeID)
	sy.OwnScope = ownScope
	return sy, ownScope, nil
}

// AddFn inserts a Fn symbol into scopeID.
func (g *Graph) AddFn(scopeID ID, vis Vis, name string, data *FnData, pos ast.Pos) (*Symbol, error) {
	sy := &Symbol{Name: name, Vis: vis, Kind: KindFn, Pos: pos, Fn: data, OwnScope: NoID}
	return g.addRaw(scopeID, sy)
}

// AddConst inserts a Const symbol into scopeID.
func (g *Graph) AddConst(scopeID ID, vis Vis, name string, data *ConstData, pos ast.Pos) (*Symbol, error) {
	sy := &Symbol{Name: name, Vis: vis, Kind: KindConst, Pos: pos, Const: data, OwnScope: NoID}
	return g.addRaw(scopeID, sy)
}

// AddVar inserts a Var symbol into scopeID.
func (g *Graph) AddVar(scopeID ID, vis Vis, name string, data *VarData, pos ast.Pos) (*Symbol, error) {
	sy := &Symbol{Name: name, Vis: vis, Kind: KindVar, Pos: pos, Var: data, OwnScope: NoID}
	return g.addRaw(scopeID, sy)
}

// AddPlaceholder inserts a private Placeholder Type symbol into scopeID.
// Used by Extend when the target type is not yet resolved. Unlike AddType
// it returns no error: a name collision with an existing symbol panics,
// and the caller (register package) only calls it after a Lookup of the
// name has failed.
func (g *Graph) AddPlaceholder(scopeID ID, name string, pos ast.Pos) (*Symbol, ID) {
	sy, ownScope, err := g.AddType(scopeID, Priv, name, Placeholder, &TypeData{}, pos)
	if err != nil {
		// Name collision on a placeholder insert should not happen in
		// practice: Extend only creates one when Lookup already failed.
		panic(err)
	}
	return sy, ownScope
}

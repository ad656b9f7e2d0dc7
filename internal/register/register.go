// Package register implements the compiler's first semantic pass: a
// depth-first walk over parsed declarations that populates the symbol
// graph (package sym), attaches symbol handles back onto the AST, and
// reports duplicate/invalid declarations as non-fatal structured
// diagnostics. Registration never aborts: every failed insertion becomes
// a diagnostic and the walk continues.
package register

import (
	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/errors"
	"github.com/rivet-lang/rivetcore/internal/sym"
)

const phase = "register"

// RuntimeAdoptions holds the compiler's pre-existing handles for the
// well-known runtime types that the runtime module's declarations bind
// to instead of creating new Type symbols for.
type RuntimeAdoptions struct {
	StringSym *sym.Symbol
	ErrorSym  *sym.Symbol
}

// Registrar walks parsed files and populates a sym.Graph.
type Registrar struct {
	Graph    *sym.Graph
	Reporter errors.Reporter
	Void     ast.TypeExpr // the type used for a destructor's implicit return

	// RuntimeModuleSym, once walk_files has seen the structurally-flagged
	// runtime file, is the Module symbol files should adopt against.
	RuntimeModuleSym *sym.Symbol
	Adopt            RuntimeAdoptions

	// VecSym records the runtime module's `class Vec` symbol once seen;
	// unlike string/Error it is not adopted (no pre-existing handle), but
	// the compiler still needs to find it afterwards.
	VecSym *sym.Symbol

	scope sym.ID // current scope (self_sym), saved/restored around each decl
	abi   ast.ABI
}

// New creates a Registrar over an existing symbol graph.
func New(g *sym.Graph, reporter errors.Reporter, voidType ast.TypeExpr) *Registrar {
	return &Registrar{Graph: g, Reporter: reporter, Void: voidType, abi: ast.RivetABI, scope: sym.NoID}
}

func (r *Registrar) report(code, msg string, pos ast.Pos) {
	r.Reporter.Report(errors.New(phase, code, msg, pos))
}

// SourceFile pairs a parsed file with the Module symbol already created
// for it (module creation precedes registration and is owned by the
// external loader — the registrar only consumes it).
type SourceFile struct {
	File      *ast.File
	ModuleSym *sym.Symbol
}

// WalkFiles walks an ordered sequence of parsed files, populating the
// symbol graph and annotating declaration nodes with their new symbols.
func (r *Registrar) WalkFiles(files []SourceFile) {
	for _, sf := range files {
		if sf.File.IsRuntime && r.RuntimeModuleSym == nil {
			r.RuntimeModuleSym = sf.ModuleSym
		}
		r.scope = sf.ModuleSym.OwnScope
		r.walkDecls(sf.File, sf.File.Decls)
	}
}

// walkDecls walks decls in order, saving the ambient ABI and current scope
// before each declaration and restoring them after it.
func (r *Registrar) walkDecls(f *ast.File, decls []ast.Decl) {
	for _, decl := range decls {
		oldABI := r.abi
		oldScope := r.scope
		r.walkDecl(f, decl)
		r.abi = oldABI
		r.scope = oldScope
	}
}

func (r *Registrar) walkDecl(f *ast.File, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.ExternBlockDecl:
		r.abi = d.ABI
		r.walkDecls(f, d.Decls)

	case *ast.ConstDecl:
		_, err := r.Graph.AddConst(r.scope, d.Vis, d.Name, &sym.ConstData{Type: d.Type, Init: d.Expr}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
		}

	case *ast.LetDecl:
		for _, v := range d.Lefts {
			sy, err := r.Graph.AddVar(r.scope, d.Vis, v.Name, &sym.VarData{
				Mutable: v.IsMut, IsExtern: d.IsExtern, ABI: r.abi, Type: v.Type,
			}, v.Pos_)
			if err != nil {
				r.report(errors.RegDuplicateSymbol, err.Error(), v.Pos_)
				continue
			}
			v.Sym = sy
		}

	case *ast.TypeAliasDecl:
		_, _, err := r.Graph.AddType(r.scope, d.Vis, d.Name, sym.Alias, &sym.TypeData{
			Alias: &sym.AliasInfo{Parent: d.Parent},
		}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
		}

	case *ast.TraitDecl:
		sy, scope, err := r.Graph.AddType(r.scope, d.Vis, d.Name, sym.Trait, &sym.TypeData{
			Trait: &sym.TraitInfo{},
		}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
			return
		}
		d.Sym = sy
		r.scope = scope
		r.walkDecls(f, d.Decls)

	case *ast.ClassDecl:
		r.walkClass(f, d)

	case *ast.StructDecl:
		sy, scope, err := r.Graph.AddType(r.scope, d.Vis, d.Name, sym.Struct, &sym.TypeData{
			Struct: &sym.StructInfo{IsOpaque: d.IsOpaque},
		}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
			return
		}
		d.Sym = sy
		r.scope = scope
		r.walkDecls(f, d.Decls)

	case *ast.EnumDecl:
		info := &sym.EnumInfo{Underlying: d.Underlying, Values: map[string]int64{}}
		for _, v := range d.Values {
			if info.HasValue(v) {
				r.report(errors.RegDuplicateEnumValue, "enum `"+d.Name+"` has duplicate value `"+v+"`", d.Pos_)
				continue
			}
			info.AddValue(v, int64(len(info.Variants)))
		}
		sy, scope, err := r.Graph.AddType(r.scope, d.Vis, d.Name, sym.Enum, &sym.TypeData{Enum: info}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
			return
		}
		d.Sym = sy
		r.scope = scope
		r.walkDecls(f, d.Decls)

	case *ast.FieldDecl:
		cur := r.Graph.Symbol(r.currentTypeOwner())
		if cur == nil || cur.Type == nil {
			return
		}
		if hasField(cur.Type, d.Name) {
			r.report(errors.RegDuplicateField, cur.Kind.String()+" `"+cur.Name+"` has duplicate field `"+d.Name+"`", d.Pos_)
			return
		}
		cur.Type.Fields = append(cur.Type.Fields, &sym.Field{
			Name: d.Name, Mutable: d.IsMut, Vis: d.Vis, Type: d.Type,
			HasDefault: d.HasDefExpr, Default: d.DefExpr, Pos: d.Pos_,
		})

	case *ast.ExtendDecl:
		r.walkExtend(f, d)

	case *ast.FnDecl:
		sy, err := r.Graph.AddFn(r.scope, d.Vis, d.Name, &sym.FnData{
			ABI: r.abi, IsExtern: d.IsExtern, IsUnsafe: d.IsUnsafe, IsMethod: d.IsMethod,
			IsVariadic: d.IsVariadic, Args: toArgs(d.Args), Ret: d.Ret,
			HasNamedArgs: d.HasNamedArgs, HasBody: d.HasBody,
			SelfIsMut: d.SelfIsMut, SelfIsRef: d.SelfIsRef, NamePos: d.NamePos,
		}, d.NamePos)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.NamePos)
			return
		}
		d.Sym = sy

	case *ast.DestructorDecl:
		owner := r.Graph.Symbol(r.currentTypeOwner())
		selfType := ast.TypeExpr(&ast.ResolvedType{Sym: owner, Pos_: d.Pos_})
		_, err := r.Graph.AddFn(r.scope, sym.Priv, "_dtor", &sym.FnData{
			ABI: r.abi, IsExtern: false, IsUnsafe: true, IsMethod: true, IsVariadic: false,
			Args: []*sym.Arg{{Name: "self", Mutable: d.SelfIsMut, Type: selfType, Pos: d.Pos_}},
			Ret:  r.Void, HasBody: true, SelfIsMut: d.SelfIsMut, SelfIsRef: false, NamePos: d.Pos_,
		}, d.Pos_)
		if err != nil {
			r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
		}
	}
}

// currentTypeOwner returns the Symbol that owns r.scope (a Type symbol,
// when the current scope came from AddType). Field/Destructor decls only
// ever appear directly inside a type's own scope.
func (r *Registrar) currentTypeOwner() sym.ID {
	scope := r.Graph.Scope(r.scope)
	if scope == nil {
		return sym.NoID
	}
	return scope.Owner
}

func hasField(t *sym.TypeData, name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func toArgs(in []*ast.ArgDecl) []*sym.Arg {
	out := make([]*sym.Arg, len(in))
	for i, a := range in {
		out[i] = &sym.Arg{Name: a.Name, Type: a.Type, HasDefault: a.HasDefExpr, Default: a.DefExpr, Pos: a.Pos_}
	}
	return out
}

// walkClass handles the runtime module's three well-known classes: inside
// the runtime module, `class string` and
// `class Error` bind to the compiler's pre-existing handles instead of
// creating new Type symbols; `class Vec` creates a symbol as normal but is
// additionally recorded as r.VecSym.
func (r *Registrar) walkClass(f *ast.File, d *ast.ClassDecl) {
	isRuntimeMod := f.IsRuntime
	switch {
	case isRuntimeMod && d.Name == "string" && r.Adopt.StringSym != nil:
		d.Sym = r.Adopt.StringSym
		r.scope = r.Adopt.StringSym.OwnScope
		r.walkDecls(f, d.Decls)
		return
	case isRuntimeMod && d.Name == "Error" && r.Adopt.ErrorSym != nil:
		d.Sym = r.Adopt.ErrorSym
		r.scope = r.Adopt.ErrorSym.OwnScope
		r.walkDecls(f, d.Decls)
		return
	}

	base := sym.NoID
	sy, scope, err := r.Graph.AddType(r.scope, d.Vis, d.Name, sym.Class, &sym.TypeData{
		Class: &sym.ClassInfo{Base: base},
	}, d.Pos_)
	if err != nil {
		r.report(errors.RegDuplicateSymbol, err.Error(), d.Pos_)
		return
	}
	d.Sym = sy
	if isRuntimeMod && d.Name == "Vec" {
		r.VecSym = sy
	}
	r.scope = scope
	r.walkDecls(f, d.Decls)
}

// walkExtend resolves an extend target in three steps: a pre-bound
// symbol wins outright, then a single-scope name lookup, then placeholder
// creation. A target that has no bound symbol and is not a NamedType is
// always a single InvalidExtendTarget diagnostic. The resolved or created
// symbol is recorded on d.ResolvedSym.
func (r *Registrar) walkExtend(f *ast.File, d *ast.ExtendDecl) {
	if resolved, ok := d.ResolvedSym.(*sym.Symbol); ok && resolved != nil {
		r.scope = resolved.OwnScope
		r.walkDecls(f, d.Decls)
		return
	}
	if rt, ok := d.Target.(*ast.ResolvedType); ok {
		if resolved, ok := rt.Sym.(*sym.Symbol); ok && resolved != nil {
			r.scope = resolved.OwnScope
			r.walkDecls(f, d.Decls)
			return
		}
	}
	named, ok := d.Target.(*ast.NamedType)
	if !ok {
		r.report(errors.RegInvalidExtendTarget, "invalid type `"+typeExprString(d.Target)+"` to extend", d.Pos_)
		return
	}
	if scope := r.Graph.Scope(r.scope); scope != nil {
		if id, found := scope.Lookup(named.Name); found {
			existing := r.Graph.Symbol(id)
			d.ResolvedSym = existing
			r.scope = existing.OwnScope
			r.walkDecls(f, d.Decls)
			return
		}
	}
	placeholder, scope := r.Graph.AddPlaceholder(r.scope, named.Name, d.Pos_)
	d.ResolvedSym = placeholder
	r.scope = scope
	r.walkDecls(f, d.Decls)
}

func typeExprString(t ast.TypeExpr) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

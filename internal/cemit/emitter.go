// Package cemit lowers the typed IR (package ir) into C99 source text.
// The emitter accumulates output in five separate buffers — typedefs,
// types, protos, statics, out — and concatenates them in a fixed section
// order at the end, so declarations land in the right section no matter
// what order the walk discovers them in.
package cemit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/errors"
	"github.com/rivet-lang/rivetcore/internal/ir"
	"github.com/rivet-lang/rivetcore/internal/mangle"
	"github.com/rivet-lang/rivetcore/internal/target"
)

// Emitter accumulates a generated C translation unit. Zero value is not
// usable; construct with New.
type Emitter struct {
	typedefs strings.Builder
	types    strings.Builder
	protos   strings.Builder
	statics  strings.Builder
	out      strings.Builder

	// arrWrapped tracks, per mangled array-type name, whether its _Ret
	// wrapper struct has already been written to types. Keyed by name
	// rather than by *ir.Array value identity so repeated occurrences of
	// the same array type across many functions share one wrapper.
	arrWrapped map[string]bool

	// EntryPoint is the mangled name of the function generated main()
	// calls. Defaults to the mangled name of a module-level `main`
	// function; override it when the program's entry point lives
	// elsewhere.
	EntryPoint string
}

// New returns a ready-to-use Emitter whose entry point is the mangled
// name of a module-level `main` function.
func New() *Emitter {
	return &Emitter{
		arrWrapped: make(map[string]bool),
		EntryPoint: mangle.Path([]string{"main"}, mangle.RoleFunction),
	}
}

// NewForTarget returns an Emitter whose EntryPoint is the mangled `main`
// of the package named in the compiler's prefs.
func NewForTarget(p *target.Prefs) *Emitter {
	e := New()
	e.EntryPoint = mangle.Path([]string{p.PkgName, "main"}, mangle.RoleFunction)
	return e
}

// EmitModule lowers an entire ir.IRModule into the emitter's buffers. It
// may be called only once per Emitter. Malformed IR (a top-level decl of
// an unknown shape, an unknown instruction kind) is a compiler bug and
// panics with a GEN### report; well-formed IR never triggers that.
func (e *Emitter) EmitModule(mod *ir.IRModule) {
	for _, td := range mod.Types {
		e.emitTypeDecl(td)
	}
	for _, ext := range mod.Externs {
		e.emitExtern(ext)
	}
	for _, st := range mod.Statics {
		e.emitStatic(st)
	}
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ir.VTable:
			e.emitVTable(decl)
		case *ir.FnDecl:
			e.emitFnDecl(decl)
		default:
			panic(errors.WrapReport(errors.New("emit", errors.GenMalformedIR,
				fmt.Sprintf("malformed IR: unknown top-level decl %T", d), ast.Pos{})))
		}
	}
}

// Output concatenates the buffers in the fixed section order: HEADER,
// typedefs, types, prototypes, statics, runtime shim, function bodies,
// trailing main.
func (e *Emitter) Output() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	b.WriteString(e.typedefs.String())
	b.WriteString("\n")
	b.WriteString(e.types.String())
	b.WriteString("\n")
	b.WriteString(e.protos.String())
	b.WriteString("\n")
	b.WriteString(e.statics.String())
	b.WriteString("\n")
	b.WriteString(runtimeShim)
	b.WriteString("\n")
	b.WriteString(e.out.String())
	b.WriteString(e.mainText())
	return b.String()
}

// WriteToFile writes the generated source to path, truncating or
// creating it as needed. It writes to a sibling temp file first and
// renames into place so a failure partway through never leaves a
// half-written output file on disk.
func (e *Emitter) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cemit-*.c.tmp")
	if err != nil {
		return fmt.Errorf("cemit: create temp output: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(e.Output()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cemit: write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cemit: close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cemit: rename output into place: %w", err)
	}
	return nil
}

// Command rivetcore is a small demonstration driver for the registrar and
// the C emitter. The full compiler driver (parser, typechecker, lowering,
// C toolchain invocation) lives elsewhere; this command wires a hand-built
// AST through the registrar and a hand-built IR module through the
// emitter, the two components this module actually owns, and prints the
// resulting diagnostics and generated C.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/cemit"
	"github.com/rivet-lang/rivetcore/internal/errors"
	"github.com/rivet-lang/rivetcore/internal/ir"
	"github.com/rivet-lang/rivetcore/internal/mangle"
	"github.com/rivet-lang/rivetcore/internal/register"
	"github.com/rivet-lang/rivetcore/internal/sym"
	"github.com/rivet-lang/rivetcore/internal/target"
)

var (
	Version = "dev"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		prefsPath   = flag.String("prefs", "", "Path to a prefs YAML file (defaults to gcc/main/out.c)")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch command := flag.Arg(0); command {
	case "demo":
		runDemo(*prefsPath)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("rivetcore %s\n", bold(Version))
	fmt.Println("Symbol registrar and C emitter for the Rivet-to-C backend")
}

func printHelp() {
	fmt.Println(bold("rivetcore - registrar and C emitter demonstration driver"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rivetcore <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s   Register and emit a built-in sample module, printing the generated C\n", cyan("demo"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version      Print version information")
	fmt.Println("  --help         Show this help message")
	fmt.Println("  --prefs <path> Load a target prefs YAML file instead of the gcc/main default")
}

// runDemo registers a small sample program (a Point struct and a main
// function) against a fresh symbol graph, then emits a hand-built IR
// module implementing an equivalent main() that returns 0. There is no
// ast-to-ir lowering pass in this module (type checking and lowering are
// external collaborators); the two trees below are built independently to
// exercise register and cemit on a common name.
func runDemo(prefsPath string) {
	prefs := target.Default()
	if prefsPath != "" {
		p, err := target.Load(prefsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		prefs = p
	}

	reporter := &errors.CollectingReporter{}
	g := sym.NewGraph()
	modID, modScope := g.NewModule(prefs.PkgName, false, ast.Pos{})
	modSym := g.Symbol(modID)

	file := &ast.File{
		Path: "demo.ri",
		Decls: []ast.Decl{
			&ast.StructDecl{
				Vis:  ast.Pub,
				Name: "Point",
				Decls: []ast.Decl{
					&ast.FieldDecl{Name: "x", Vis: ast.Pub, Type: &ast.NamedType{Name: "i32"}},
					&ast.FieldDecl{Name: "y", Vis: ast.Pub, Type: &ast.NamedType{Name: "i32"}},
				},
			},
			&ast.FnDecl{
				Vis:     ast.Pub,
				Name:    "main",
				HasBody: true,
				Ret:     &ast.NamedType{Name: "i32"},
			},
		},
	}

	r := register.New(g, reporter, &ast.NamedType{Name: "void"})
	r.WalkFiles([]register.SourceFile{{File: file, ModuleSym: modSym}})

	reportDiagnostics(reporter)

	mainID, ok := g.Scope(modScope).Lookup("main")
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: registrar did not bind `main`\n", red("Error"))
		os.Exit(1)
	}
	entryName := mangle.Symbol(g, g.Symbol(mainID))

	e := cemit.NewForTarget(prefs)
	mod := &ir.IRModule{
		Types: []*ir.TypeDecl{
			{
				Kind: ir.StructRecordKind,
				Name: mangle.PathNoRole([]string{prefs.PkgName, "Point"}),
				Fields: []ir.Field{
					{Name: "x", Type: &ir.Primitive{Name: "i32", Bits: 32}},
					{Name: "y", Type: &ir.Primitive{Name: "i32", Bits: 32}},
				},
			},
		},
		Decls: []ir.TopDecl{
			&ir.FnDecl{
				Name:     entryName,
				IsPublic: true,
				Ret:      &ir.Primitive{Name: "i32", Bits: 32},
				Blocks: []*ir.BasicBlock{{Instrs: []*ir.Instr{
					{Kind: ir.Ret, Args: []ir.Value{
						&ir.IntLiteral{Lit: "0", Value: 0, Type: &ir.Primitive{Name: "i32", Bits: 32}},
					}},
				}}},
			},
		},
	}

	e.EmitModule(mod)
	fmt.Println(e.Output())
}

func reportDiagnostics(reporter *errors.CollectingReporter) {
	if len(reporter.Reports) == 0 {
		fmt.Println(green("no diagnostics"))
		return
	}
	for _, rep := range reporter.Reports {
		fmt.Printf("%s %s: %s\n", yellow(rep.Code), bold(rep.Phase), rep.Message)
	}
}

// Package target defines the compiler-prefs/target descriptor the
// emitter consumes: the package name the generated `main` dispatches to,
// the output path, and which downstream C toolchain the translation unit
// is handed to.
package target

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CToolchain names the downstream C compiler the generated translation
// unit targets. The emitted C is portable C99, so the choice only affects
// how the driver invokes the compiler, not what this module emits.
type CToolchain string

const (
	GCC   CToolchain = "gcc"
	Clang CToolchain = "clang"
	MSVC  CToolchain = "msvc"
	TCC   CToolchain = "tcc"
)

// Prefs is the target descriptor, loadable from a YAML file.
type Prefs struct {
	PkgName    string     `yaml:"pkg_name"`
	OutPath    string     `yaml:"out_path"`
	CToolchain CToolchain `yaml:"c_toolchain"`
	OptLevel   int        `yaml:"opt_level"` // recorded for the driver; no optimization pass lives in this module
}

// Default returns the prefs used when the driver supplies none.
func Default() *Prefs {
	return &Prefs{PkgName: "main", OutPath: "out.c", CToolchain: GCC}
}

// Load reads and validates a prefs file.
func Load(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prefs file: %w", err)
	}

	var prefs Prefs
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Validate checks required fields and fills in defaulted ones.
func (p *Prefs) Validate() error {
	if p.PkgName == "" {
		return fmt.Errorf("prefs missing required field: pkg_name")
	}
	if p.OutPath == "" {
		p.OutPath = "out.c"
	}
	switch p.CToolchain {
	case "":
		p.CToolchain = GCC
	case GCC, Clang, MSVC, TCC:
	default:
		return fmt.Errorf("prefs has unknown c_toolchain: %q", p.CToolchain)
	}
	return nil
}

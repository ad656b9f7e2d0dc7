// Package mangle implements the compiler's C name-mangling scheme and
// the fixed C reserved-word escaping rule. Every
// user-facing symbol the emitter writes out is mangled through here; no
// unmangled user identifier is ever emitted directly.
package mangle

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rivet-lang/rivetcore/internal/sym"
)

// normalizeSeg applies Unicode NFC normalization so that two spellings
// of the same identifier that differ only in
// composed-vs-decomposed form (e.g. combining-diacritic field names) mangle
// to byte-identical C identifiers. IsNormal is checked first since it is
// allocation-free for the overwhelmingly common ASCII case.
func normalizeSeg(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Role is the trailing single-letter suffix appended to a mangled name.
type Role byte

const (
	RoleFunction  Role = 'F'
	RoleMethod    Role = 'M'
	RoleGenerated Role = 'Z'
)

// Path mangles an ordered sequence of path segments (outermost first)
// plus a trailing role suffix into a `_R<len>seg<len>seg...<role>` C
// identifier.
func Path(segments []string, role Role) string {
	var b strings.Builder
	b.WriteString("_R")
	for _, seg := range segments {
		seg = normalizeSeg(seg)
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteString(seg)
	}
	b.WriteByte(byte(role))
	return b.String()
}

// PathNoRole mangles path segments without a trailing role suffix, used
// for type names (structs/unions/aliases), which carry no F/M/Z marker.
func PathNoRole(segments []string) string {
	var b strings.Builder
	b.WriteString("_R")
	for _, seg := range segments {
		seg = normalizeSeg(seg)
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteString(seg)
	}
	return b.String()
}

// cReserved is the fixed C/C++ reserved-word set that must be escaped
// when it appears as a user-defined field, argument or local name.
// `small`/`complex`/`template`/`typename`/`namespace`/`unix` are
// included for platform-header and C++ collisions, not because C itself
// reserves them.
var cReserved = map[string]bool{
	"auto": true, "bool": true, "break": true, "case": true, "char": true,
	"class": true, "complex": true, "const": true, "continue": true,
	"default": true, "delete": true, "do": true, "double": true, "else": true,
	"enum": true, "export": true, "extern": true, "false": true, "float": true,
	"for": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "namespace": true, "new": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "typename": true, "union": true, "unix": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"template": true, "true": true, "small": true,
}

// Escape prefixes name with `_ri_` if it collides with the C reserved set,
// otherwise returns it unchanged.
func Escape(name string) string {
	if cReserved[name] {
		return "_ri_" + name
	}
	return name
}

// IsReserved reports whether name is in the fixed C reserved-word set.
func IsReserved(name string) bool {
	return cReserved[name]
}

// Symbol computes a symbol's mangled C name by walking its path through
// the graph; nothing is cached. Fn symbols get RoleFunction or
// RoleMethod; every other symbol (Module, Type, ...) gets the
// length-prefixed path with no role suffix; generated (compiler-synthesized) names use RoleGenerated
// via GeneratedPath instead of this function.
func Symbol(g *sym.Graph, s *sym.Symbol) string {
	segments := pathSegments(g, s)
	switch s.Kind {
	case sym.KindFn:
		if s.Fn != nil && s.Fn.IsMethod {
			return Path(segments, RoleMethod)
		}
		return Path(segments, RoleFunction)
	default:
		return PathNoRole(segments)
	}
}

// GeneratedPath mangles a compiler-synthesized name (runtime shim
// functions, etc.) with the `Z` role suffix.
func GeneratedPath(segments ...string) string {
	return Path(segments, RoleGenerated)
}

func pathSegments(g *sym.Graph, s *sym.Symbol) []string {
	if s == nil {
		return nil
	}
	scope := g.Scope(s.Scope)
	if scope == nil || scope.Owner == sym.NoID {
		return []string{s.Name}
	}
	owner := g.Symbol(scope.Owner)
	return append(pathSegments(g, owner), s.Name)
}

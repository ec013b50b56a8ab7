package symbol

import (
	"path/filepath"
	"strings"

	"github.com/ianlancetaylor/demangle"

	"github.com/justapithecus/faultline/types"
)

// Resolver resolves code addresses to display-ready symbol info.
type Resolver struct {
	table Table
}

// NewResolver creates a resolver over the given table.
func NewResolver(table Table) *Resolver {
	return &Resolver{table: table}
}

// NewRuntimeResolver creates a resolver over the running binary.
func NewRuntimeResolver() *Resolver {
	return NewResolver(NewRuntimeTable())
}

// Resolve maps addr to symbol info, or nil when the address belongs to no
// known symbol. A nil result is a normal outcome, not an error; the trace
// renders it as a placeholder.
//
// The module name is reduced to its final path component for display.
// Demangling is best-effort: attempted only for names recognized as
// encoded, with the raw name kept on any failure.
func (r *Resolver) Resolve(addr uintptr) *types.Symbol {
	s, ok := r.table.Lookup(addr)
	if !ok {
		return nil
	}
	out := &types.Symbol{
		Name:  s.Name,
		Start: s.Start,
	}
	if s.Module != "" {
		out.Module = filepath.Base(s.Module)
	}
	if name, ok := Demangle(s.Name); ok {
		out.Demangled = name
	}
	return out
}

// ResolveAll annotates each return address with symbol info, preserving order.
func (r *Resolver) ResolveAll(pcs []uintptr) []types.Frame {
	frames := make([]types.Frame, len(pcs))
	for i, pc := range pcs {
		frames[i] = types.Frame{PC: pc, Symbol: r.Resolve(pc)}
	}
	return frames
}

// Demangle converts an Itanium-mangled name to its human-readable form.
// Returns false for names that are not recognized as encoded or that fail
// to demangle; callers then use the raw name unmodified. Pure and total:
// never panics, never errors upward.
func Demangle(name string) (string, bool) {
	if !strings.HasPrefix(name, "_Z") && !strings.HasPrefix(name, "__Z") {
		return "", false
	}
	// Apple tools prefix an extra underscore.
	trimmed := strings.TrimPrefix(name, "_")
	if !strings.HasPrefix(trimmed, "_Z") {
		trimmed = name
	}
	out, err := demangle.ToString(trimmed)
	if err != nil || out == trimmed {
		return "", false
	}
	return out, true
}

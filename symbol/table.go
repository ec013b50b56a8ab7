// Package symbol maps code addresses to the nearest preceding symbol,
// its owning module, and a byte offset, with best-effort demangling.
package symbol

import (
	"os"
	"runtime"
	"sort"
)

// Sym is one symbol table entry: a named location with a known start.
type Sym struct {
	// Module is the path of the module containing the symbol.
	Module string
	// Name is the raw symbol name.
	Name string
	// Start is the symbol's start address.
	Start uintptr
}

// Table finds the nearest symbol at or below an address.
type Table interface {
	// Lookup returns the symbol containing addr, or false when the
	// address belongs to no known symbol.
	Lookup(addr uintptr) (Sym, bool)
}

// RuntimeTable resolves addresses through the running binary's own
// function metadata. The module is the executable path, captured once at
// construction so the crash path never touches the filesystem.
type RuntimeTable struct {
	exe string
}

// NewRuntimeTable creates a table over the current binary.
func NewRuntimeTable() *RuntimeTable {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	return &RuntimeTable{exe: exe}
}

// Lookup resolves addr against the binary's function metadata.
func (t *RuntimeTable) Lookup(addr uintptr) (Sym, bool) {
	fn := runtime.FuncForPC(addr)
	if fn == nil {
		return Sym{}, false
	}
	return Sym{Module: t.exe, Name: fn.Name(), Start: fn.Entry()}, true
}

// StaticTable is a sorted, fixed symbol table. Used to register address
// ranges the runtime knows nothing about (cgo text, mapped blobs) and as
// the deterministic table for tests.
type StaticTable struct {
	syms []Sym
	// limit, when non-zero, is the exclusive upper bound of the covered
	// range; addresses at or above it miss.
	limit uintptr
}

// NewStaticTable builds a table from entries, sorting by start address.
// Pass limit 0 for an unbounded table.
func NewStaticTable(entries []Sym, limit uintptr) *StaticTable {
	syms := make([]Sym, len(entries))
	copy(syms, entries)
	sort.Slice(syms, func(i, j int) bool { return syms[i].Start < syms[j].Start })
	return &StaticTable{syms: syms, limit: limit}
}

// Lookup returns the entry with the greatest start at or below addr.
func (t *StaticTable) Lookup(addr uintptr) (Sym, bool) {
	if len(t.syms) == 0 || addr < t.syms[0].Start {
		return Sym{}, false
	}
	if t.limit != 0 && addr >= t.limit {
		return Sym{}, false
	}
	// First entry with Start > addr; the one before it is the hit.
	i := sort.Search(len(t.syms), func(i int) bool { return t.syms[i].Start > addr })
	return t.syms[i-1], true
}

// ChainTable consults tables in order and returns the first hit.
type ChainTable []Table

// Lookup returns the first table's hit, or false when all miss.
func (c ChainTable) Lookup(addr uintptr) (Sym, bool) {
	for _, t := range c {
		if s, ok := t.Lookup(addr); ok {
			return s, true
		}
	}
	return Sym{}, false
}

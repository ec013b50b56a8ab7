package types

// Symbol is the result of resolving a code address against a symbol table.
// Derived on demand per frame during capture; never cached (one-shot path).
type Symbol struct {
	// Module is the display name of the module containing the address
	// (final path component only).
	Module string `msgpack:"module" json:"module"`
	// Name is the raw symbol name as found in the table.
	Name string `msgpack:"name" json:"name"`
	// Demangled is the human-readable name, when the raw name was
	// recognized as encoded and demangling succeeded. Empty otherwise.
	Demangled string `msgpack:"demangled,omitempty" json:"demangled,omitempty"`
	// Start is the address at which the symbol begins.
	Start uintptr `msgpack:"start" json:"start"`
}

// DisplayName returns the demangled name when available, the raw name
// otherwise.
func (s *Symbol) DisplayName() string {
	if s.Demangled != "" {
		return s.Demangled
	}
	return s.Name
}

// Frame is one stack entry: a return address plus optional symbol info.
// Produced transiently during unwinding; persisted only as text and as the
// crash.meta sidecar record.
type Frame struct {
	// PC is the return address for this frame.
	PC uintptr `msgpack:"pc" json:"pc"`
	// Symbol is the resolved symbol, nil when resolution missed.
	Symbol *Symbol `msgpack:"symbol,omitempty" json:"symbol,omitempty"`
}

// Offset is the signed distance from the symbol start to the frame address.
// Signed because corrupted data can produce addresses below the nearest
// known symbol.
func (f *Frame) Offset() int64 {
	if f.Symbol == nil {
		return 0
	}
	return int64(f.PC) - int64(f.Symbol.Start)
}

package report

import "github.com/justapithecus/faultline/types"

// DefaultCapacity is the default report buffer capacity (64 KiB, matching
// the size crash reports have historically fit in with room to spare).
const DefaultCapacity = 64 * 1024

// moduleFieldWidth is the minimum width of the module column in trace lines.
const moduleFieldWidth = 20

// unknownModule is rendered when a frame resolves to no module.
const unknownModule = "???"

// Section is a collaborator-supplied report section. Sections are emitted
// after the three fixed sections, in registration order, and are treated
// as opaque text blocks.
type Section interface {
	// Name is the section heading (rendered followed by ":\n").
	Name() string
	// Emit writes the section body into the bounded buffer.
	Emit(buf *Buffer)
}

// SectionFunc adapts a function to the Section interface.
type SectionFunc struct {
	// Title is the section heading.
	Title string
	// Fn writes the section body.
	Fn func(buf *Buffer)
}

// Name returns the section heading.
func (s SectionFunc) Name() string { return s.Title }

// Emit writes the section body.
func (s SectionFunc) Emit(buf *Buffer) { s.Fn(buf) }

// Builder composes a crash report into a single bounded buffer.
//
// Section order is a stable external contract: environment, cause,
// stacktrace, then collaborator sections in registration order. External
// tooling parses this layout; do not reorder.
type Builder struct {
	buf     *Buffer
	envText string
	extra   []Section
}

// NewBuilder creates a builder with a buffer of the given capacity.
// Pass 0 for DefaultCapacity. The buffer is allocated once, up front.
func NewBuilder(capacity int) *Builder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Builder{buf: NewBuffer(capacity)}
}

// SetEnvironment sets the pre-rendered environment section body.
// Render this at install time; the handler must not gather host info after
// a fault.
func (b *Builder) SetEnvironment(text string) { b.envText = text }

// AddSection registers a collaborator section, appended after the three
// fixed sections.
func (b *Builder) AddSection(s Section) { b.extra = append(b.extra, s) }

// Truncated reports whether composition hit buffer capacity.
func (b *Builder) Truncated() bool { return b.buf.Truncated() }

// Compose writes the full report and returns the buffer content.
// The returned slice aliases the builder's buffer; copy before reuse.
func (b *Builder) Compose(sig types.SignalInfo, message string, frames []types.Frame) []byte {
	b.buf.Reset()
	b.writeEnvironment()
	b.writeCause(sig, message)
	b.writeStacktrace(frames)
	for _, s := range b.extra {
		b.buf.AppendString(s.Name())
		b.buf.AppendString(":\n")
		s.Emit(b.buf)
		b.buf.AppendByte('\n')
	}
	return b.buf.Bytes()
}

func (b *Builder) writeEnvironment() {
	b.buf.AppendString("Operating system:\n")
	b.buf.AppendString(b.envText)
	if b.envText == "" || b.envText[len(b.envText)-1] != '\n' {
		b.buf.AppendByte('\n')
	}
	b.buf.AppendByte('\n')
}

func (b *Builder) writeCause(sig types.SignalInfo, message string) {
	b.buf.AppendString("Crash reason:\n Signal:  ")
	b.buf.AppendString(sig.Name)
	b.buf.AppendString(" (")
	b.buf.AppendInt(int64(sig.Number))
	b.buf.AppendString(")\n Message: ")
	b.buf.AppendString(message)
	b.buf.AppendString("\n\n")
}

// writeStacktrace emits one line per frame:
//
//	[NN] module               0x... (name + offset)
//
// The symbol suffix is omitted for unresolved frames. Offsets are signed:
// garbage addresses can land below the nearest known symbol.
func (b *Builder) writeStacktrace(frames []types.Frame) {
	b.buf.AppendString("Stacktrace:\n")
	for i, f := range frames {
		b.buf.AppendString(" [")
		b.buf.AppendUint(uint64(i), 2)
		b.buf.AppendString("] ")

		module := unknownModule
		if f.Symbol != nil && f.Symbol.Module != "" {
			module = f.Symbol.Module
		}
		b.buf.AppendPadded(module, moduleFieldWidth)
		b.buf.AppendByte(' ')
		b.buf.AppendHex(uint64(f.PC), PtrHexDigits)

		if f.Symbol != nil && f.Symbol.Name != "" {
			b.buf.AppendString(" (")
			b.buf.AppendString(f.Symbol.DisplayName())
			b.buf.AppendString(" + ")
			b.buf.AppendInt(f.Offset())
			b.buf.AppendByte(')')
		}
		b.buf.AppendByte('\n')
	}
	b.buf.AppendByte('\n')
}

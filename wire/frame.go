// Package wire implements the crash.meta sidecar framing: length-prefixed
// msgpack frames carrying the machine-readable capture record.
//
// The sidecar sits next to the text report inside a crash bundle and is
// read back by the CLI and the archive pipeline. External tooling may parse
// it, so the frame shape is contractually stable.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/justapithecus/faultline/types"
)

// Frame size constants.
const (
	// MaxFrameSize is the maximum sidecar frame size (1 MiB), including
	// the length prefix. Capture records are small; anything larger is
	// corruption.
	MaxFrameSize = 1 * 1024 * 1024
	// MaxPayloadSize is the maximum payload size.
	MaxPayloadSize = MaxFrameSize - LengthPrefixSize
	// LengthPrefixSize is the size of the big-endian length prefix.
	LengthPrefixSize = 4
)

// FrameErrorKind classifies frame decoding errors.
type FrameErrorKind int

const (
	// FrameErrorPartial indicates a truncated or incomplete frame.
	FrameErrorPartial FrameErrorKind = iota
	// FrameErrorTooLarge indicates a frame exceeding MaxFrameSize.
	FrameErrorTooLarge
	// FrameErrorDecode indicates a msgpack decoding error.
	FrameErrorDecode
	// FrameErrorType indicates an unexpected frame type discriminant.
	FrameErrorType
)

// FrameError represents a frame decoding error.
type FrameError struct {
	Kind FrameErrorKind
	Msg  string
	Err  error
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsFrameError returns the typed frame error when err is one.
func IsFrameError(err error) (*FrameError, bool) {
	var frameErr *FrameError
	if errors.As(err, &frameErr) {
		return frameErr, true
	}
	return nil, false
}

// EncodeMeta encodes a capture record as a length-prefixed msgpack frame.
// The Type and ContractVersion discriminants are stamped here so callers
// cannot write an untagged sidecar.
func EncodeMeta(meta *types.CaptureMeta) ([]byte, error) {
	meta.Type = types.CaptureMetaType
	if meta.ContractVersion == "" {
		meta.ContractVersion = types.Version
	}

	payload, err := msgpack.Marshal(meta)
	if err != nil {
		return nil, &FrameError{Kind: FrameErrorDecode, Msg: "failed to encode capture meta", Err: err}
	}
	if len(payload) > MaxPayloadSize {
		return nil, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", len(payload), MaxPayloadSize),
		}
	}

	frame := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(frame[:LengthPrefixSize], uint32(len(payload)))
	copy(frame[LengthPrefixSize:], payload)
	return frame, nil
}

// WriteMeta writes one sidecar frame to w.
func WriteMeta(w io.Writer, meta *types.CaptureMeta) error {
	frame, err := EncodeMeta(meta)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// FrameDecoder decodes length-prefixed msgpack frames from a stream.
type FrameDecoder struct {
	reader io.Reader
}

// NewFrameDecoder creates a new frame decoder.
func NewFrameDecoder(r io.Reader) *FrameDecoder {
	return &FrameDecoder{reader: r}
}

// ReadFrame reads a single frame from the stream.
// Returns the raw payload bytes (msgpack-encoded).
//
// Errors:
//   - io.EOF: stream ended cleanly (no more frames)
//   - *FrameError with Kind=FrameErrorPartial: incomplete frame
//   - *FrameError with Kind=FrameErrorTooLarge: frame exceeds limit
func (d *FrameDecoder) ReadFrame() ([]byte, error) {
	var lengthBuf [LengthPrefixSize]byte
	_, err := io.ReadFull(d.reader, lengthBuf[:])
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read length prefix",
			Err:  err,
		}
	}

	payloadSize := binary.BigEndian.Uint32(lengthBuf[:])
	if payloadSize > MaxPayloadSize {
		return nil, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", payloadSize, MaxPayloadSize),
		}
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(d.reader, payload); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read payload",
			Err:  err,
		}
	}

	return payload, nil
}

// frameTypeProbe peeks at the type field without a full decode.
type frameTypeProbe struct {
	Type string `msgpack:"type"`
}

// DecodeMeta decodes a payload as a capture record, rejecting frames whose
// type discriminant is not "crash_meta".
func DecodeMeta(payload []byte) (*types.CaptureMeta, error) {
	var probe frameTypeProbe
	if err := msgpack.Unmarshal(payload, &probe); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode frame type",
			Err:  err,
		}
	}
	if probe.Type != types.CaptureMetaType {
		return nil, &FrameError{
			Kind: FrameErrorType,
			Msg:  fmt.Sprintf("unexpected frame type %q", probe.Type),
		}
	}

	var meta types.CaptureMeta
	if err := msgpack.Unmarshal(payload, &meta); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode capture meta",
			Err:  err,
		}
	}
	return &meta, nil
}

// ReadMetaFile reads the sidecar frame from a crash.meta file.
func ReadMetaFile(path string) (*types.CaptureMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	payload, err := NewFrameDecoder(f).ReadFrame()
	if err != nil {
		return nil, err
	}
	return DecodeMeta(payload)
}

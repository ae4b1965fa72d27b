package sane

import (
	"io"
	"strings"
)

// stream is a thin wrapper around a transport that gives exact-read and
// exact-write semantics for the SANE control-RPC wire format. It does not
// own the underlying connection; callers close that separately.
//
// Cyclic references from the source this protocol is modeled on (inner
// codec classes pointing back at the enclosing session) are avoided here:
// stream only borrows r/w, it never holds a reference to the session.
type stream struct {
	r io.Reader
	w io.Writer
}

func newStream(rw io.ReadWriter) *stream {
	return &stream{r: rw, w: rw}
}

func (s *stream) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, wrapErr(KindTruncatedStream, "short read", err)
		}
		return nil, wrapErr(KindIO, "read", err)
	}
	return buf, nil
}

func (s *stream) writeExact(b []byte) error {
	if _, err := s.w.Write(b); err != nil {
		return wrapErr(KindIO, "write", err)
	}
	return nil
}

// readWord reads one SaneWord from the stream (§4.1). A short read fails
// with KindTruncatedStream.
func (s *stream) readWord() (int32, error) {
	b, err := s.readExact(wordSize)
	if err != nil {
		return 0, err
	}
	return DecodeWord(b), nil
}

func (s *stream) writeWord(v int32) error {
	return s.writeExact(EncodeInt(v))
}

// writeString encodes text as a SaneString (§4.2). An embedded NUL byte is
// rejected with KindInvalidArgument.
//
// Empty text is a documented asymmetry: it is written as a single zero
// byte with no length prefix, while readString always expects a leading
// length word. This mirrors the protocol exactly; it is not a bug this
// package papers over (see DESIGN.md).
func (s *stream) writeString(text string) error {
	if strings.IndexByte(text, 0) >= 0 {
		return newErr(KindInvalidArgument, "string contains a NUL byte")
	}
	if text == "" {
		return s.writeExact([]byte{0})
	}
	if err := s.writeWord(int32(len(text) + 1)); err != nil {
		return err
	}
	if err := s.writeExact([]byte(text)); err != nil {
		return err
	}
	return s.writeExact([]byte{0})
}

// readString decodes a SaneString (§4.2). L=0 denotes an absent string and
// decodes to "". Otherwise L-1 leading bytes (the text) are returned,
// discarding the trailing NUL terminator.
func (s *stream) readString() (string, error) {
	l, err := s.readWord()
	if err != nil {
		return "", err
	}
	if l == 0 {
		return "", nil
	}
	b, err := s.readExact(int(l))
	if err != nil {
		return "", err
	}
	return string(b[:len(b)-1]), nil
}

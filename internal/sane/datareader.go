package sane

import (
	"io"
)

// recordSentinel terminates a frame's record stream: 0xFFFFFFFF (spec §4.5).
const recordSentinel uint32 = 0xFFFFFFFF

// maxRecordLen bounds a single record's payload so a corrupt length prefix
// can't force an unbounded allocation. The spec requires "the
// implementation's maximum contiguous buffer (>= 2^31)"; this
// implementation draws the line at 2^31 bytes.
const maxRecordLen uint32 = 1 << 31

// readFrame consumes the record-framed byte stream for one frame from r
// until the sentinel, and returns the assembled Frame.
//
// Records are transport-level fragmentation only: their boundaries are
// never treated as pixel boundaries. The sum of payload lengths must equal
// params.BytesPerLine*params.LineCount.
func readFrame(r io.Reader, params FrameParams) (Frame, error) {
	want := int64(params.BytesPerLine) * int64(params.LineCount)
	buf := make([]byte, 0, want)

	for {
		lenBytes := make([]byte, wordSize)
		if _, err := io.ReadFull(r, lenBytes); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Frame{}, wrapErr(KindTruncatedStream, "short read of record length", err)
			}
			return Frame{}, wrapErr(KindIO, "read record length", err)
		}
		length := decodeUint32(lenBytes)
		if length == recordSentinel {
			break
		}
		if length > maxRecordLen {
			return Frame{}, newErr(KindProtocolOverflow, "record length exceeds maximum contiguous buffer")
		}
		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Frame{}, wrapErr(KindTruncatedStream, "short read inside record payload", err)
			}
			return Frame{}, wrapErr(KindIO, "read record payload", err)
		}
		buf = append(buf, payload...)
	}

	if int64(len(buf)) != want {
		return Frame{}, newErr(KindTruncatedStream, "record payloads do not sum to bytes_per_line*line_count")
	}
	return Frame{Params: params, Data: buf}, nil
}

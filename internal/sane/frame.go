package sane

import "fmt"

// FrameType identifies the kind of raster data a frame carries. Numeric
// values match the SANE wire encoding (spec §3).
type FrameType int32

const (
	FrameGray  FrameType = 0
	FrameRGB   FrameType = 1
	FrameRed   FrameType = 2
	FrameGreen FrameType = 3
	FrameBlue  FrameType = 4
)

func (t FrameType) String() string {
	switch t {
	case FrameGray:
		return "gray"
	case FrameRGB:
		return "rgb"
	case FrameRed:
		return "red"
	case FrameGreen:
		return "green"
	case FrameBlue:
		return "blue"
	default:
		return fmt.Sprintf("frame(%d)", int32(t))
	}
}

// isSingleton reports whether t by itself constitutes a complete image
// (GRAY or RGB), as opposed to one plane of a multi-frame RGB acquisition.
func (t FrameType) isSingleton() bool {
	return t == FrameGray || t == FrameRGB
}

// FrameParams describes the geometry of one frame, as returned by
// GET_PARAMETERS (spec §3).
type FrameParams struct {
	Type          FrameType
	IsLast        bool
	BytesPerLine  int32
	PixelsPerLine int32
	LineCount     int32
	Depth         int32
}

// Frame is a FrameParams plus its raw pixel buffer, which must be exactly
// BytesPerLine*LineCount bytes long (spec §3).
type Frame struct {
	Params FrameParams
	Data   []byte
}

func (s *stream) readFrameParams() (FrameParams, error) {
	frameType, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	isLast, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	bpl, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	ppl, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	lines, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	depth, err := s.readWord()
	if err != nil {
		return FrameParams{}, err
	}
	return FrameParams{
		Type:          FrameType(frameType),
		IsLast:        isLast != 0,
		BytesPerLine:  bpl,
		PixelsPerLine: ppl,
		LineCount:     lines,
		Depth:         depth,
	}, nil
}

package main

import (
	"bufio"
	"fmt"
	"io"

	sane "sane-client/pkg/sane"
)

// writePNM writes r to w as a raw (binary) PNM file: P4 (bitmap) for
// ColorModelBinary, P5 (graymap) for ColorModelGray, P6 (pixmap) for
// ColorModelLinearRGB.
//
// PNM is the natural stdlib-only sink for the Raster description: its
// header is a short text preamble over the same sample bytes Raster
// already describes, not a decode into a platform image container, so it
// keeps "conversion to a host GUI image representation" (spec §1
// Non-goals) untouched.
func writePNM(w io.Writer, r *sane.Raster) error {
	bw := bufio.NewWriter(w)

	switch r.ColorModel {
	case sane.ColorModelBinary:
		if _, err := fmt.Fprintf(bw, "P4\n%d %d\n", r.Width, r.Height); err != nil {
			return err
		}
		if err := writeRows(bw, r.Planes[0], r.Height, r.Stride); err != nil {
			return err
		}

	case sane.ColorModelGray:
		maxVal := 255
		if r.Depth == 16 {
			maxVal = 65535
		}
		if _, err := fmt.Fprintf(bw, "P5\n%d %d\n%d\n", r.Width, r.Height, maxVal); err != nil {
			return err
		}
		if err := writeRows(bw, r.Planes[0], r.Height, r.Stride); err != nil {
			return err
		}

	case sane.ColorModelLinearRGB:
		maxVal := 255
		if r.Depth == 16 {
			maxVal = 65535
		}
		if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", r.Width, r.Height, maxVal); err != nil {
			return err
		}
		if len(r.Planes) == 3 {
			if err := writeBandedRGB(bw, r); err != nil {
				return err
			}
		} else {
			if err := writeRows(bw, r.Planes[0], r.Height, r.Stride); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("saned-client: unsupported color model %v", r.ColorModel)
	}

	return bw.Flush()
}

func writeRows(w io.Writer, plane []byte, height, stride int) error {
	for y := 0; y < height; y++ {
		row := plane[y*stride : y*stride+stride]
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeBandedRGB interleaves three same-stride planes (R, G, B) into the
// triple-per-pixel order PPM requires.
func writeBandedRGB(w io.Writer, r *sane.Raster) error {
	bytesPerSample := r.Depth / 8
	row := make([]byte, r.Width*3*bytesPerSample)
	for y := 0; y < r.Height; y++ {
		off := y * r.Stride
		for x := 0; x < r.Width; x++ {
			for c := 0; c < 3; c++ {
				src := r.Planes[c][off+x*bytesPerSample : off+x*bytesPerSample+bytesPerSample]
				copy(row[(x*3+c)*bytesPerSample:], src)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

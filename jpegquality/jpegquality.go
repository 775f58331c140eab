// Package jpegquality estimates the IJG quality factor a JPEG file was
// encoded at by comparing its luminance quantization table against the
// standard tables from the JPEG spec's Annex K, the same comparison
// libjpeg-derived tools use. The importer uses this to skip a lossy
// recompression pass when a source image is already JPEG at or below the
// target quality, avoiding a needless generation loss.
package jpegquality

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrInvalidJPEG  = errors.New("invalid JPEG header")
	ErrWrongTable   = errors.New("wrong size for quantization table")
	ErrShortSegment = errors.New("short segment length")
	ErrShortDQT     = errors.New("section DQT is too short")
)

const (
	markerSOI = 0xffd8
	markerEOI = 0xffd9
	markerSOS = 0xffda
	markerDQT = 0xffdb
)

// stdLuminance is the Annex K base luminance quantization table at quality 50.
var stdLuminance = [64]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var stdLuminanceSum = func() int {
	sum := 0
	for _, v := range stdLuminance {
		sum += v
	}
	return sum
}()

type jpegReader struct {
	rs io.ReadSeeker
}

// readMarker scans for the next 0xFF marker code, skipping any fill bytes
// (additional 0xFF padding the encoder may have inserted). Returns 0 on EOF.
func (jr *jpegReader) readMarker() uint16 {
	var b [1]byte
	for {
		if _, err := io.ReadFull(jr.rs, b[:]); err != nil {
			return 0
		}
		if b[0] == 0xff {
			break
		}
	}
	for {
		if _, err := io.ReadFull(jr.rs, b[:]); err != nil {
			return 0
		}
		if b[0] != 0xff {
			break
		}
	}
	return 0xff00 | uint16(b[0])
}

// readSegment reads a standard length-prefixed marker segment's payload.
func (jr *jpegReader) readSegment() ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(jr.rs, lenBuf[:]); err != nil {
		return nil, ErrShortSegment
	}
	length := binary.BigEndian.Uint16(lenBuf[:])
	if length < 2 {
		return nil, ErrShortSegment
	}
	payload := make([]byte, length-2)
	if _, err := io.ReadFull(jr.rs, payload); err != nil {
		return nil, ErrShortSegment
	}
	return payload, nil
}

// parseDQT splits a DQT segment's payload into its (possibly several)
// 8x8 quantization tables.
func parseDQT(seg []byte) ([][64]int, error) {
	var tables [][64]int
	i := 0
	for i < len(seg) {
		precision := seg[i] >> 4
		i++
		var tbl [64]int
		if precision == 0 {
			if i+64 > len(seg) {
				return nil, ErrShortDQT
			}
			for k := range tbl {
				tbl[k] = int(seg[i+k])
			}
			i += 64
		} else {
			if i+128 > len(seg) {
				return nil, ErrShortDQT
			}
			for k := range tbl {
				tbl[k] = int(seg[i+2*k])<<8 | int(seg[i+2*k+1])
			}
			i += 128
		}
		tables = append(tables, tbl)
	}
	if len(tables) == 0 {
		return nil, ErrWrongTable
	}
	return tables, nil
}

// Reader estimates the quality a JPEG was encoded at from its quantization
// tables.
type Reader struct {
	tables [][64]int
}

// New scans the JPEG header read from rs for its quantization tables. The
// stream's position afterward is unspecified; callers needing to reuse it
// should seek back to the start.
func New(rs io.ReadSeeker) (*Reader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	jr := &jpegReader{rs: rs}
	if jr.readMarker() != markerSOI {
		return nil, ErrInvalidJPEG
	}

	var tables [][64]int
	for {
		m := jr.readMarker()
		if m == 0 || m == markerEOI || m == markerSOS {
			break
		}
		if m == markerDQT {
			seg, err := jr.readSegment()
			if err != nil {
				return nil, err
			}
			tbls, err := parseDQT(seg)
			if err != nil {
				return nil, err
			}
			tables = append(tables, tbls...)
			continue
		}
		if _, err := jr.readSegment(); err != nil {
			break
		}
	}

	if len(tables) == 0 {
		return nil, ErrShortDQT
	}
	return &Reader{tables: tables}, nil
}

// NewWithBytes is New for an in-memory JPEG.
func NewWithBytes(data []byte) (*Reader, error) {
	return New(bytes.NewReader(data))
}

// Quality estimates the IJG quality factor (1-100) the encoder used,
// derived from how the first (luminance) quantization table scales against
// the Annex K standard table.
func (r *Reader) Quality() int {
	tbl := r.tables[0]
	sum := 0
	for _, v := range tbl {
		sum += v
	}

	scale := 100.0 * float64(sum) / float64(stdLuminanceSum)

	var quality float64
	if scale <= 100 {
		quality = (200 - scale) / 2
	} else {
		quality = 5000 / scale
	}

	switch {
	case quality < 1:
		quality = 1
	case quality > 100:
		quality = 100
	}
	return int(quality + 0.5)
}

package testutil

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	fitsBlock = 2880
	cardSize  = 80
)

// FITSColumn describes one binary-table column of a synthetic light curve
// file. Data returns the big-endian bytes of the column's field in a row.
type FITSColumn struct {
	Name string
	Form string
	Data func(row int) []byte
}

// AppendCard appends s as an 80-byte header card.
func AppendCard(b []byte, s string) []byte {
	c := make([]byte, cardSize)
	for i := range c {
		c[i] = ' '
	}
	copy(c, s)
	return append(b, c...)
}

// PadBlock pads b with spaces to a whole 2880-byte FITS block.
func PadBlock(b []byte) []byte {
	for len(b)%fitsBlock != 0 {
		b = append(b, ' ')
	}
	return b
}

// Card formats a FITS key/value card body.
func Card(key, value string) string {
	return fmt.Sprintf("%-8s= %s", key, value)
}

// F64Field returns v as a big-endian 8-byte column field.
func F64Field(v float64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, math.Float64bits(v))
	return out
}

// F32Field returns v as a big-endian 4-byte column field.
func F32Field(v float64) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, math.Float32bits(float32(v)))
	return out
}

// I32Field returns v as a big-endian 4-byte column field.
func I32Field(v int32) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(v))
	return out
}

func columnWidth(form string) int {
	switch form {
	case "D":
		return 8
	case "E", "J":
		return 4
	}
	panic("testutil: unknown fixture column form " + form)
}

// BuildFITS assembles a minimal Kepler light curve file: a primary header
// carrying the identity cards and one BINTABLE extension with the given
// columns.
func BuildFITS(kic int, obsmode string, quarter, nrows int, cols []FITSColumn) []byte {
	var b []byte
	b = AppendCard(b, Card("SIMPLE", "                   T"))
	b = AppendCard(b, Card("BITPIX", "                   8"))
	b = AppendCard(b, Card("NAXIS", "                   0"))
	b = AppendCard(b, Card("KEPLERID", fmt.Sprintf("%20d", kic)))
	b = AppendCard(b, Card("OBSMODE", fmt.Sprintf("'%s'", obsmode)))
	b = AppendCard(b, Card("QUARTER", fmt.Sprintf("%20d", quarter)))
	b = AppendCard(b, "END")
	b = PadBlock(b)

	rowLen := 0
	for _, c := range cols {
		rowLen += columnWidth(c.Form)
	}

	b = AppendCard(b, Card("XTENSION", "'BINTABLE'"))
	b = AppendCard(b, Card("BITPIX", "                   8"))
	b = AppendCard(b, Card("NAXIS", "                   2"))
	b = AppendCard(b, Card("NAXIS1", fmt.Sprintf("%20d", rowLen)))
	b = AppendCard(b, Card("NAXIS2", fmt.Sprintf("%20d", nrows)))
	b = AppendCard(b, Card("PCOUNT", "                   0"))
	b = AppendCard(b, Card("GCOUNT", "                   1"))
	b = AppendCard(b, Card("TFIELDS", fmt.Sprintf("%20d", len(cols))))
	for i, c := range cols {
		b = AppendCard(b, Card(fmt.Sprintf("TTYPE%d", i+1), fmt.Sprintf("'%s'", c.Name)))
		b = AppendCard(b, Card(fmt.Sprintf("TFORM%d", i+1), fmt.Sprintf("'%s'", c.Form)))
	}
	b = AppendCard(b, "END")
	b = PadBlock(b)

	for row := 0; row < nrows; row++ {
		for _, c := range cols {
			b = append(b, c.Data(row)...)
		}
	}
	return PadBlock(b)
}

// PhotometryColumns lays out the three columns the light curve reader needs:
// TIME in days as float64, flux and flux error as float32.
func PhotometryColumns(times, flux, fluxErr []float64) []FITSColumn {
	return []FITSColumn{
		{"TIME", "D", func(r int) []byte { return F64Field(times[r]) }},
		{"PDCSAP_FLUX", "E", func(r int) []byte { return F32Field(flux[r]) }},
		{"PDCSAP_FLUX_ERR", "E", func(r int) []byte { return F32Field(fluxErr[r]) }},
	}
}

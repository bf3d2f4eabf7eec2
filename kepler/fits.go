package kepler

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNotFITS is returned when a file does not start with a FITS primary
// header.
var ErrNotFITS = errors.New("kepler: not a FITS light curve file")

const (
	fitsBlock = 2880
	cardSize  = 80

	secondsPerDay = 86400.0
)

// Column names of the photometry read from the LIGHTCURVE extension.
const (
	colTime    = "TIME"
	colFlux    = "PDCSAP_FLUX"
	colFluxErr = "PDCSAP_FLUX_ERR"
)

// ReadSegment reads one quarter of photometry from a Kepler light curve file.
func ReadSegment(path string) (*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kepler: open light curve: %w", err)
	}
	defer f.Close()

	return ReadSegmentFrom(f)
}

// ReadSegmentFrom decodes a Kepler light curve from r. The primary header
// must carry KEPLERID, OBSMODE and QUARTER, and the first extension must be
// a BINTABLE with TIME, PDCSAP_FLUX and PDCSAP_FLUX_ERR columns. TIME is
// converted from days to seconds.
func ReadSegmentFrom(r io.Reader) (*Segment, error) {
	br := bufio.NewReader(r)

	primary, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if v, ok := primary["SIMPLE"]; !ok || v != "T" {
		return nil, ErrNotFITS
	}

	kic, err := primary.intCard("KEPLERID")
	if err != nil {
		return nil, err
	}
	obsmode, err := primary.strCard("OBSMODE")
	if err != nil {
		return nil, err
	}
	quarter, err := primary.intCard("QUARTER")
	if err != nil {
		return nil, err
	}

	if err := skipData(br, primary); err != nil {
		return nil, err
	}

	table, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if xt, err := table.strCard("XTENSION"); err != nil || !strings.HasPrefix(xt, "BINTABLE") {
		return nil, fmt.Errorf("kepler: first extension is not a binary table")
	}

	cols, rowLen, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	naxis1, err := table.intCard("NAXIS1")
	if err != nil {
		return nil, err
	}
	if naxis1 != rowLen {
		return nil, fmt.Errorf("kepler: table row length %d does not match column layout (%d)", naxis1, rowLen)
	}
	nrows, err := table.intCard("NAXIS2")
	if err != nil {
		return nil, err
	}

	var timeCol, fluxCol, errCol *column
	for i := range cols {
		switch cols[i].name {
		case colTime:
			timeCol = &cols[i]
		case colFlux:
			fluxCol = &cols[i]
		case colFluxErr:
			errCol = &cols[i]
		}
	}
	for name, c := range map[string]*column{colTime: timeCol, colFlux: fluxCol, colFluxErr: errCol} {
		if c == nil {
			return nil, fmt.Errorf("kepler: column %s not found", name)
		}
		if c.repeat != 1 || (c.code != 'D' && c.code != 'E') {
			return nil, fmt.Errorf("kepler: column %s has unsupported format", name)
		}
	}

	seg := &Segment{
		KeplerID: kic,
		Cadence:  cadenceFromObsMode(obsmode),
		Quarter:  strconv.Itoa(quarter),
		Time:     make([]float64, 0, nrows),
		Flux:     make([]float64, 0, nrows),
		FluxErr:  make([]float64, 0, nrows),
	}

	row := make([]byte, rowLen)
	for i := 0; i < nrows; i++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("kepler: read table row %d: %w", i, err)
		}
		seg.Time = append(seg.Time, fieldFloat(row, timeCol)*secondsPerDay)
		seg.Flux = append(seg.Flux, fieldFloat(row, fluxCol))
		seg.FluxErr = append(seg.FluxErr, fieldFloat(row, errCol))
	}

	return seg, nil
}

type fitsHeader map[string]string

// readHeader consumes whole blocks up to and including the one holding the
// END card and returns the value cards.
func readHeader(r io.Reader) (fitsHeader, error) {
	h := make(fitsHeader)
	block := make([]byte, fitsBlock)
	for {
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, fmt.Errorf("kepler: read header block: %w", err)
		}
		for off := 0; off < fitsBlock; off += cardSize {
			card := string(block[off : off+cardSize])
			key := strings.TrimRight(card[:8], " ")
			if key == "END" {
				return h, nil
			}
			if key == "" || key == "COMMENT" || key == "HISTORY" || card[8:10] != "= " {
				continue
			}
			h[key] = parseCardValue(card[10:])
		}
	}
}

// parseCardValue extracts the value from the part of a card after "= ".
// Strings are quoted with doubled quotes as escapes; other values end at the
// comment separator.
func parseCardValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					b.WriteByte('\'')
					i++
					continue
				}
				break
			}
			b.WriteByte(s[i])
		}
		return strings.TrimRight(b.String(), " ")
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func (h fitsHeader) strCard(key string) (string, error) {
	v, ok := h[key]
	if !ok {
		return "", fmt.Errorf("kepler: header card %s missing", key)
	}
	return v, nil
}

func (h fitsHeader) intCard(key string) (int, error) {
	v, err := h.strCard(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("kepler: header card %s: %w", key, err)
	}
	return n, nil
}

// skipData discards the data unit following a header, padding included.
// Kepler primary HDUs carry no data, so this normally skips nothing.
func skipData(r io.Reader, h fitsHeader) error {
	naxis, err := h.intCard("NAXIS")
	if err != nil {
		return err
	}
	if naxis == 0 {
		return nil
	}

	bitpix, err := h.intCard("BITPIX")
	if err != nil {
		return err
	}
	if bitpix < 0 {
		bitpix = -bitpix
	}
	size := int64(bitpix / 8)
	for i := 1; i <= naxis; i++ {
		n, err := h.intCard(fmt.Sprintf("NAXIS%d", i))
		if err != nil {
			return err
		}
		size *= int64(n)
	}

	padded := (size + fitsBlock - 1) / fitsBlock * fitsBlock
	if _, err := io.CopyN(io.Discard, r, padded); err != nil {
		return fmt.Errorf("kepler: skip data unit: %w", err)
	}
	return nil
}

type column struct {
	name   string
	code   byte
	repeat int
	offset int
}

// tableColumns decodes the TFORM/TTYPE cards into a column layout and
// returns it with the resulting row length in bytes.
func tableColumns(h fitsHeader) ([]column, int, error) {
	tfields, err := h.intCard("TFIELDS")
	if err != nil {
		return nil, 0, err
	}

	cols := make([]column, 0, tfields)
	offset := 0
	for i := 1; i <= tfields; i++ {
		form, err := h.strCard(fmt.Sprintf("TFORM%d", i))
		if err != nil {
			return nil, 0, err
		}
		repeat, code, err := parseTForm(form)
		if err != nil {
			return nil, 0, err
		}
		width := typeWidth(code)
		if width == 0 {
			return nil, 0, fmt.Errorf("kepler: unsupported column format %q", form)
		}
		name, _ := h.strCard(fmt.Sprintf("TTYPE%d", i))
		cols = append(cols, column{name: name, code: code, repeat: repeat, offset: offset})
		offset += repeat * width
	}

	return cols, offset, nil
}

func parseTForm(form string) (int, byte, error) {
	form = strings.TrimSpace(form)
	i := 0
	for i < len(form) && form[i] >= '0' && form[i] <= '9' {
		i++
	}
	if i == len(form) {
		return 0, 0, fmt.Errorf("kepler: malformed column format %q", form)
	}
	repeat := 1
	if i > 0 {
		repeat, _ = strconv.Atoi(form[:i])
	}
	return repeat, form[i], nil
}

func typeWidth(code byte) int {
	switch code {
	case 'L', 'B', 'A':
		return 1
	case 'I':
		return 2
	case 'J', 'E':
		return 4
	case 'K', 'D', 'C', 'P':
		return 8
	case 'M', 'Q':
		return 16
	}
	return 0
}

func fieldFloat(row []byte, c *column) float64 {
	switch c.code {
	case 'D':
		return math.Float64frombits(binary.BigEndian.Uint64(row[c.offset:]))
	case 'E':
		return float64(math.Float32frombits(binary.BigEndian.Uint32(row[c.offset:])))
	}
	return math.NaN()
}

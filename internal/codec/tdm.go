package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tdmfilter/internal/common"
	"tdmfilter/internal/matrix"
)

var (
	ErrUnknownFormat = errors.New("unknown tdm file format")
)

type Format int

const (
	FormatGob    Format = iota // .tdm.gz
	FormatJSON                 // .json
	FormatJSONGz               // .json.gz
)

var extensions = map[Format]string{
	FormatGob:    ".tdm.gz",
	FormatJSON:   ".json",
	FormatJSONGz: ".json.gz",
}

func (f Format) Ext() string {
	return extensions[f]
}

func (f Format) String() string {
	switch f {
	case FormatGob:
		return "tdm"
	case FormatJSON:
		return "json"
	case FormatJSONGz:
		return "json.gz"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DetectFormat picks the format from the file name.
func DetectFormat(path string) (Format, error) {
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ".tdm.gz"):
		return FormatGob, nil
	case strings.HasSuffix(p, ".json.gz"):
		return FormatJSONGz, nil
	case strings.HasSuffix(p, ".json"):
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "tdm", "gob", "tdm.gz":
		return FormatGob, nil
	case "json":
		return FormatJSON, nil
	case "json.gz", "jsongz":
		return FormatJSONGz, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// record is the on-disk simple-triplet layout, 0-based.
type record struct {
	Terms []string  `json:"terms"`
	Docs  []string  `json:"docs"`
	I     []int     `json:"i"`
	J     []int     `json:"j"`
	V     []float64 `json:"v"`
}

func toRecord(m *matrix.TDM) record {
	i, j, v := m.Triplets()
	return record{Terms: m.Terms(), Docs: m.Docs(), I: i, J: j, V: v}
}

func (r record) tdm() (*matrix.TDM, error) {
	return matrix.FromTriplets(r.Terms, r.Docs, r.I, r.J, r.V)
}

// Encode writes m to w and returns the number of bytes written.
func Encode(w io.Writer, m *matrix.TDM, f Format) (int64, error) {
	rec := toRecord(m)
	buf := new(bytes.Buffer)
	var err error
	switch f {
	case FormatGob:
		err = gob.NewEncoder(buf).Encode(rec)
	case FormatJSON, FormatJSONGz:
		err = json.NewEncoder(buf).Encode(rec)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return 0, err
	}

	if f == FormatJSON {
		cw := NewCountWriter(w)
		_, err = cw.Write(buf.Bytes())
		return cw.Count(), err
	}
	gc := NewGzipCodec()
	gc.BindW(w)
	return gc.Encode(buf.Bytes())
}

func Decode(r io.Reader, f Format) (*matrix.TDM, error) {
	var (
		payload []byte
		err     error
	)
	switch f {
	case FormatJSON:
		payload, err = io.ReadAll(r)
	case FormatGob, FormatJSONGz:
		gc := NewGzipCodec()
		gc.BindR(r)
		payload, err = gc.Decode()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if f == FormatGob {
		err = gob.NewDecoder(bytes.NewReader(payload)).Decode(&rec)
	} else {
		err = json.Unmarshal(payload, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", f, err)
	}
	return rec.tdm()
}

func ReadFile(path string) (*matrix.TDM, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	cr := NewCountReader(fd)
	m, err := Decode(cr, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	common.DINFO("read %s (%v, %d bytes)", path, f, cr.Count())
	return m, nil
}

// WriteFile writes m to path in the format its extension names.
func WriteFile(path string, m *matrix.TDM) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := Encode(fd, m, f)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	common.DINFO("wrote %s (%v, %d bytes)", path, f, n)
	return nil
}

// OutputPath maps in to "<dir>/<base>.filtered<ext>". An empty dir keeps the
// input directory. in must carry a known extension.
func OutputPath(in, dir string, f Format) (string, error) {
	name := filepath.Base(in)
	g, err := DetectFormat(name)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = filepath.Dir(in)
	}
	name = name[:len(name)-len(g.Ext())]
	return filepath.Join(dir, name+".filtered"+f.Ext()), nil
}

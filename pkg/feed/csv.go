package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
)

var ErrMalformedRecord = errors.New("malformed feed record")

// DefaultSources maps the source column of the plant replay files to sensor ids.
var DefaultSources = map[string]string{
	"sensor1": "temperature",
	"sensor2": "current",
	"sensor3": "humidity",
}

// Record is one reading of a replay file. Line is 1-based and counts the header.
type Record struct {
	Line     int
	Source   string
	SensorID string
	Value    float64
}

// Reader yields readings of a replay file: a header row, then rows whose
// second column names the source and third column holds the value.
type Reader struct {
	csv     *csv.Reader
	sources map[string]string
	line    int
}

func NewReader(r io.Reader, sources map[string]string) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if sources == nil {
		sources = DefaultSources
	}
	return &Reader{csv: cr, sources: sources}
}

// Next returns the next mapped record, skipping rows of unknown sources.
// It returns io.EOF at the end. Errors wrapping ErrMalformedRecord or
// engine.ErrInvalidValue concern a single row and reading may continue.
func (r *Reader) Next() (Record, error) {
	for {
		fields, err := r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.line++
				return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
			}
			return Record{}, err
		}
		r.line++

		if r.line == 1 {
			continue
		}
		if len(fields) < 3 {
			return Record{}, fmt.Errorf("%w: line %d has %d columns", ErrMalformedRecord, r.line, len(fields))
		}

		source := strings.TrimSpace(fields[1])
		sensorID, ok := r.sources[source]
		if !ok {
			continue
		}

		raw := strings.TrimSpace(fields[2])
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return Record{}, fmt.Errorf("%w: line %d value %q", engine.ErrInvalidValue, r.line, raw)
		}

		return Record{Line: r.line, Source: source, SensorID: sensorID, Value: value}, nil
	}
}

// ReadCSV reads every record. Bad rows are skipped and reported in the
// joined error next to the records that did parse.
func ReadCSV(r io.Reader, sources map[string]string) ([]Record, error) {
	reader := NewReader(r, sources)

	var records []Record
	var errs []error
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if isRecordError(err) {
				errs = append(errs, err)
				continue
			}
			return records, err
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

func isRecordError(err error) bool {
	return errors.Is(err, ErrMalformedRecord) || errors.Is(err, engine.ErrInvalidValue)
}

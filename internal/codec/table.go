package codec

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows decodes a CSV table into row structs. A leading byte order mark is
// ignored and an empty input yields no rows. Rows with fewer or more cells
// than the header are kept; missing cells stay empty.
func ReadRows[T any](data []byte) ([]T, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var rows []T
	if len(bytes.TrimSpace(data)) == 0 {
		return rows, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		if stderrors.Is(err, gocsv.ErrEmptyCSVFile) {
			return rows, nil
		}
		return nil, err
	}
	return rows, nil
}

// WriteRows encodes row structs as a CSV table with the header taken from the
// struct tags.
func WriteRows[T any](rows []T) ([]byte, error) {
	if rows == nil {
		rows = []T{}
	}
	return gocsv.MarshalBytes(&rows)
}

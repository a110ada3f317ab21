package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/pkg/errors"
)

// LoadCSV reads a whole UTF-8, comma-separated file into a Dataset.
// The first row must be a header naming every column; labelColumn selects
// the label by name and every other column becomes a float64 feature.
// Streaming is deliberately not supported: datasets in this domain are
// hundreds to tens of thousands of rows.
//
// Errors:
//   - ErrEmptyData: the file has a header but no records
//   - ValidationError: labelColumn is not in the header
//   - DimensionError: a record has a different field count than the header
//     (reported by the csv reader and wrapped)
//   - ValueError: a field cannot be parsed as float64
func LoadCSV(path, labelColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadCSV: open %s", path)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, labelColumn)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV: header")
	}

	labelIdx := -1
	for i, name := range header {
		if name == labelColumn {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return nil, errors.NewValidationError("labelColumn", "column not found in header", labelColumn)
	}

	featureNames := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != labelIdx {
			featureNames = append(featureNames, name)
		}
	}

	var features []float64
	var labels []float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader reports ragged rows as ErrFieldCount
			return nil, errors.Wrapf(err, "ReadCSV: record at line %d", line+1)
		}
		line++

		for i, field := range record {
			v, perr := strconv.ParseFloat(field, 64)
			if perr != nil {
				return nil, errors.NewValueError("ReadCSV",
					"cannot parse '"+field+"' in column '"+header[i]+"' as float64")
			}
			if i == labelIdx {
				labels = append(labels, v)
			} else {
				features = append(features, v)
			}
		}
	}

	if len(labels) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	n := len(labels)
	d := len(featureNames)
	X := mat.NewDense(n, d, features)
	y := mat.NewVecDense(n, labels)
	return New(X, y, featureNames, labelColumn)
}

// SaveCSV writes the dataset back to the tabular format LoadCSV reads:
// one header row, features in order, label column last. This is how a
// held-out test partition is persisted for later independent evaluation.
func (d *Dataset) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "SaveCSV: create %s", path)
	}
	if err := d.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "SaveCSV: close %s", path)
}

// WriteCSV is SaveCSV over an arbitrary writer.
func (d *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	rows, cols := d.X.Dims()

	header := make([]string, cols+1)
	for j := 0; j < cols; j++ {
		if d.FeatureNames != nil {
			header[j] = d.FeatureNames[j]
		} else {
			header[j] = "x" + strconv.Itoa(j)
		}
	}
	labelName := d.LabelName
	if labelName == "" {
		labelName = "label"
	}
	header[cols] = labelName
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "WriteCSV: header")
	}

	record := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(d.X.At(i, j), 'g', -1, 64)
		}
		record[cols] = strconv.FormatFloat(d.Y.AtVec(i), 'g', -1, 64)
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "WriteCSV: record %d", i)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "WriteCSV: flush")
}

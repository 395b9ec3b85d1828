// Package tabular reads and writes the pipeline's CSV tables.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/fairway/internal/domain/model"
)

// ReadRatings loads the course ratings table. It fails with ErrNotFound when
// the file is absent and with a SchemaError listing every missing required
// column. Empty numeric cells parse to NaN; unparseable numeric cells abort
// the load. Columns beyond the required set pass through untouched.
func ReadRatings(path string) (*model.Table, error) {
	header, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}

	idx := indexColumns(header)
	required := []string{model.ColCourse, model.ColPrice, model.ColLayout, model.ColDifficulty, model.ColConditions}
	if missing := missingColumns(idx, required); len(missing) > 0 {
		return nil, &SchemaError{Source: path, Missing: missing}
	}

	courses := make([]model.Course, 0, len(rows))
	for i, row := range rows {
		c := model.Course{
			Name:   row[idx[model.ColCourse]],
			Fields: make(map[string]string, len(header)),
		}
		for col, j := range idx {
			c.Fields[col] = row[j]
		}
		if j, ok := idx[model.ColRegion]; ok {
			c.Region = row[j]
		}

		if c.Price, err = parseCell(path, i, model.ColPrice, row[idx[model.ColPrice]]); err != nil {
			return nil, err
		}
		if c.Layout, err = parseCell(path, i, model.ColLayout, row[idx[model.ColLayout]]); err != nil {
			return nil, err
		}
		if c.Difficulty, err = parseCell(path, i, model.ColDifficulty, row[idx[model.ColDifficulty]]); err != nil {
			return nil, err
		}
		if c.Conditions, err = parseCell(path, i, model.ColConditions, row[idx[model.ColConditions]]); err != nil {
			return nil, err
		}

		courses = append(courses, c)
	}

	return &model.Table{Header: header, Courses: courses}, nil
}

// ReadCurve loads the price curve control points. File order is irrelevant;
// the curve package re-sorts them before interpolation.
func ReadCurve(path string) ([]model.CurvePoint, error) {
	header, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}

	idx := indexColumns(header)
	required := []string{model.ColCurvePrice, model.ColCurveValue}
	if missing := missingColumns(idx, required); len(missing) > 0 {
		return nil, &SchemaError{Source: path, Missing: missing}
	}

	points := make([]model.CurvePoint, 0, len(rows))
	for i, row := range rows {
		var p model.CurvePoint
		if p.Price, err = parseCell(path, i, model.ColCurvePrice, row[idx[model.ColCurvePrice]]); err != nil {
			return nil, err
		}
		if p.Value, err = parseCell(path, i, model.ColCurveValue, row[idx[model.ColCurveValue]]); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, nil
}

// ReadRanked loads a ranked table previously produced by the Writer. Used by
// the reporting consumer, which needs the derived columns as well.
func ReadRanked(path string) (*model.Table, error) {
	header, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}

	idx := indexColumns(header)
	required := []string{
		model.ColCourse, model.ColPrice,
		model.ColGolfQuality, model.ColValueScore, model.ColValueQual, model.ColComposite, model.ColRank,
	}
	if missing := missingColumns(idx, required); len(missing) > 0 {
		return nil, &SchemaError{Source: path, Missing: missing}
	}

	courses := make([]model.Course, 0, len(rows))
	for i, row := range rows {
		c := model.Course{
			Name:   row[idx[model.ColCourse]],
			Fields: make(map[string]string, len(header)),
		}
		for col, j := range idx {
			c.Fields[col] = row[j]
		}
		if j, ok := idx[model.ColRegion]; ok {
			c.Region = row[j]
		}

		if c.Price, err = parseCell(path, i, model.ColPrice, row[idx[model.ColPrice]]); err != nil {
			return nil, err
		}
		if c.GolfQuality, err = parseCell(path, i, model.ColGolfQuality, row[idx[model.ColGolfQuality]]); err != nil {
			return nil, err
		}
		if c.ValueScore, err = parseCell(path, i, model.ColValueScore, row[idx[model.ColValueScore]]); err != nil {
			return nil, err
		}
		if c.ValueQuality, err = parseCell(path, i, model.ColValueQual, row[idx[model.ColValueQual]]); err != nil {
			return nil, err
		}
		if c.CompositeScore, err = parseCell(path, i, model.ColComposite, row[idx[model.ColComposite]]); err != nil {
			return nil, err
		}
		rank, err := strconv.Atoi(strings.TrimSpace(row[idx[model.ColRank]]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: column %q: %w", path, i+1, model.ColRank, err)
		}
		c.RankPosition = rank

		courses = append(courses, c)
	}

	return &model.Table{Header: header, Courses: courses}, nil
}

// readAll opens a CSV file and returns its header and data rows.
func readAll(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("parse %s: empty file", path)
	}

	return records[0], records[1:], nil
}

// indexColumns maps trimmed column names to their positions. The first
// occurrence wins when a name repeats.
func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// missingColumns returns the required columns absent from idx, in the order
// they were required.
func missingColumns(idx map[string]int, required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// parseCell parses a numeric cell. An empty cell is a missing value and
// parses to NaN; anything else must be a valid float.
func parseCell(path string, row int, col, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %q: %w", path, row+1, col, err)
	}
	return v, nil
}

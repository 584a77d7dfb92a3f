package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/grid"
)

// readLabels loads a label source from path. Two file types are supported:
//
//   - .json: either an object keyed by "row,col" positions, a 2D array of
//     rows, or a flat array of labels filled in the given order
//   - anything else: plain text, one label per line, with a literal \n
//     escape producing line breaks within one label
//
// The fill order applies only to flat JSON arrays and plain text files;
// positioned and 2D inputs carry their own placement.
func readLabels(path string, order grid.Order) (grid.Source, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, apperrors.New(apperrors.ErrCodeFileNotFound, "labels file not found: %s", path)
		}
		return nil, 0, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSONLabels(data, order)
	}
	labels := parseTextLabels(string(data))
	return grid.Sequence(labels, order), len(labels), nil
}

// parseJSONLabels decodes one of the three JSON input shapes.
func parseJSONLabels(data []byte, order grid.Order) (grid.Source, int, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse labels JSON")
	}

	switch v := raw.(type) {
	case map[string]any:
		if order != grid.OrderDefault {
			return nil, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "--order applies only to flat label lists")
		}
		cells, err := parseCells(v)
		if err != nil {
			return nil, 0, err
		}
		return grid.Cells(cells), len(cells), nil

	case []any:
		if len(v) == 0 {
			return grid.Sequence(nil, order), 0, nil
		}
		if _, nested := v[0].([]any); nested {
			if order != grid.OrderDefault {
				return nil, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "--order applies only to flat label lists")
			}
			rows, err := parseMatrix(v)
			if err != nil {
				return nil, 0, err
			}
			count := 0
			for _, r := range rows {
				count += len(r)
			}
			return grid.Matrix(rows), count, nil
		}
		labels, err := parseFlat(v)
		if err != nil {
			return nil, 0, err
		}
		return grid.Sequence(labels, order), len(labels), nil

	default:
		return nil, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "labels JSON must be an object or an array, got %T", raw)
	}
}

// parseCells converts an object keyed by "row,col" into positioned cells.
func parseCells(m map[string]any) (map[grid.Pos]string, error) {
	cells := make(map[grid.Pos]string, len(m))
	for key, val := range m {
		text, ok := val.(string)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "label at %q is not a string", key)
		}
		pos, err := parsePos(key)
		if err != nil {
			return nil, err
		}
		cells[pos] = text
	}
	return cells, nil
}

// parsePos parses a "row,col" key.
func parsePos(key string) (grid.Pos, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return grid.Pos{}, apperrors.New(apperrors.ErrCodeInvalidInput, "position key %q is not of the form \"row,col\"", key)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Pos{}, apperrors.New(apperrors.ErrCodeInvalidInput, "position key %q: bad row", key)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Pos{}, apperrors.New(apperrors.ErrCodeInvalidInput, "position key %q: bad column", key)
	}
	return grid.Pos{Row: row, Col: col}, nil
}

// parseMatrix converts a JSON array of arrays into rows of labels.
func parseMatrix(v []any) ([][]string, error) {
	rows := make([][]string, 0, len(v))
	for i, rv := range v {
		rowVals, ok := rv.([]any)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "labels row %d is not a list", i)
		}
		row := make([]string, 0, len(rowVals))
		for j, cv := range rowVals {
			text, ok := cv.(string)
			if !ok {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "label at row %d, column %d is not a string", i, j)
			}
			row = append(row, text)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseFlat converts a JSON array of strings into a label list.
func parseFlat(v []any) ([]string, error) {
	labels := make([]string, 0, len(v))
	for i, lv := range v {
		text, ok := lv.(string)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "label %d is not a string", i)
		}
		labels = append(labels, text)
	}
	return labels, nil
}

// parseTextLabels splits plain text input into labels, one per line.
// Blank lines are skipped and a literal \n escape becomes a line break
// within the label.
func parseTextLabels(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	labels := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		labels = append(labels, strings.ReplaceAll(l, `\n`, "\n"))
	}
	return labels
}

package sheet

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mlandt/labelator/pkg/errors"
)

// Load reads a sheet calibration file in TOML format.
//
// The file holds one table of calibration values:
//
//	name = "my-labels"
//	rows = 20
//	cols = 13
//	diameter = 38.0
//	pitch_x = 49.16
//	pitch_y = 49.16
//	margin_left = 83.0
//	margin_top = 75.46
//	page_width = 794.0
//	page_height = 1123.0
//	font_size = 8.0
//
// Missing geometry fields are invalid; font_size defaults to the
// built-in default sheet's when omitted. The loaded sheet is validated
// before being returned.
func Load(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Sheet{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "sheet file %s", path)
		}
		return Sheet{}, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read sheet file %s", path)
	}
	return Parse(data)
}

// Parse decodes a sheet calibration bundle from TOML bytes.
func Parse(data []byte) (Sheet, error) {
	var s Sheet
	if err := toml.Unmarshal(data, &s); err != nil {
		return Sheet{}, errors.Wrap(errors.ErrCodeInvalidSheet, err, "decode sheet")
	}
	if s.FontSize == 0 {
		s.FontSize = Flexilabels260.FontSize
	}
	if err := s.Validate(); err != nil {
		return Sheet{}, err
	}
	return s, nil
}

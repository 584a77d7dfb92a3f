package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/render/sink"
)

// paramsFile mirrors sink.Params for TOML decoding. Pointer fields
// distinguish "not set" from an explicit zero, so a params file can
// override exactly the knobs it names.
type paramsFile struct {
	FontSize    *float64 `toml:"font_size"`
	FontFamily  *string  `toml:"font_family"`
	FontWeight  *string  `toml:"font_weight"`
	DXText      *float64 `toml:"dx"`
	DYText      *float64 `toml:"dy"`
	LineHeight  *float64 `toml:"line_height"`
	StrokeWidth *float64 `toml:"stroke_width"`
	Circles     *bool    `toml:"circles"`
}

// loadParams reads a TOML parameters file and applies it on top of base.
func loadParams(path string, base sink.Params) (sink.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, apperrors.New(apperrors.ErrCodeFileNotFound, "params file not found: %s", path)
		}
		return base, apperrors.Wrap(apperrors.ErrCodeInvalidParam, err, "read %s", path)
	}

	var pf paramsFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return base, apperrors.Wrap(apperrors.ErrCodeInvalidParam, err, "parse %s", path)
	}
	return pf.apply(base), nil
}

// apply merges the file's set fields onto base.
func (pf paramsFile) apply(base sink.Params) sink.Params {
	if pf.FontSize != nil {
		base.FontSize = *pf.FontSize
	}
	if pf.FontFamily != nil {
		base.FontFamily = *pf.FontFamily
	}
	if pf.FontWeight != nil {
		base.FontWeight = *pf.FontWeight
	}
	if pf.DXText != nil {
		base.DXText = *pf.DXText
	}
	if pf.DYText != nil {
		base.DYText = *pf.DYText
	}
	if pf.LineHeight != nil {
		base.LineHeight = *pf.LineHeight
	}
	if pf.StrokeWidth != nil {
		base.StrokeWidth = *pf.StrokeWidth
	}
	if pf.Circles != nil {
		base.HideCircles = !*pf.Circles
	}
	return base
}

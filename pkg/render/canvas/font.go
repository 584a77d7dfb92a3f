package canvas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/mlandt/labelator/pkg/errors"
)

// faceCache memoizes parsed font faces keyed by family/weight/size.
// Font files are parsed once per process.
var faceCache = struct {
	sync.Mutex
	faces map[string]font.Face
}{faces: make(map[string]font.Face)}

// fallbackFamilies are tried when the requested family cannot be found
// on the system. Helvetica is the documented default family but is
// rarely installed as a TTF, so its metric-compatible substitutes come
// first.
var fallbackFamilies = []string{"Arial", "Liberation Sans", "DejaVu Sans", "FreeSans"}

// loadFace resolves a font family and weight to a concrete face at the
// given size. Lookup failures surface as RENDER_FAILURE.
func loadFace(family, weight string, size float64) (font.Face, error) {
	key := fmt.Sprintf("%s|%s|%g", family, weight, size)

	faceCache.Lock()
	defer faceCache.Unlock()
	if f, ok := faceCache.faces[key]; ok {
		return f, nil
	}

	path, err := findFontFile(family, weight)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "read font %s", path)
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "parse font %s", path)
	}

	face := truetype.NewFace(parsed, &truetype.Options{Size: size})
	faceCache.faces[key] = face
	return face, nil
}

// findFontFile searches the system font directories for the requested
// family, preferring a weight-specific file for bold text.
func findFontFile(family, weight string) (string, error) {
	candidates := fontCandidates(family, weight)
	for _, name := range candidates {
		if path, err := findfont.Find(name + ".ttf"); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeRenderFailure, "font %q (weight %q) not found; tried %s",
		family, weight, strings.Join(candidates, ", "))
}

// fontCandidates builds the ordered list of file-name stems to search
// for, weight-specific names first when bold is requested.
func fontCandidates(family, weight string) []string {
	bold := strings.EqualFold(weight, "bold")

	var names []string
	add := func(fam string) {
		f := strings.ReplaceAll(fam, " ", "")
		if bold {
			names = append(names, f+"-Bold", f+"Bold", f+"bd")
		}
		names = append(names, f, strings.ToLower(f))
	}

	add(family)
	for _, fb := range fallbackFamilies {
		if !strings.EqualFold(fb, family) {
			add(fb)
		}
	}
	return names
}

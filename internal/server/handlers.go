package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mlandt/labelator/pkg/cache"
	apperrors "github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/labels"
	"github.com/mlandt/labelator/pkg/render/sink"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[labels.Format]string{
	labels.FormatSVG: "image/svg+xml",
	labels.FormatPDF: "application/pdf",
	labels.FormatPNG: "image/png",
}

// previewRequest is one fully parsed render request.
type previewRequest struct {
	src    grid.Source
	params sink.Params
	guides bool

	// raw inputs, kept for cache keying
	rawLabels string
	rawOrder  string
	rawQuery  []string
}

// parseRequest extracts the label source and layout parameters from
// query or form values. The labels value holds one label per line with
// a literal \n escape for multi-line labels.
func parseRequest(values url.Values) (previewRequest, error) {
	req := previewRequest{params: sink.DefaultParams()}

	req.rawLabels = values.Get("labels")
	req.rawOrder = values.Get("order")

	order, err := grid.ParseOrder(req.rawOrder)
	if err != nil {
		return req, err
	}
	req.src = grid.Sequence(splitLabels(req.rawLabels), order)

	floats := map[string]*float64{
		"font_size":    &req.params.FontSize,
		"dx":           &req.params.DXText,
		"dy":           &req.params.DYText,
		"line_height":  &req.params.LineHeight,
		"stroke_width": &req.params.StrokeWidth,
	}
	for name, dst := range floats {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, apperrors.New(apperrors.ErrCodeInvalidParam, "%s: not a number: %q", name, raw)
		}
		*dst = f
	}

	if v := values.Get("font_family"); v != "" {
		req.params.FontFamily = v
	}
	if v := values.Get("font_weight"); v != "" {
		req.params.FontWeight = v
	}
	if v := values.Get("circles"); v != "" {
		req.params.HideCircles = v == "0" || v == "false"
	}
	req.guides = values.Get("guides") == "1" || values.Get("guides") == "true"

	// Everything the render depends on, in a stable order.
	req.rawQuery = []string{
		req.rawLabels, req.rawOrder,
		values.Get("font_size"), values.Get("font_family"), values.Get("font_weight"),
		values.Get("dx"), values.Get("dy"), values.Get("line_height"),
		values.Get("stroke_width"), values.Get("circles"), values.Get("guides"),
	}
	return req, nil
}

// splitLabels turns textarea content into labels: one per line, with a
// literal \n escape producing line breaks inside one label.
func splitLabels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(l, `\n`, "\n"))
	}
	return out
}

// render produces a document for the request, consulting the cache
// first. The key covers the full sheet calibration, not just its name,
// so two differently calibrated sheets sharing a name never serve each
// other's documents from a persistent backend.
func (s *Server) render(r *http.Request, req previewRequest, format labels.Format) ([]byte, error) {
	key := cache.Key("render", s.sheet, string(format), req.rawQuery)

	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		return data, nil
	}

	opts := []labels.Option{labels.WithSheet(s.sheet), labels.WithParams(req.params)}
	if req.guides {
		opts = append(opts, labels.WithGuides())
	}
	data, err := labels.Render(format, req.src, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(r.Context(), key, data, downloadTTL); err != nil {
		s.logger.Debugf("cache set failed: %v", err)
	}
	return data, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := s.render(r, req, labels.FormatSVG)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[labels.FormatSVG])
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

// renderResponse is the JSON reply to a render request.
type renderResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse form"))
		return
	}

	format := labels.Format(strings.ToLower(r.Form.Get("format")))
	if format == "" {
		format = labels.FormatPDF
	}
	contentType, ok := contentTypes[format]
	if !ok {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupportedFormat, "unsupported format %q; must be pdf, svg, or png", format))
		return
	}

	req, err := parseRequest(r.Form)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := s.render(r, req, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := uuid.NewString()
	s.store(id, download{
		name:        fmt.Sprintf("labels.%s", format),
		contentType: contentType,
		data:        data,
		createdAt:   time.Now(),
	})
	s.logger.Infof("Rendered %s (%d bytes) as %s", format, len(data), id)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(renderResponse{
		ID:  id,
		URL: "/download/" + id,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := s.take(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", d.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.name))
	_, _ = w.Write(d.data)
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidOrder,
		apperrors.ErrCodeInvalidParam, apperrors.ErrCodeInvalidSheet:
		status = http.StatusBadRequest
	case apperrors.ErrCodeUnsupportedFormat:
		status = http.StatusUnsupportedMediaType
	}
	s.logger.Warnf("request failed: %v", err)
	http.Error(w, err.Error(), status)
}

// indexTemplate is the single-page preview UI. The preview image
// reloads with the form's query string on every change.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>labelator preview</title>
<style>
  body { font-family: sans-serif; margin: 1.5rem; display: flex; gap: 2rem; }
  form { min-width: 22rem; }
  label { display: block; margin-top: .6rem; font-size: .85rem; }
  textarea { width: 100%; height: 10rem; }
  img { border: 1px solid #ccc; max-height: 90vh; }
</style>
</head>
<body>
<form id="f">
  <h1>labelator</h1>
  <p>Sheet: {{.Sheet.Name}} ({{.Sheet.Rows}}&times;{{.Sheet.Cols}})</p>
  <label>Labels (one per line, use \n for line breaks)
    <textarea name="labels">10 nM\nsample1\n22-03-09</textarea>
  </label>
  <label>Fill order
    <select name="order"><option value="row">row-major</option><option value="col">column-major</option></select>
  </label>
  <label>Font size <input name="font_size" value="{{.Sheet.FontSize}}" size="5"></label>
  <label>Font family <input name="font_family" value="Helvetica"></label>
  <label>Font weight <input name="font_weight" value="normal"></label>
  <label>dx (em) <input name="dx" value="0" size="5"></label>
  <label>dy (em) <input name="dy" value="0" size="5"></label>
  <label>Line height <input name="line_height" value="1.0" size="5"></label>
  <label>Stroke width <input name="stroke_width" value="1.33" size="5"></label>
  <label><input type="checkbox" name="circles" value="1" checked> Show circles</label>
  <label><input type="checkbox" name="guides" value="1"> Show guides</label>
  <label>Format
    <select name="format"><option>pdf</option><option>svg</option><option>png</option></select>
  </label>
  <button type="button" onclick="preview()">Preview</button>
  <button type="button" onclick="download()">Render &amp; download</button>
</form>
<img id="preview" src="/preview.svg">
<script>
function qs() {
  const fd = new FormData(document.getElementById('f'));
  // unchecked boxes are omitted from FormData; send an explicit 0
  fd.set('circles', document.querySelector('[name=circles]').checked ? '1' : '0');
  return new URLSearchParams(fd).toString();
}
function preview() { document.getElementById('preview').src = '/preview.svg?' + qs(); }
function download() {
  fetch('/render', {method: 'POST', headers: {'Content-Type': 'application/x-www-form-urlencoded'}, body: qs()})
    .then(r => { if (!r.ok) throw new Error(r.statusText); return r.json(); })
    .then(d => { window.location = d.url; })
    .catch(e => alert(e));
}
</script>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]any{"Sheet": s.sheet}); err != nil {
		s.logger.Errorf("render index: %v", err)
	}
}

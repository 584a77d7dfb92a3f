package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlandt/labelator/pkg/cache"
	"github.com/mlandt/labelator/pkg/sheet"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIndexServesForm(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := readBody(t, resp)
	assert.Contains(t, body, "flexilabels-260")
	assert.Contains(t, body, "/preview.svg")
}

func TestPreviewReturnsSVG(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/preview.svg?labels=hello")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	body := readBody(t, resp)
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, ">hello</text>")
}

func TestPreviewRejectsBadParams(t *testing.T) {
	ts := newTestServer(t)

	cases := map[string]string{
		"non-numeric font size": "font_size=big",
		"unknown order":         "order=spiral",
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/preview.svg?" + query)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRenderAndDownload(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{
		"labels": {"10 nM\\nsample1"},
		"format": {"svg"},
	}
	resp, err := http.PostForm(ts.URL+"/render", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply renderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.NotEmpty(t, reply.ID)
	require.True(t, strings.HasPrefix(reply.URL, "/download/"))

	dl, err := http.Get(ts.URL + reply.URL)
	require.NoError(t, err)
	defer dl.Body.Close()

	require.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, "image/svg+xml", dl.Header.Get("Content-Type"))
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "labels.svg")

	body := readBody(t, dl)
	assert.Contains(t, body, "10 nM")
	assert.Contains(t, body, "sample1")
}

func TestPreviewCacheKeyedByFullCalibration(t *testing.T) {
	// Two sheets sharing a name but differing in geometry must not
	// serve each other's cached documents.
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	shA := sheet.Default()
	shB := sheet.Default()
	shB.PitchX += 5

	tsA := httptest.NewServer(New(Config{Sheet: shA, Cache: c}).Handler())
	defer tsA.Close()
	tsB := httptest.NewServer(New(Config{Sheet: shB, Cache: c}).Handler())
	defer tsB.Close()

	fetch := func(ts *httptest.Server) string {
		resp, err := http.Get(ts.URL + "/preview.svg?labels=hello")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return readBody(t, resp)
	}

	first := fetch(tsA)
	second := fetch(tsB)
	assert.NotEqual(t, first, second, "altered calibration should re-render, not hit the old entry")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.PostForm(ts.URL+"/render", url.Values{"format": {"docx"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestDownloadUnknownID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/download/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseRequestDefaults(t *testing.T) {
	req, err := parseRequest(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, req.params.LineHeight)
	assert.Equal(t, "Helvetica", req.params.FontFamily)
	assert.False(t, req.params.HideCircles)
	assert.False(t, req.guides)
}

func TestParseRequestOverrides(t *testing.T) {
	req, err := parseRequest(url.Values{
		"font_size":   {"12"},
		"font_family": {"DejaVu Sans"},
		"dx":          {"0.5"},
		"dy":          {"-0.25"},
		"circles":     {"0"},
		"guides":      {"1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, req.params.FontSize)
	assert.Equal(t, "DejaVu Sans", req.params.FontFamily)
	assert.Equal(t, 0.5, req.params.DXText)
	assert.Equal(t, -0.25, req.params.DYText)
	assert.True(t, req.params.HideCircles)
	assert.True(t, req.guides)
}

func TestSplitLabels(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "hello", []string{"hello"}},
		{"multiple lines", "a\nb\nc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"blank lines dropped", "a\n\n\nb", []string{"a", "b"}},
		{"escaped newline", `10 nM\nsample1`, []string{"10 nM\nsample1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitLabels(tc.raw))
		})
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

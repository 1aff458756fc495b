package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"multicalc.com/server/icalc"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(icalc.NewCalcWithOptions(icalc.DefaultOptions())).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getPage(t *testing.T, srv *httptest.Server, query string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(srv.URL + "/" + query)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func postEvaluate(t *testing.T, srv *httptest.Server, body string) (*http.Response, EvaluateResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/evaluate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out EvaluateResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
	}
	return resp, out
}

// ===== web page tests =====

func TestWelcomePage(t *testing.T) {
	doc := getPage(t, newTestServer(t), "")
	if got := doc.Find("h1.heading").Text(); !strings.HasPrefix(got, "Welcome") {
		t.Fatalf("heading %q", got)
	}
	if n := doc.Find("nav a.mode").Length(); n != len(icalc.Modes) {
		t.Fatalf("want %d mode links, got %d", len(icalc.Modes), n)
	}
	if doc.Find("form").Length() != 0 {
		t.Fatal("welcome page should not show a form")
	}
}

func TestModeFormDefaults(t *testing.T) {
	doc := getPage(t, newTestServer(t), "?mode=graph")
	if got := doc.Find("h1.heading").Text(); got != "📈 Graphing Calculator" {
		t.Fatalf("heading %q", got)
	}
	if v, _ := doc.Find("input#expression").Attr("value"); v != "x**2" {
		t.Fatalf("expression default %q", v)
	}
	if v, _ := doc.Find("input#x_min").Attr("value"); v != "-10" {
		t.Fatalf("x_min default %q", v)
	}
	if got := strings.TrimSpace(doc.Find("button").Text()); got != "Plot Graph" {
		t.Fatalf("button %q", got)
	}
	if doc.Find("section.result").Length() != 0 {
		t.Fatal("result shown before submit")
	}
}

func TestArithmeticPage(t *testing.T) {
	doc := getPage(t, newTestServer(t), "?mode=arithmetic&operand1=7&operand2=3&operator=Multiplication&submit=1")
	if got := doc.Find("section.result p.line").Text(); got != "The result of 7.0 × 3.0 is 21.0" {
		t.Fatalf("line %q", got)
	}
	if got, _ := doc.Find("select#operator option[selected]").Html(); got != "Multiplication" {
		t.Fatalf("selected %q", got)
	}
}

func TestErrorPage(t *testing.T) {
	doc := getPage(t, newTestServer(t), "?mode=arithmetic&operand1=1&operand2=0&operator=Division&submit=1")
	if got := doc.Find("p.error").Text(); got != "⚠️ Division by zero is not allowed." {
		t.Fatalf("error %q", got)
	}
	if doc.Find("p.line").Length() != 0 {
		t.Fatal("result line shown next to an error")
	}
}

func TestGraphPage(t *testing.T) {
	doc := getPage(t, newTestServer(t), "?mode=graph&expression=sin(x)&x_min=-3&x_max=3&submit=1")
	src, ok := doc.Find("img.plot").Attr("src")
	if !ok || !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Fatalf("plot src %.40q", src)
	}
	if alt, _ := doc.Find("img.plot").Attr("alt"); alt != "y = sin(x)" {
		t.Fatalf("alt %q", alt)
	}
}

func TestSymbolicPage(t *testing.T) {
	doc := getPage(t, newTestServer(t), "?mode=indefinite-integral&expression=x**2&submit=1")
	if got := doc.Find("div.latex").Text(); !strings.Contains(got, `\frac{x^{3}}{3}`) {
		t.Fatalf("latex %q", got)
	}
}

// ===== JSON API tests =====

func TestEvaluateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, out := postEvaluate(t, srv, `{"mode":"trigonometric","params":{"angle":"90"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if _, err := uuid.Parse(out.RequestID); err != nil {
		t.Fatalf("request id %q: %v", out.RequestID, err)
	}
	if resp.Header.Get("X-Request-Id") != out.RequestID {
		t.Fatalf("header %q, body %q", resp.Header.Get("X-Request-Id"), out.RequestID)
	}
	if out.Display.Lines[4] != "sec(90.0°) = undefined" {
		t.Fatalf("lines %q", out.Display.Lines)
	}
}

func TestEvaluateEndpointPlotNulls(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/evaluate", "application/json",
		strings.NewReader(`{"mode":"graph","expression":"log(x)","params":{"x_min":"-1","x_max":"1"}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var raw struct {
		Display struct {
			Plot struct {
				Y []*float64 `json:"y"`
			} `json:"plot"`
		} `json:"display"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	y := raw.Display.Plot.Y
	if len(y) != icalc.SampleCount || y[0] != nil || y[len(y)-1] == nil {
		t.Fatalf("len=%d first=%v", len(y), y[0])
	}
}

func TestEvaluateEndpointErrors(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		body string
		code int
	}{
		{`{"mode":"spreadsheet"}`, http.StatusBadRequest},
		{`{not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, _ := postEvaluate(t, srv, tc.body)
		if resp.StatusCode != tc.code {
			t.Errorf("%s: want %d, got %d", tc.body, tc.code, resp.StatusCode)
		}
	}

	resp, out := postEvaluate(t, srv, `{"mode":"graph","expression":"x +* 2","params":{"x_min":"-1","x_max":"1"}}`)
	if resp.StatusCode != http.StatusOK || out.Display.FailureKind != icalc.ParseError {
		t.Fatalf("status %d display %+v", resp.StatusCode, out.Display)
	}

	r, err := http.Get(srv.URL + "/api/evaluate")
	if err != nil {
		t.Fatal(err)
	}
	r.Body.Close()
	if r.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET status %d", r.StatusCode)
	}
}

func TestRenderEndpoint(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{
		"mode=graph&expression=x**3&x_min=-1&x_max=1",
		"mode=trigonometric&angle=30",
	} {
		resp, err := http.Get(srv.URL + "/api/render.png?" + q)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("%s: content type %q", q, resp.Header.Get("Content-Type"))
		}
		if _, err := png.Decode(&buf); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}
}

func TestModesAndHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/modes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var modes struct {
		Count int `json:"count"`
		Modes []struct {
			Slug   string `json:"slug"`
			Fields []any  `json:"fields"`
		} `json:"modes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modes); err != nil {
		t.Fatal(err)
	}
	if modes.Count != len(icalc.Modes) || modes.Modes[0].Slug != "graph" || len(modes.Modes[0].Fields) != 3 {
		t.Fatalf("got %+v", modes)
	}

	h, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	h.Body.Close()
	if h.StatusCode != http.StatusOK || h.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("health status %d", h.StatusCode)
	}
}

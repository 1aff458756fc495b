package api

import (
	"context"
	"embed"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"multicalc.com/server/config"
	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
)

//go:embed templates/*.html
var templates embed.FS

type Server struct {
	calc       *icalc.Calc
	page       *template.Template
	plotWidth  int
	plotHeight int
}

func NewServer(calc *icalc.Calc) *Server {
	return &Server{
		calc:       calc,
		page:       template.Must(template.ParseFS(templates, "templates/index.html")),
		plotWidth:  config.PlotWidth,
		plotHeight: config.PlotHeight,
	}
}

// EvaluateRequest is the body of POST /api/evaluate
type EvaluateRequest struct {
	Mode       string            `json:"mode"`
	Expression string            `json:"expression"`
	Params     map[string]string `json:"params"`
}

// EvaluateResponse carries the rendered result of one evaluation
type EvaluateResponse struct {
	RequestID string         `json:"request_id"`
	Display   render.Display `json:"display"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Handler returns the routed handler with request ids and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/render.png", s.handleRender)
	mux.HandleFunc("/api/modes", s.handleModes)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleWeb)

	return s.withRequestID(s.enableCORS(mux))
}

func (s *Server) Start(addr string) error {
	log.Printf("API Server listening on %s", addr)
	log.Println("Available endpoints:")
	log.Println("  GET  /                 - Calculator web page")
	log.Println("  POST /api/evaluate     - Evaluate {mode, expression, params}")
	log.Println("  GET  /api/render.png   - Plot or result card as PNG")
	log.Println("  GET  /api/modes        - List modes and their fields")
	log.Println("  GET  /health           - Health check")

	return http.ListenAndServe(addr, s.Handler())
}

// POST /api/evaluate - Evaluate one request
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	mode, err := icalc.ParseMode(req.Mode)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := s.evaluate(r.Context(), icalc.Input{Mode: mode, Expression: req.Expression, Params: req.Params})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EvaluateResponse{RequestID: requestID(r.Context()), Display: d})
}

// GET /api/render.png - Render a result as an image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	in, err := inputFromQuery(r.URL.Query())
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	d := s.evaluate(r.Context(), in)

	var b []byte
	if d.Plot != nil {
		b, err = render.PlotPNG(d.Plot, s.plotWidth, s.plotHeight)
	} else {
		b, err = render.CardPNG(d, s.plotWidth, s.plotHeight/2)
	}
	if err != nil {
		s.sendError(w, "Render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(b)
}

// GET /api/modes - List modes with their form fields
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count": len(icalc.Modes),
		"modes": render.Infos(),
	})
}

// GET /health - Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

type pageData struct {
	Modes   []render.ModeInfo
	Current render.ModeInfo
	Values  map[string]string
	Display *render.Display
	PlotURI template.URL
}

// GET / - Calculator page. The form submits with GET so results are
// linkable; "submit" in the query triggers an evaluation.
func (s *Server) handleWeb(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	in, err := inputFromQuery(q)
	if err != nil {
		in = icalc.Input{Mode: icalc.ModeNone}
	}

	data := pageData{
		Modes:   render.Infos(),
		Current: render.Info(in.Mode),
		Values:  formValues(in),
	}
	switch {
	case in.Mode == icalc.ModeNone:
		d := render.Welcome()
		data.Display = &d
	case q.Has("submit"):
		d := s.evaluate(r.Context(), in)
		data.Display = &d
		if d.Plot != nil {
			if b, err := render.PlotPNG(d.Plot, s.plotWidth, s.plotHeight); err == nil {
				data.PlotURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(b))
			} else {
				log.Printf("[%s] Plot render failed: %s", requestID(r.Context()), err)
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		log.Printf("[%s] Template failed: %s", requestID(r.Context()), err)
	}
}

func (s *Server) evaluate(ctx context.Context, in icalc.Input) render.Display {
	if in.Mode == icalc.ModeNone {
		return render.Welcome()
	}
	start := time.Now()
	res := s.calc.EvaluateInput(in)
	log.Printf("[%s] Evaluate %s -> %s in %s", requestID(ctx), in, res.ResultKind(), time.Since(start))
	return render.FromResult(in.Mode, res)
}

// inputFromQuery reads the mode, the expression and the mode's fields from
// query parameters. Absent fields take their defaults.
func inputFromQuery(q url.Values) (icalc.Input, error) {
	mode, err := icalc.ParseMode(q.Get("mode"))
	if err != nil {
		return icalc.Input{}, err
	}
	in := icalc.Defaults(mode)
	if mode.ExpressionBased() && q.Has(icalc.ParamExpression) {
		in.Expression = q.Get(icalc.ParamExpression)
	}
	for _, f := range icalc.Fields(mode) {
		if f.Name != icalc.ParamExpression && q.Has(f.Name) {
			in.Params[f.Name] = q.Get(f.Name)
		}
	}
	if v := q.Get(icalc.ParamVariable); v != "" {
		in.Params[icalc.ParamVariable] = v
	}
	return in, nil
}

func formValues(in icalc.Input) map[string]string {
	values := map[string]string{icalc.ParamExpression: in.Expression}
	for k, v := range in.Params {
		values[k] = v
	}
	return values
}

func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/infix"
)

// maxBody limits the size of request bodies.
const maxBody = 1 << 16

// server evaluates expressions over HTTP.
type server struct {
	Logger zerolog.Logger
	Mux    *http.ServeMux
	cfg    config
}

func newServer(cfg config, log zerolog.Logger) *server {
	s := &server{
		Logger: log,
		Mux:    http.NewServeMux(),
		cfg:    cfg,
	}
	s.Mux.HandleFunc("POST /v1/eval", s.handleEval)
	s.Mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

type evalRequest struct {
	Expression string `json:"expression"`
}

type evalResponse struct {
	Result      number           `json:"result"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type diagnosticJSON struct {
	Kind    infix.Kind `json:"kind"`
	Col     int        `json:"col"`
	Token   string     `json:"token,omitempty"`
	Message string     `json:"message"`
	Warning bool       `json:"warning"`
}

type errorResponse struct {
	Message string `json:"message"`
	Col     int    `json:"col,omitempty"`
}

// number is a float64 which encodes infinities and NaN as strings, since JSON
// numbers can't represent them.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64))), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (s *server) handleEval(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", id)
	log := s.Logger.With().Str("request_id", id).Logger()

	var req evalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&req); err != nil {
		log.Info().Err(err).Msg("bad request body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}
	ev := infix.NewEvaluator(s.cfg.options(log)...)
	v, err := ev.Eval(req.Expression)
	if err != nil {
		log.Info().Err(err).Str("expr", req.Expression).Msg("rejected expression")
		resp := errorResponse{Message: err.Error()}
		var ie infix.InputError
		if errors.As(err, &ie) {
			resp.Col = ie.Pos()
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	ds := ev.Diagnostics()
	resp := evalResponse{
		Result:      number(v),
		Diagnostics: make([]diagnosticJSON, 0, len(ds)),
	}
	for _, d := range ds {
		resp.Diagnostics = append(resp.Diagnostics, diagnosticJSON{
			Kind:    d.Kind,
			Col:     d.Col,
			Token:   d.Text,
			Message: d.Error(),
			Warning: d.Kind.Warning(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

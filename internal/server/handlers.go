package server

import (
	"net/http"
	"time"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	report := s.specs.ComputerSpecs(r.Context())

	s.log.WithFields(logrus.Fields{
		"request_id": requestID(r),
		"duration":   time.Since(start),
	}).Debug("Served computer specs")

	s.respondJSON(w, http.StatusOK, report)
}

// handleReportIngest accepts an Envelope pushed by another host.
func (s *Server) handleReportIngest(w http.ResponseWriter, r *http.Request) {
	var env protocol.Envelope
	if err := decodeJSONBody(r, &env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validateEnvelope(env); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.Store.Put(env)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID(r),
		"hostname":   env.Hostname,
		"os":         env.Data.OS,
		"cpu":        env.Data.CPU,
		"ram":        env.Data.RAM,
	}).Info("Received computer specs")

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleReportLookup(w http.ResponseWriter, r *http.Request) {
	env, ok := s.Store.Get(r.PathValue("hostname"))
	if !ok {
		http.Error(w, "No report for host", http.StatusNotFound)
		return
	}

	s.respondJSON(w, http.StatusOK, env)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) setupMetrics() {
	if s.gatherer == nil {
		return
	}
	s.Router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

// Package api serves the REST endpoints of the guardhouse dashboard.
package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"

	"github.com/rqa-security/guardhouse/config"
	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/metrics"
	"github.com/rqa-security/guardhouse/pkg/logger"
)

// Config holds the settings of the HTTP layer.
type Config struct {
	// AllowedOrigins are the browser origins allowed by CORS. "*" allows any origin.
	AllowedOrigins []string
	// DefaultBonus and DefaultAllowance fill in the salary components a calculation
	// request leaves out.
	DefaultBonus     decimal.Decimal
	DefaultAllowance decimal.Decimal
	// DueWindowDays is how many days before a pay date an unpaid salary is flagged as due.
	DueWindowDays int
}

// NewConfig derives the HTTP settings from the service configuration.
func NewConfig(cfg *config.Config) Config {
	return Config{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		DefaultBonus:     cfg.Payroll.DefaultBonus,
		DefaultAllowance: cfg.Payroll.DefaultAllowance,
		DueWindowDays:    cfg.Payroll.DueWindowDays,
	}
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	store    datastore.Store
	lggr     logger.Logger
	cfg      Config
	metrics  *metrics.Collector
	registry *prometheus.Registry
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the clock used for contract terms, pay dates and the dashboard.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRegistry serves the metrics from reg instead of a new registry with the Go and
// process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer returns a Server reading and writing through store.
func NewServer(store datastore.Store, lggr logger.Logger, cfg Config, opts ...Option) (*Server, error) {
	s := &Server{
		store:    store,
		lggr:     lggr.Named("http"),
		cfg:      cfg,
		metrics:  metrics.NewCollector(),
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		if err := s.registry.Register(collectors.NewGoCollector()); err != nil {
			return nil, err
		}
		if err := s.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, err
		}
	}
	if err := s.registry.Register(s.metrics); err != nil {
		return nil, err
	}

	return s, nil
}

// Handler returns the root handler of the API, with CORS applied. The middleware wraps
// the router rather than being registered on it, so that 404 and 405 answers are tagged
// and logged too.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(routeLabel)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.dashboard).Methods(http.MethodGet)

	api.HandleFunc("/personnel", s.listPersonnel).Methods(http.MethodGet)
	api.HandleFunc("/personnel", s.createPersonnel).Methods(http.MethodPost)
	api.HandleFunc("/personnel/{id}", s.getPersonnel).Methods(http.MethodGet)
	api.HandleFunc("/personnel/{id}", s.updatePersonnel).Methods(http.MethodPut)
	api.HandleFunc("/personnel/{id}", s.deletePersonnel).Methods(http.MethodDelete)
	api.HandleFunc("/lookup-data", s.lookupData).Methods(http.MethodGet)

	api.HandleFunc("/clients", s.listClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", s.createClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id}", s.getClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", s.updateClient).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id}", s.deleteClient).Methods(http.MethodDelete)
	api.HandleFunc("/client-types", s.clientTypes).Methods(http.MethodGet)

	api.HandleFunc("/contracts", s.listContracts).Methods(http.MethodGet)
	api.HandleFunc("/contracts", s.createContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}", s.getContract).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id}", s.updateContract).Methods(http.MethodPut)
	api.HandleFunc("/contracts/{id}", s.deleteContract).Methods(http.MethodDelete)
	api.HandleFunc("/contracts/{id}/extend", s.extendContract).Methods(http.MethodPost)

	api.HandleFunc("/assignments", s.listAssignments).Methods(http.MethodGet)
	api.HandleFunc("/assignments", s.createAssignment).Methods(http.MethodPost)
	api.HandleFunc("/assignments/{id}", s.getAssignment).Methods(http.MethodGet)
	api.HandleFunc("/assignments/{id}", s.updateAssignment).Methods(http.MethodPut)
	api.HandleFunc("/assignments/{id}", s.deleteAssignment).Methods(http.MethodDelete)
	api.HandleFunc("/assignment-statuses", s.assignmentStatuses).Methods(http.MethodGet)

	api.HandleFunc("/salary/personnel", s.listSalaries).Methods(http.MethodGet)
	api.HandleFunc("/salary/deductions", s.listDeductions).Methods(http.MethodGet)
	api.HandleFunc("/salary/calculate", s.calculateSalary).Methods(http.MethodPost)
	api.HandleFunc("/salary/{personnelId}/deductions", s.personnelDeductions).Methods(http.MethodGet)
	api.HandleFunc("/salary/{personnelId}/status", s.setPaymentStatus).Methods(http.MethodPut)
	api.HandleFunc("/salary/{personnelId}", s.deleteSalary).Methods(http.MethodDelete)

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(s.requestID(s.accessLog(s.recoverer(r))))
}

// today is the calendar date of the server clock.
func (s *Server) today() datastore.Date {
	return datastore.DateOf(s.now())
}

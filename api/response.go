package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/payroll"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// envelope is the body of every API response.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

// fieldError names a request field that failed validation and the rule it broke.
type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// requestError is an error caused by the request. Its message is sent to the client.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// errorStatuses maps the domain errors whose text is safe to show to a status code.
var errorStatuses = []struct {
	err    error
	status int
}{
	{datastore.ErrPersonnelNotFound, http.StatusNotFound},
	{datastore.ErrClientNotFound, http.StatusNotFound},
	{datastore.ErrContractNotFound, http.StatusNotFound},
	{datastore.ErrAssignmentNotFound, http.StatusNotFound},
	{datastore.ErrSalaryNotFound, http.StatusNotFound},
	{datastore.ErrUserNotFound, http.StatusNotFound},
	{datastore.ErrConflict, http.StatusConflict},
	{datastore.ErrStillReferenced, http.StatusConflict},
	{datastore.ErrInvalidReference, http.StatusBadRequest},
	{payroll.ErrNegativeAmount, http.StatusBadRequest},
	{payroll.ErrDuplicateDeduction, http.StatusBadRequest},
	{payroll.ErrInvalidPaymentStatus, http.StatusBadRequest},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (s *Server) created(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: msg, Data: data})
}

func (s *Server) done(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: data})
}

// fail writes the error response for err. Errors that are not caused by the request
// are logged and answered with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reqErr *requestError
		valErr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, reqErr.status, envelope{Message: reqErr.msg})
		return
	case errors.As(err, &valErr):
		fields := make([]fieldError, 0, len(valErr))
		for _, fe := range valErr {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		writeJSON(w, http.StatusBadRequest, envelope{Message: "Invalid request: " + joinFields(fields), Errors: fields})
		return
	}

	for _, known := range errorStatuses {
		if errors.Is(err, known.err) {
			writeJSON(w, known.status, envelope{Message: known.err.Error()})
			return
		}
	}

	s.lggr.Errorw("Request failed",
		"requestID", requestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	writeJSON(w, http.StatusInternalServerError, envelope{Message: "Internal server error"})
}

func joinFields(fields []fieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}

	return strings.Join(parts, ", ")
}

// decode reads the JSON body of r into dst and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return s.decodeBody(w, r, dst, false)
}

// decodeOptional is decode for requests whose body may be left out. An empty body
// leaves dst untouched, whether or not the client declared a length.
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) error {
	return s.decodeBody(w, r, dst, true)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}

		return badRequest("Invalid JSON body: %v", err)
	}

	return s.validate.Struct(dst)
}

// pathID parses the named path variable as a positive id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("Invalid %s: %q", name, raw)
	}

	return id, nil
}

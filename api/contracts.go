package api

import (
	"net/http"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/payroll"
)

// defaultExtensionYears is used when an extend request does not name a duration.
const defaultExtensionYears = 1

// contractView is a contract with its title and the progress of its term.
type contractView struct {
	datastore.Contract
	ContractTitle string `json:"contract_title"`
	payroll.Term
}

type extendRequest struct {
	Years datastore.NullInt64 `json:"years" validate:"omitempty,lte=50"`
}

func (s *Server) contractView(c datastore.Contract) contractView {
	return contractView{
		Contract:      c,
		ContractTitle: c.Title(),
		Term:          payroll.ContractTerm(c.StartDate, c.EndDate, s.now()),
	}
}

// listContracts returns the contracts, optionally narrowed to one term status with
// ?status=active|expiring|expired.
func (s *Server) listContracts(w http.ResponseWriter, r *http.Request) {
	var status payroll.TermStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = payroll.ParseTermStatus(raw); err != nil {
			s.fail(w, r, badRequest("%v", err))
			return
		}
	}

	list, err := s.store.Contracts().List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views := make([]contractView, 0, len(list))
	for _, c := range list {
		v := s.contractView(c)
		if status != "" && v.Term.Status != status {
			continue
		}
		views = append(views, v)
	}

	s.ok(w, views)
}

func (s *Server) getContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Contracts().Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, s.contractView(c))
}

func (s *Server) decodeContract(w http.ResponseWriter, r *http.Request) (datastore.ContractInput, error) {
	var in datastore.ContractInput
	if err := s.decode(w, r, &in); err != nil {
		return in, err
	}
	if in.EndDate.Before(in.StartDate.Time) {
		return in, badRequest("end_date must not be before start_date")
	}

	return in, nil
}

func (s *Server) createContract(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeContract(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Contracts().Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.created(w, "Contract created successfully", s.contractView(c))
}

func (s *Server) updateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := s.decodeContract(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Contracts().Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Contract updated successfully", s.contractView(c))
}

func (s *Server) deleteContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err = s.store.Contracts().Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Contract deleted successfully", nil)
}

// extendContract pushes the end date of a contract by the requested number of years,
// one when the body is empty.
func (s *Server) extendContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req extendRequest
	if err = s.decodeOptional(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	years := defaultExtensionYears
	if req.Years.Valid {
		if req.Years.Int64 <= 0 {
			s.fail(w, r, badRequest("years must be positive"))
			return
		}
		years = int(req.Years.Int64)
	}

	c, err := s.store.Contracts().Extend(r.Context(), id, years)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Contract extended successfully", s.contractView(c))
}

package api

import (
	"net/http"
	"strconv"

	"github.com/rqa-security/guardhouse/datastore"
)

// listAssignments returns the assignments matching ?search=. With ?active=true only the
// active deployments are returned.
func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var activeOnly bool
	if raw := q.Get("active"); raw != "" {
		var err error
		if activeOnly, err = strconv.ParseBool(raw); err != nil {
			s.fail(w, r, badRequest("Invalid active flag: %q", raw))
			return
		}
	}

	list, err := s.store.Assignments().List(r.Context(), q.Get("search"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if activeOnly {
		list = datastore.Filter(list, datastore.AssignmentByActive())
	}

	s.ok(w, list)
}

func (s *Server) getAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a, err := s.store.Assignments().Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, a)
}

func (s *Server) decodeAssignment(w http.ResponseWriter, r *http.Request) (datastore.AssignmentInput, error) {
	var in datastore.AssignmentInput
	if err := s.decode(w, r, &in); err != nil {
		return in, err
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate.Time) {
		return in, badRequest("end_date must not be before start_date")
	}

	return in, nil
}

func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeAssignment(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a, err := s.store.Assignments().Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.created(w, "Assignment created successfully", a)
}

func (s *Server) updateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := s.decodeAssignment(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a, err := s.store.Assignments().Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Assignment updated successfully", a)
}

func (s *Server) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err = s.store.Assignments().Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Assignment deleted successfully", nil)
}

func (s *Server) assignmentStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.store.Lookups().AssignmentStatuses(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, statuses)
}

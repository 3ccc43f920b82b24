package api

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/rqa-security/guardhouse/datastore"
)

func (s *Server) listPersonnel(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Personnel().List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, list)
}

func (s *Server) getPersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.store.Personnel().Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, p)
}

func (s *Server) createPersonnel(w http.ResponseWriter, r *http.Request) {
	var in datastore.PersonnelInput
	if err := s.decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.store.Personnel().Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.created(w, "Personnel created successfully", p)
}

func (s *Server) updatePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in datastore.PersonnelInput
	if err = s.decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.store.Personnel().Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Personnel updated successfully", p)
}

func (s *Server) deletePersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err = s.store.Personnel().Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Personnel deleted successfully", nil)
}

type lookupData struct {
	Genders       []datastore.Gender      `json:"genders"`
	CivilStatuses []datastore.CivilStatus `json:"civilStatuses"`
}

// lookupData returns the dropdown options of the personnel form.
func (s *Server) lookupData(w http.ResponseWriter, r *http.Request) {
	var data lookupData

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		data.Genders, err = s.store.Lookups().Genders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.CivilStatuses, err = s.store.Lookups().CivilStatuses(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, data)
}

package api

import (
	"net/http"

	"github.com/rqa-security/guardhouse/datastore"
)

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Clients().List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, list)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Clients().Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, c)
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var in datastore.ClientInput
	if err := s.decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Clients().Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.created(w, "Client created successfully", c)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in datastore.ClientInput
	if err = s.decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.Clients().Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Client updated successfully", c)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err = s.store.Clients().Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Client deleted successfully", nil)
}

func (s *Server) clientTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.Lookups().ClientTypes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, types)
}

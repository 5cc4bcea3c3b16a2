package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	sheetstore "github.com/ideamans/go-sheetstore"
)

type updateRequest struct {
	Criteria sheetstore.Criteria `json:"criteria"`
	Patch    sheetstore.Record   `json:"patch"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) getFields(w http.ResponseWriter, r *http.Request) {
	fields, err := s.store.Fields(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fields)
}

func (s *Server) getRecords(w http.ResponseWriter, r *http.Request) {
	criteria := make(sheetstore.Criteria)
	for field, values := range r.URL.Query() {
		if len(values) > 0 {
			criteria[field] = values[0]
		}
	}

	records, err := s.store.Query(r.Context(), criteria)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if records == nil {
		records = []sheetstore.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) postRecords(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	records, err := decodeRecords(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON record or array of records")
		return
	}

	inserted, err := s.store.Insert(r.Context(), records...)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, inserted)
}

func (s *Server) patchRecords(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON object with criteria and patch")
		return
	}

	updated, err := s.store.Update(r.Context(), req.Criteria, req.Patch)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if updated == nil {
		updated = []sheetstore.Record{}
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// decodeRecords accepts either a single JSON object or a JSON array
// of objects.
func decodeRecords(body []byte) ([]sheetstore.Record, error) {
	var many []sheetstore.Record
	if err := json.Unmarshal(body, &many); err == nil {
		return many, nil
	}

	var one sheetstore.Record
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, err
	}
	return []sheetstore.Record{one}, nil
}

// writeStoreError maps store failures: an unknown patch field is the
// caller's mistake, anything else came from the transport.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, sheetstore.ErrUnknownField) {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.WithError(err).Error("store operation failed")
	s.writeError(w, http.StatusBadGateway, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// Stats exported for testing purposes
type Stats struct {
	MDB databases.MissingPersonDatabase
	FDB databases.FoundPersonDatabase
}

// StatsHandler returns platform-wide report counts
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	missing, err := s.MDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count missing person reports", http.StatusInternalServerError, w, err)
		return
	}
	found, err := s.FDB.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count found person reports", http.StatusInternalServerError, w, err)
		return
	}
	resolved, err := s.FDB.CountDocuments(r.Context(), bson.M{"status": models.FoundStatusResolved})
	if err != nil {
		config.ErrorStatus("failed to count resolved reports", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.StatsResponse{
		Missing:  missing,
		Found:    found,
		Resolved: resolved,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

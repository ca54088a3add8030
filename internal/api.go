package internal

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// APIServer exposes the inbound command surface over local HTTP: stats
// queries, settings updates, goal management, and data clearing. It is meant
// for the popup/companion process on localhost, not the open network.
type APIServer struct {
	store   *Store
	engine  *GoalEngine
	builder *ReportBuilder
}

// NewAPIServer creates an APIServer
func NewAPIServer(store *Store, engine *GoalEngine, builder *ReportBuilder) *APIServer {
	return &APIServer{
		store:   store,
		engine:  engine,
		builder: builder,
	}
}

// Router builds the HTTP route table
func (s *APIServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/settings", s.handleGetSettings).Methods("GET")
	r.HandleFunc("/settings", s.handleUpdateSettings).Methods("PUT")
	r.HandleFunc("/clear", s.handleClear).Methods("POST")
	r.HandleFunc("/goals", s.handleListGoals).Methods("GET")
	r.HandleFunc("/goals", s.handleAddGoal).Methods("POST")
	r.HandleFunc("/goals/{id}", s.handleRemoveGoal).Methods("DELETE")
	r.HandleFunc("/goals/{id}/toggle", s.handleToggleGoal).Methods("POST")
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LogWarn("Failed to write response: %v", err)
	}
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := fmt.Fprintln(w, "OK"); err != nil {
		LogWarn("Failed to write health response: %v", err)
	}
}

func (s *APIServer) handleStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.builder.Build()
	if err != nil {
		http.Error(w, "failed to build stats report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *APIServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings()
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings replaces the user-facing settings. The last-check
// timestamp is carried over so an update does not defeat the notification
// throttle.
func (s *APIServer) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var incoming Settings
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		http.Error(w, "invalid settings payload", http.StatusBadRequest)
		return
	}
	if incoming.NotificationFrequency <= 0 || incoming.DataRetention <= 0 {
		http.Error(w, "frequency and retention must be positive", http.StatusBadRequest)
		return
	}

	current, err := s.store.Settings()
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	incoming.LastNotificationCheck = current.LastNotificationCheck

	if err := s.store.SaveSettings(&incoming); err != nil {
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *APIServer) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearData(); err != nil {
		http.Error(w, "failed to clear data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *APIServer) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.Goals()
	if err != nil {
		http.Error(w, "failed to load goals", http.StatusInternalServerError)
		return
	}
	if goals == nil {
		goals = []*Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

type addGoalRequest struct {
	Website string  `json:"website"`
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
}

func (s *APIServer) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req addGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid goal payload", http.StatusBadRequest)
		return
	}

	goalType, err := ParseGoalType(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal := &Goal{
		Website: req.Website,
		Type:    goalType,
		Limit:   req.Value,
	}
	if err := s.engine.AddGoal(goal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *APIServer) handleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.engine.RemoveGoal(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *APIServer) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.engine.ToggleGoal(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/crcresearch/padcheck/internal/pad"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	records := s.service.Projects(r.Context())

	projects := make([]pad.Project, 0, len(records))
	for _, rec := range records {
		projects = append(projects, pad.ProjectFromRecord(rec))
	}
	// Most recently created projects first.
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID > projects[j].ID })

	users := s.service.Users(r.Context())

	if err := s.renderPage(w,
		map[string]any{"Projects": projects, "Users": users},
		"base.html", "pages/index.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

// cardResult is the template data for the card_result partial.
type cardResult struct {
	Card        *pad.Card
	Username    string
	Error       string
	RecentCards []pad.Card
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	project := strings.TrimSpace(r.FormValue("project"))
	if project == "" {
		http.Error(w, "project required", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))

	var (
		card   *pad.Card
		errMsg string
	)
	if username != "" {
		card = s.service.LatestCardByUser(r.Context(), username, project)
		errMsg = fmt.Sprintf("No cards found for user '%s' in project '%s'", username, project)
	} else {
		card = s.service.LatestCardInProject(r.Context(), project)
		errMsg = fmt.Sprintf("No cards found in project '%s'", project)
	}
	if card != nil {
		errMsg = ""
	}

	result := cardResult{
		Card:        card,
		Username:    username,
		Error:       errMsg,
		RecentCards: s.service.RecentCardsInProject(r.Context(), project, 3),
	}
	if err := s.renderPartial(w, "partials/card_result.html", result); err != nil {
		s.logger.Error("render partial error", "error", err)
	}
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	card := s.service.CardByID(r.Context(), cardID)
	if card == nil {
		result := cardResult{Error: fmt.Sprintf("Card %d not found", cardID)}
		if err := s.renderPartial(w, "partials/card_result.html", result); err != nil {
			s.logger.Error("render partial error", "error", err)
		}
		return
	}

	result := cardResult{
		Card:        card,
		RecentCards: s.service.RecentCardsInProject(r.Context(), card.ProjectName, 3),
	}
	if err := s.renderPartial(w, "partials/card_result.html", result); err != nil {
		s.logger.Error("render partial error", "error", err)
	}
}

func (s *Server) handleCheckNewer(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	if project == "" {
		http.Error(w, "project required", http.StatusBadRequest)
		return
	}
	currentID, err := strconv.Atoi(r.URL.Query().Get("current_id"))
	if err != nil {
		http.Error(w, "invalid current_id", http.StatusBadRequest)
		return
	}

	latest := s.service.LatestCardInProject(r.Context(), project)
	if latest == nil || latest.ID == currentID {
		w.WriteHeader(http.StatusOK)
		return
	}

	data := map[string]any{"Project": project, "NewID": latest.ID}
	if err := s.renderPartial(w, "partials/newer_alert.html", data); err != nil {
		s.logger.Error("render partial error", "error", err)
	}
}

func (s *Server) handleRefreshCache(w http.ResponseWriter, r *http.Request) {
	s.service.ClearCache()
	writeJSON(w, map[string]string{"status": "ok", "message": "Cache cleared"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

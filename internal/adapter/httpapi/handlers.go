package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if !s.Sessions.Login(w, req.PIN) {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.Sessions.Logout(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.AssetService.List(r.Context())
	if err != nil {
		writeError(w, err, "failed to load assets")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.AssetSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	snapshot.RowID = 0

	id, err := s.AssetService.Add(r.Context(), snapshot)
	if err != nil {
		writeError(w, err, "failed to save asset")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "row": id})
}

func (s *Server) handleDeleteAssets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows []domain.RowID `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Rows) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid rows"})
		return
	}

	deleted, err := s.AssetService.Delete(r.Context(), req.Rows)
	if err != nil {
		writeError(w, err, "failed to delete assets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := domain.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, err, "")
		return
	}

	res, err := s.AssetService.Dashboard(r.Context(), view)
	if err != nil {
		writeError(w, err, "failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.CommentService.List(r.Context())
	if err != nil {
		writeError(w, err, "failed to load comments")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var c domain.CommentEntry
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	c.RowID = 0

	id, err := s.CommentService.Add(r.Context(), c)
	if err != nil {
		writeError(w, err, "failed to save comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "row": id})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRowID(mux.Vars(r)["row"])
	if err != nil {
		writeError(w, err, "")
		return
	}

	if err := s.CommentService.Delete(r.Context(), id); err != nil {
		writeError(w, err, "failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package httpapi

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/simaogato/assetboard-backend/internal/usecase/asset"
	"github.com/simaogato/assetboard-backend/internal/usecase/comment"
)

// Server exposes the dashboard REST API
type Server struct {
	AssetService   *asset.AssetService
	CommentService *comment.CommentService
	Sessions       *SessionManager

	router *mux.Router
}

// NewServer creates the HTTP API. When staticDir is not empty the built UI
// is served from it for every non-API path.
func NewServer(
	assetService *asset.AssetService,
	commentService *comment.CommentService,
	sessions *SessionManager,
	staticDir string,
) *Server {
	s := &Server{
		AssetService:   assetService,
		CommentService: commentService,
		Sessions:       sessions,
	}

	r := mux.NewRouter()
	r.Use(requestLogger)
	r.Use(sessions.Middleware)

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/auth", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth", s.handleLogout).Methods(http.MethodDelete)
	r.HandleFunc("/api/assets", s.handleListAssets).Methods(http.MethodGet)
	r.HandleFunc("/api/assets", s.handleAddAsset).Methods(http.MethodPost)
	r.HandleFunc("/api/assets", s.handleDeleteAssets).Methods(http.MethodDelete)
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/comments", s.handleListComments).Methods(http.MethodGet)
	r.HandleFunc("/api/comments", s.handleAddComment).Methods(http.MethodPost)
	r.HandleFunc("/api/comments/{row}", s.handleDeleteComment).Methods(http.MethodDelete)

	if staticDir != "" {
		r.PathPrefix("/").Handler(spaHandler{staticPath: staticDir, indexPath: "index.html"})
	}

	s.router = r
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// spaHandler serves files from staticPath, falling back to the index page
// so client-side routes such as /login resolve
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	fi, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && fi.IsDir()) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
}

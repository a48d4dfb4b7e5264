// Package web serves the three pages of the chat: the login gate, the
// message feed, and logout.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"cofre/internal/logging"
	"cofre/internal/server/config"
	"cofre/internal/server/identity"
	"cofre/internal/server/services"
	"cofre/internal/server/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// passFieldPrefix marks the login password field. The suffix is randomized
// per render; the server only ever matches on the prefix.
const passFieldPrefix = "pass_"

// maxUploadBytes caps the in-memory part of a multipart chat submission.
const maxUploadBytes = 32 << 20

// Handler holds the wired dependencies of the HTTP surface.
type Handler struct {
	cfg       *config.Config
	sessions  *session.Manager
	chat      *services.ChatService
	logger    logging.Logger
	templates *template.Template
}

func NewHandler(cfg *config.Config, sessions *session.Manager, chat *services.ChatService, logger logging.Logger) (*Handler, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{cfg: cfg, sessions: sessions, chat: chat, logger: logger, templates: t}, nil
}

// Routes builds the chi router for the whole application.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", h.loginForm)
	r.Post("/", h.login)
	r.Get("/sair", h.logout)
	r.Get("/chat", h.chatPage)
	r.Post("/chat", h.postMessage)

	return r
}

type loginView struct {
	Error string
	Field string
}

type chatView struct {
	Viewer   identity.Participant
	Messages []services.FeedItem
}

// loginFieldSuffix returns a fresh random suffix for the password input so
// generic form-fill autocompletion never latches onto the field. Cosmetic
// only; the server matches on the pass_ prefix.
func loginFieldSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// loginForm renders the entry page. Any existing session is cleared first,
// so every fresh navigation forces re-authentication.
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	h.renderLogin(w, r, "")
}

// login checks the submitted secret. The password field name is randomized
// per render, so the submission is scanned for the one field carrying the
// expected prefix; everything else is ignored.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "Senha incorreta.")
		return
	}

	secret := ""
	for key, vals := range r.PostForm {
		if strings.HasPrefix(key, passFieldPrefix) && len(vals) > 0 {
			secret = vals[0]
			break
		}
	}

	if _, ok := identity.Resolve(secret, h.cfg); !ok {
		h.renderLogin(w, r, "Senha incorreta.")
		return
	}

	if err := h.sessions.Create(w, secret); err != nil {
		h.logger.Error(r.Context(), "session create failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusFound)
}

// logout clears the session and returns to the entry page.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// chatPage renders the feed. Without a valid session it never touches
// message content and redirects to the entry page instead.
func (h *Handler) chatPage(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	items, err := h.chat.Feed(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "feed load failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	setNoCacheHeaders(w)
	if err := h.templates.ExecuteTemplate(w, "chat.html", chatView{Viewer: viewer, Messages: items}); err != nil {
		h.logger.Error(r.Context(), "chat render failed", "error", err.Error())
	}
}

// postMessage appends a message (text and/or attachment) and redirects back
// to the feed, so a refresh never re-submits.
func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.logger.Warn(r.Context(), "bad chat submission", "error", err.Error())
		http.Redirect(w, r, "/chat", http.StatusFound)
		return
	}

	var att *services.Attachment
	if r.MultipartForm != nil {
		if file, header, err := r.FormFile("arquivo"); err == nil {
			defer file.Close()
			if header.Filename != "" {
				att = &services.Attachment{
					Filename:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Body:        file,
				}
			}
		}
	}

	if err := h.chat.Post(r.Context(), viewer, r.FormValue("msg"), att); err != nil {
		h.logger.Error(r.Context(), "message append failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/chat", http.StatusFound)
}

// viewer resolves the request's session into a participant. Both steps can
// fail (no/invalid cookie, secret no longer configured); either way the
// request is unauthenticated.
func (h *Handler) viewer(r *http.Request) (identity.Participant, bool) {
	secret, err := h.sessions.Read(r)
	if err != nil {
		return identity.Participant{}, false
	}
	return identity.Resolve(secret, h.cfg)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	view := loginView{Error: errMsg, Field: loginFieldSuffix()}
	if err := h.templates.ExecuteTemplate(w, "login.html", view); err != nil {
		h.logger.Error(r.Context(), "login render failed", "error", err.Error())
	}
}

// setNoCacheHeaders tells the client and any intermediary never to cache
// the feed. Best effort against browser history/disk caches, not a
// security boundary.
func setNoCacheHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")
}

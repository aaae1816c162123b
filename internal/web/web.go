package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/windoze95/recipe-search/internal/searchclient"
)

// SessionCookie names the cookie holding the browser's session id.
const SessionCookie = "recipe_session"

// IndexTemplate is the name of the search page template.
const IndexTemplate = "index.html"

//go:embed templates/*.html
var templatesFS embed.FS

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// Handler serves the search page.
type Handler struct {
	Store   *searchclient.SessionStore
	Options searchclient.CardOptions
}

// NewHandler creates a new Handler.
func NewHandler(store *searchclient.SessionStore, opts searchclient.CardOptions) *Handler {
	return &Handler{Store: store, Options: opts}
}

type pageData struct {
	Query   string
	Loading bool
	Settled bool
	Cards   []searchclient.Card
	Error   string
}

// Index handles GET / and renders the session as it is.
func (h *Handler) Index(c *gin.Context) {
	h.render(c, h.session(c).Snapshot())
}

// Search handles GET /search?query=... and renders the settled session.
// Blank queries render the page unchanged.
func (h *Handler) Search(c *gin.Context) {
	sess := h.session(c)
	// Failures are recorded in the session and rendered from the snapshot.
	_ = sess.Submit(c.Request.Context(), c.Query("query"))
	h.render(c, sess.Snapshot())
}

func (h *Handler) session(c *gin.Context) *searchclient.Session {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		id = uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	}
	return h.Store.Get(id)
}

func (h *Handler) render(c *gin.Context, snap searchclient.Snapshot) {
	c.HTML(http.StatusOK, IndexTemplate, pageData{
		Query:   snap.Query,
		Loading: snap.State == searchclient.Loading,
		Settled: snap.State == searchclient.Settled,
		Cards:   searchclient.NewCards(snap.Hits, h.Options),
		Error:   errorMessage(snap.Err),
	})
}

// errorMessage is the text shown to the user for a failed search.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var relayErr *searchclient.RelayError
	if errors.As(err, &relayErr) && relayErr.Message != "" {
		return relayErr.Message + ". Please try again."
	}
	return "The recipe service could not be reached. Please try again."
}

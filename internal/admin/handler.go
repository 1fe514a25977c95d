package admin

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	log "github.com/sirupsen/logrus"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/notice"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvpclient"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

const createdAtLayout = "02.01.2006, 15:04:05"

type Handler struct {
	gate *Gate
}

func NewHandler(g *Gate) *Handler {
	return &Handler{gate: g}
}

func RegisterHandlers(r gin.IRouter, h *Handler) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin") })
	r.GET("/admin", h.GetAdmin)
	r.POST("/admin/login", h.PostLogin)
	r.POST("/admin/logout", h.PostLogout)
	r.GET("/health", h.GetHealth)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAdmin shows the dashboard when the remembered key still works and the
// login form otherwise. Reloading it refreshes the list.
func (h *Handler) GetAdmin(c *gin.Context) {
	var n *notice.Notice
	if flash, ok := notice.ReadAndClear(c.Writer, c.Request); ok {
		n = &flash
	}

	if id, ok := session.ReadCookie(c.Request); ok {
		if responses, ok := h.gate.Resume(c.Request.Context(), id); ok {
			h.renderDashboard(c, responses, n)
			return
		}
	}
	// A success notice never belongs on the login view.
	if n != nil && n.Kind == notice.KindSuccess {
		n = nil
	}
	h.renderLogin(c, http.StatusOK, n)
}

func (h *Handler) PostLogin(c *gin.Context) {
	id, responses, err := h.gate.Login(c.Request.Context(), c.PostForm("key"))
	if err != nil {
		status, key := loginFailure(err)
		n := notice.Error(key)
		h.renderLogin(c, status, &n)
		return
	}

	log.WithField("responses", len(responses)).Info("admin logged in")
	session.WriteCookie(c.Writer, c.Request, id)
	welcome := notice.Success(notice.AdminWelcome)
	h.renderDashboard(c, responses, &welcome)
}

func (h *Handler) PostLogout(c *gin.Context) {
	if id, ok := session.ReadCookie(c.Request); ok {
		if err := h.gate.Logout(c.Request.Context(), id); err != nil {
			log.WithError(err).Error("failed to delete admin session")
		}
	}
	session.ClearCookie(c.Writer, c.Request)
	c.Redirect(http.StatusSeeOther, "/admin")
}

func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, ErrEmptyKey):
		return http.StatusBadRequest, notice.AdminEmptyKey
	case errors.Is(err, rsvpclient.ErrUnauthorized):
		log.WithError(err).Info("admin login denied")
		return http.StatusUnauthorized, notice.AdminDenied
	case errors.Is(err, rsvpclient.ErrUnreachable):
		log.WithError(err).Warn("rsvp function unreachable")
		return http.StatusBadGateway, notice.AdminUnreachable
	default:
		log.WithError(err).Error("admin login failed")
		return http.StatusInternalServerError, notice.AdminUnreachable
	}
}

type loginPage struct {
	Notice *notice.Notice
}

type dashboardPage struct {
	Summary   rsvp.Summary
	Responses []responseCard
	Notice    *notice.Notice
}

type responseCard struct {
	Name       string
	CreatedAt  string
	Attending  bool
	Declining  bool
	Attendance string
	Email      string
	Phone      string
	Guests     int
	Dietary    string
	Message    string
}

func (h *Handler) renderLogin(c *gin.Context, status int, n *notice.Notice) {
	c.Render(status, render.HTML{Template: templates, Name: "login.html", Data: loginPage{Notice: n}})
}

func (h *Handler) renderDashboard(c *gin.Context, responses []rsvp.Response, n *notice.Notice) {
	page := dashboardPage{
		Summary:   rsvp.Summarize(responses),
		Responses: make([]responseCard, 0, len(responses)),
		Notice:    n,
	}
	for _, r := range responses {
		page.Responses = append(page.Responses, newResponseCard(r))
	}
	c.Render(http.StatusOK, render.HTML{Template: templates, Name: "dashboard.html", Data: page})
}

func newResponseCard(r rsvp.Response) responseCard {
	card := responseCard{
		Name:       r.Name,
		CreatedAt:  r.CreatedAt.Display(createdAtLayout),
		Attending:  r.Attending(),
		Declining:  r.Attendance == string(rsvp.AttendanceNo),
		Attendance: r.Attendance,
		Email:      r.Email,
		Phone:      r.Phone,
		Message:    r.Message,
	}
	if card.Attending {
		card.Guests = r.Guests()
		card.Dietary = rsvp.DietaryText(r.DietaryRestrictions, r.OtherDietary)
	}
	return card
}

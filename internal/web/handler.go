// Package web serves the public invitation page and the RSVP form.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	log "github.com/sirupsen/logrus"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/countdown"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/notice"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvpclient"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

// Submitter delivers a validated submission to the hosted function.
type Submitter interface {
	Submit(ctx context.Context, sub rsvp.Submission) error
}

// Event carries the configurable details shown on the landing page.
type Event struct {
	Date         time.Time
	RSVPDeadline string
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// DateText formats the wedding day as it is written on the invitation, e.g. "4 июля 2026".
func (e Event) DateText() string {
	return fmt.Sprintf("%d %s %d", e.Date.Day(), monthsGenitive[e.Date.Month()-1], e.Date.Year())
}

type Handler struct {
	submitter Submitter
	event     Event
	now       func() time.Time
}

func NewHandler(s Submitter, event Event) *Handler {
	return &Handler{submitter: s, event: event, now: time.Now}
}

func RegisterHandlers(r gin.IRouter, h *Handler) {
	r.GET("/", h.GetIndex)
	r.POST("/rsvp", h.PostRSVP)
	r.GET("/health", h.GetHealth)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetIndex(c *gin.Context) {
	var n *notice.Notice
	if flash, ok := notice.ReadAndClear(c.Writer, c.Request); ok {
		n = &flash
	}
	h.render(c, http.StatusOK, NewForm(), n)
}

// PostRSVP handles both in-place form updates (dietary toggles, revealing the
// attending-only fields) and the final submission.
func (h *Handler) PostRSVP(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	form := ParseForm(c.Request.PostForm)

	action := c.PostForm("action")
	if action == "" {
		action = c.Query("action")
	}

	switch action {
	case "toggle":
		form.Toggle(rsvp.DietaryTag(c.Request.FormValue("tag")))
		h.render(c, http.StatusOK, form, nil)
		return
	case "update":
		h.render(c, http.StatusOK, form, nil)
		return
	}

	sub := form.Submission()
	if err := sub.Validate(); err != nil {
		var verr *rsvp.ValidationError
		if errors.As(err, &verr) {
			log.WithField("fields", verr.Fields).Debug("rsvp rejected by validation")
		}
		n := notice.Error(notice.RSVPInvalid)
		h.render(c, http.StatusUnprocessableEntity, form, &n)
		return
	}

	logger := log.WithField("attendance", sub.Attendance)
	if err := h.submitter.Submit(c.Request.Context(), sub); err != nil {
		switch {
		case errors.Is(err, rsvpclient.ErrUnreachable):
			logger.WithError(err).Warn("rsvp function unreachable")
		default:
			logger.WithError(err).Warn("rsvp submission rejected")
		}
		n := notice.Error(notice.RSVPFailed)
		h.render(c, http.StatusBadGateway, form, &n)
		return
	}

	logger.Info("rsvp submitted")
	notice.Write(c.Writer, c.Request, notice.Success(notice.RSVPSent))
	c.Redirect(http.StatusSeeOther, "/#rsvp")
}

func (h *Handler) render(c *gin.Context, status int, form Form, n *notice.Notice) {
	c.Render(status, render.HTML{
		Template: templates,
		Name:     "index.html",
		Data:     h.page(form, n),
	})
}

type page struct {
	Event     Event
	Countdown []countdownUnit
	Form      Form
	Guests    []guestOption
	Dietary   []dietaryOption
	Notice    *notice.Notice
}

type countdownUnit struct {
	Value int
	Label string
}

type guestOption struct {
	Value   rsvp.GuestsCount
	Label   string
	Checked bool
}

type dietaryOption struct {
	Tag      rsvp.DietaryTag
	Label    string
	Selected bool
}

var guestLabels = map[rsvp.GuestsCount]string{
	rsvp.GuestsOne: "1 человек (только я)",
	rsvp.GuestsTwo: "2 человека (я +1)",
}

var dietaryFormLabels = map[rsvp.DietaryTag]string{
	rsvp.DietaryAllergies: "Аллергии (укажите ниже)",
}

func (h *Handler) page(form Form, n *notice.Notice) page {
	left := countdown.Until(h.now(), h.event.Date)

	p := page{
		Event: h.event,
		Countdown: []countdownUnit{
			{left.Days, notice.UnitLabel("countdown.days", left.Days)},
			{left.Hours, notice.UnitLabel("countdown.hours", left.Hours)},
			{left.Minutes, notice.UnitLabel("countdown.minutes", left.Minutes)},
			{left.Seconds, notice.UnitLabel("countdown.seconds", left.Seconds)},
		},
		Form:   form,
		Notice: n,
	}
	for _, g := range []rsvp.GuestsCount{rsvp.GuestsOne, rsvp.GuestsTwo} {
		p.Guests = append(p.Guests, guestOption{Value: g, Label: guestLabels[g], Checked: form.GuestsCount == g})
	}
	for _, tag := range rsvp.FormTags {
		label, ok := dietaryFormLabels[tag]
		if !ok {
			label = rsvp.DietaryLabel(string(tag))
		}
		p.Dietary = append(p.Dietary, dietaryOption{Tag: tag, Label: label, Selected: form.Dietary.Has(tag)})
	}
	return p
}

package api

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/store"
)

// Handler implements ServerInterface on top of a response store.
type Handler struct {
	store    store.ResponseStore
	adminKey string
}

func NewHandler(s store.ResponseStore, adminKey string) *Handler {
	return &Handler{store: s, adminKey: adminKey}
}

var _ ServerInterface = (*Handler)(nil)

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) OptionsRoot(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")
	c.Status(http.StatusOK)
}

// guestsCount accepts both "2" and 2; the form sends strings.
type guestsCount int

func (g *guestsCount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*g = guestsCount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("guestsCount: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("guestsCount %q: not a number", s)
	}
	*g = guestsCount(n)
	return nil
}

type createRequest struct {
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone"`
	Attendance          string      `json:"attendance"`
	GuestsCount         guestsCount `json:"guestsCount"`
	DietaryRestrictions []string    `json:"dietaryRestrictions"`
	OtherDietary        string      `json:"otherDietary"`
	Message             string      `json:"message"`
}

func (h *Handler) CreateResponse(c *gin.Context) {
	body := createRequest{GuestsCount: 1}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	r := rsvp.Response{
		Name:                strings.TrimSpace(body.Name),
		Email:               strings.TrimSpace(body.Email),
		Phone:               strings.TrimSpace(body.Phone),
		Attendance:          strings.TrimSpace(body.Attendance),
		GuestsCount:         int(body.GuestsCount),
		DietaryRestrictions: body.DietaryRestrictions,
		OtherDietary:        strings.TrimSpace(body.OtherDietary),
		Message:             strings.TrimSpace(body.Message),
	}

	if r.Name == "" || r.Phone == "" || r.Attendance == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Name, phone and attendance are required"})
		return
	}
	if !rsvp.Attendance(r.Attendance).Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid attendance value"})
		return
	}
	if r.GuestsCount < 1 {
		r.GuestsCount = 1
	}

	saved, err := h.store.CreateResponse(c.Request.Context(), r)
	if err != nil {
		log.WithError(err).Error("failed to store response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	log.WithFields(log.Fields{
		"response_id": saved.ID,
		"attendance":  saved.Attendance,
	}).Info("response saved")
	c.JSON(http.StatusOK, CreateResult{Success: true, ID: saved.ID, Message: "Response saved successfully"})
}

func (h *Handler) ListResponses(c *gin.Context, params ListResponsesParams) {
	if !h.authorized(params.XAdminKey) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	responses, err := h.store.ListResponses(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to list responses")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, ResponseList{Responses: responses})
}

// authorized compares in constant time. An empty key never matches.
func (h *Handler) authorized(key *string) bool {
	if key == nil || *key == "" || h.adminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*key), []byte(h.adminKey)) == 1
}

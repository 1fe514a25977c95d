package api

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

//go:embed openapi.yaml
var openapiDoc []byte

// GetSwagger returns the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(openapiDoc)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}
	return swagger, nil
}

const AdminKeyHeader = "X-Admin-Key"

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateResult struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ResponseList struct {
	Responses []rsvp.Response `json:"responses"`
}

// ListResponsesParams defines parameters for ListResponses.
type ListResponsesParams struct {
	XAdminKey *string
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// CORS preflight
	// (OPTIONS /)
	OptionsRoot(c *gin.Context)
	// List stored responses, newest first
	// (GET /)
	ListResponses(c *gin.Context, params ListResponsesParams)
	// Store an RSVP response
	// (POST /)
	CreateResponse(c *gin.Context)
	// (GET /health)
	GetHealth(c *gin.Context)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (siw *ServerInterfaceWrapper) OptionsRoot(c *gin.Context) {
	siw.Handler.OptionsRoot(c)
}

func (siw *ServerInterfaceWrapper) ListResponses(c *gin.Context) {
	var params ListResponsesParams
	if values, found := c.Request.Header[http.CanonicalHeaderKey(AdminKeyHeader)]; found && len(values) > 0 {
		key := values[0]
		params.XAdminKey = &key
	}
	siw.Handler.ListResponses(c, params)
}

func (siw *ServerInterfaceWrapper) CreateResponse(c *gin.Context) {
	siw.Handler.CreateResponse(c)
}

func (siw *ServerInterfaceWrapper) GetHealth(c *gin.Context) {
	siw.Handler.GetHealth(c)
}

func (siw *ServerInterfaceWrapper) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}

// RegisterHandlers creates http.Handler with routing matching the OpenAPI document.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.OPTIONS("/", wrapper.OptionsRoot)
	router.GET("/", wrapper.ListResponses)
	router.POST("/", wrapper.CreateResponse)
	router.GET("/health", wrapper.GetHealth)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		router.Handle(method, "/", wrapper.MethodNotAllowed)
	}
}

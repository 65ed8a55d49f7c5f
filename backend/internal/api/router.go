// Package api exposes the tool suite over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiotoolsuite/backend/internal/app"
	"aiotoolsuite/backend/internal/catalog"
	"aiotoolsuite/backend/internal/export"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

// ToolResult is the envelope of every run response
type ToolResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error codes carried in ToolResult.Error
const (
	codeNotFound    = "not_found"
	codeInvalid     = "invalid_input"
	codeTimeout     = "timeout"
	codeUnavailable = "tool_unavailable"
	codeFailed      = "tool_failed"
	codeTooLarge    = "request_too_large"
)

type handler struct {
	app     *app.App
	log     *zap.Logger
	maxBody int64
}

// NewRouter builds the gin engine serving a
func NewRouter(a *app.App, log *zap.Logger) *gin.Engine {
	h := &handler{
		app: a,
		log: log,
		// base64 inflates audio by a third; leave room for the other fields
		maxBody: int64(a.Config.MaxAudioBytes)*4/3 + 64<<10,
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/tools", h.listTools)
		api.GET("/tools/index.json", h.toolIndex)
		api.GET("/tools/:slug", h.getTool)
		api.POST("/tools/:slug/run", h.runTool)
		api.GET("/categories", h.categories)
	}

	return router
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tools":  h.app.Registry.Len(),
		"loaded": h.app.Dispatcher.Cache().Len(),
	})
}

func (h *handler) listTools(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	category := catalog.Category(c.Query("category"))
	if category != "" && !catalog.KnownCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + string(category)})
		return
	}

	views := make([]catalog.PublicToolView, 0, h.app.Registry.Len())
	for _, v := range h.app.Registry.ListPublicTools() {
		if v.IsHidden && !all {
			continue
		}
		if category != "" && v.Category != category {
			continue
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, views)
}

func (h *handler) toolIndex(c *gin.Context) {
	c.JSON(http.StatusOK, export.Entries(h.app.Registry.ListPublicTools()))
}

func (h *handler) getTool(c *gin.Context) {
	desc, ok := h.app.Registry.Lookup(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}
	c.JSON(http.StatusOK, desc.Public())
}

func (h *handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Registry.BuildCategoryIndex())
}

func (h *handler) runTool(c *gin.Context) {
	slug := c.Param("slug")

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ToolResult{Error: codeTooLarge, Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ToolResult{Error: codeInvalid, Message: "could not read request body"})
		return
	}

	result, err := h.app.Run(c.Request.Context(), slug, json.RawMessage(body))
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout {
			h.log.Error("Tool unavailable",
				zap.String("slug", slug),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err),
			)
		}
		_ = c.Error(err)
		c.JSON(status, ToolResult{Error: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToolResult{Success: true, Data: result})
}

// classify maps a run error to its HTTP status and result code
func classify(err error) (int, string) {
	var (
		notFound     *apperrors.ErrToolNotFound
		logicMissing *apperrors.ErrToolLogicMissing
		loadFailed   *apperrors.ErrToolLoadFailed
	)
	switch {
	case apperrors.As(err, &notFound):
		return http.StatusNotFound, codeNotFound
	case apperrors.As(err, &logicMissing), apperrors.As(err, &loadFailed):
		return http.StatusInternalServerError, codeUnavailable
	case apperrors.IsErrorType(err, apperrors.ErrorTypeInput):
		return http.StatusBadRequest, codeInvalid
	case apperrors.IsErrorType(err, apperrors.ErrorTypeContext), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	default:
		return http.StatusUnprocessableEntity, codeFailed
	}
}

package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codecraftgo/internal/auth"
	"codecraftgo/internal/logger"
	"codecraftgo/internal/models"
)

// TranscriptStore is the per-user chat log collection. Every operation is
// scoped by the user id taken from the verified identity.
type TranscriptStore interface {
	Save(ctx context.Context, userID, chatID string, record models.ChatLog) (string, error)
	List(ctx context.Context, userID string) ([]models.ChatLog, error)
	Delete(ctx context.Context, userID, chatID string) (string, error)
	UpdateTitle(ctx context.Context, userID, chatID, newTitle string) (string, error)
}

// CompletionStreamer relays generation chunks through emit as they arrive.
type CompletionStreamer interface {
	StreamGenerate(ctx context.Context, prompt string, learningMode bool, history []models.ChatMessage, emit func(chunk string) error) error
}

// Handler wires HTTP routes to the identity verifier, the transcript store
// and the completion proxy.
type Handler struct {
	verifier auth.TokenVerifier
	store    TranscriptStore
	ai       CompletionStreamer
	log      *logger.Logger
}

// NewHandler constructs a Handler instance.
func NewHandler(verifier auth.TokenVerifier, store TranscriptStore, ai CompletionStreamer, log *logger.Logger) *Handler {
	return &Handler{verifier: verifier, store: store, ai: ai, log: log}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)

	authMW := auth.Middleware(h.verifier)
	protected := router.Group("", authMW)
	protected.POST("/generate-code", h.generateCode)
	protected.POST("/save-log", h.saveLog)
	protected.GET("/get-logs", h.getLogs)
	protected.DELETE("/delete-log/:user_id/:chat_id", h.deleteLog)
	protected.PUT("/update-log-title/:user_id/:chat_id", h.updateLogTitle)
}

// RequestLogger logs one line per request with method, path, status and
// latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to CodeCraft AI Backend"})
}

// requireOwner compares the verified identity against the user id named in
// the request. Flat string equality, checked before any store or model call.
func (h *Handler) requireOwner(c *gin.Context, claimedUserID string) bool {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return false
	}
	if claimedUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "user mismatch"})
		return false
	}
	return true
}

func (h *Handler) generateCode(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !h.requireOwner(c, req.UserID) {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// Raw text deltas, no SSE event framing. The stream ends when the
	// producer sequence ends; failures arrive as content (see ai.Service).
	emit := func(chunk string) error {
		if _, err := io.WriteString(c.Writer, chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}
	if err := h.ai.StreamGenerate(c.Request.Context(), req.Prompt, req.LearningMode, req.ConversationHistory, emit); err != nil {
		h.log.Warn("generation stream aborted", "user_id", req.UserID, "error", err)
	}
}

func (h *Handler) saveLog(c *gin.Context) {
	var req models.ChatLog
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !h.requireOwner(c, req.UserID) {
		return
	}
	message, err := h.store.Save(c.Request.Context(), req.UserID, req.ChatID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) getLogs(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if !h.requireOwner(c, userID) {
		return
	}
	logs, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "status": "success"})
}

func (h *Handler) deleteLog(c *gin.Context) {
	userID := c.Param("user_id")
	if !h.requireOwner(c, userID) {
		return
	}
	message, err := h.store.Delete(c.Request.Context(), userID, c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) updateLogTitle(c *gin.Context) {
	userID := c.Param("user_id")
	if !h.requireOwner(c, userID) {
		return
	}
	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	message, err := h.store.UpdateTitle(c.Request.Context(), userID, c.Param("chat_id"), req.NewTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

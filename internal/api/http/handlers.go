package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/utils"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/version"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	shell   *desktop.Shell
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(shell *desktop.Shell, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		shell:   shell,
		metrics: metrics,
		logger:  logger.Named("api"),
	}
}

// Register mounts every REST route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Windows
	r.GET("/windows", h.ListWindows)
	r.GET("/windows/minimized", h.ListMinimized)
	r.GET("/windows/:id", h.GetWindow)
	r.POST("/windows", h.OpenWindow)
	r.POST("/windows/:id/minimize", h.MinimizeWindow)
	r.POST("/windows/:id/maximize", h.MaximizeWindow)
	r.DELETE("/windows/:id", h.CloseWindow)
	r.DELETE("/windows", h.CloseAll)

	// Launcher and taskbar
	r.GET("/apps", h.ListApps)
	r.POST("/apps/:id/launch", h.LaunchApp)
	r.GET("/taskbar", h.Taskbar)

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
		r.GET("/metrics/json", h.MetricsJSON)
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": version.Service,
		"version": version.Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"windows": h.shell.Windows().Stats(),
		"catalog": gin.H{"apps": h.shell.Catalog().Len()},
	})
}

// ListWindows lists every window in open order
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.shell.Windows().List(),
		"stats":   h.shell.Windows().Stats(),
	})
}

// ListMinimized lists minimized windows in open order
func (h *Handlers) ListMinimized(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.shell.Windows().ListMinimized(),
	})
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	w, found := h.shell.Windows().Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found", "window_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": w})
}

// OpenWindowRequest opens a window outside the catalog
type OpenWindowRequest struct {
	ID    string                 `json:"id" binding:"required,max=128"`
	Title string                 `json:"title" binding:"required,max=256"`
	Icon  string                 `json:"icon" binding:"max=64"`
	Kind  string                 `json:"kind" binding:"max=128"`
	Props map[string]interface{} `json:"props"`
}

// OpenWindow opens (or restores) a window with caller-supplied content
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req OpenWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateID(req.ID, "id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateProps(req.Props); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := utils.SanitizeTitle(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is empty after sanitization"})
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = req.ID
	}
	content := catalog.NewPanel(req.ID, kind, req.Props)

	w, err := h.shell.Windows().OpenWindow(req.ID, title, types.Icon(req.Icon), content)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, window.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": w})
}

// MinimizeWindow hides a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.transition(c, h.shell.Minimize)
}

// MaximizeWindow restores a minimized window
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.transition(c, h.shell.Restore)
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.transition(c, h.shell.Close)
}

// transition applies op to the :id window. Unknown ids are not an error.
func (h *Handlers) transition(c *gin.Context, op func(string) bool) {
	id, ok := windowID(c)
	if !ok {
		return
	}

	changed := op(id)

	c.JSON(http.StatusOK, gin.H{
		"changed":   changed,
		"window_id": id,
	})
}

// CloseAll closes every window
func (h *Handlers) CloseAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"closed": h.shell.CloseAll(),
	})
}

// ListApps lists launcher entries, filtered by ?q= and ?category=
func (h *Handlers) ListApps(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	if err := utils.ValidateString(query, "q", 0, 128, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apps := h.shell.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"apps":       apps.Filter(query, category),
		"categories": apps.Categories(),
	})
}

// LaunchApp opens the window for a catalog app
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID := c.Param("id")

	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.shell.Launch(appID)
	if err != nil {
		switch {
		case errors.Is(err, desktop.ErrUnknownApp):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "app_id": appID})
		case errors.Is(err, window.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Launch failed", zap.String("app_id", appID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": w})
}

// Taskbar lists restore buttons for minimized windows
func (h *Handlers) Taskbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.shell.Taskbar(),
	})
}

// MetricsJSON returns a compact metrics snapshot for dashboards
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// windowID reads and validates the :id path parameter, writing a 400 on failure
func windowID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := utils.ValidateID(id, "window_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return id, true
}

package handlers

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/app/views"
)

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger}
}

func (h *BaseHandler) NewLayoutData(title, activeNav string, content templ.Component) models.LayoutTempl {
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.MainNav,
		ActiveNav: activeNav,
	}
}

// Render writes component with status and records how long rendering took.
func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.Error(err), zap.String("path", c.FullPath()))
		_ = c.Error(err)
	}
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", c.FullPath())))
}

// RenderPage sends content alone to htmx and wrapped in the layout otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	if middleware.IsHTMX(c) {
		h.Render(c, http.StatusOK, content)
		return
	}
	h.Render(c, http.StatusOK, views.Layout(h.NewLayoutData(title, activeNav, content)))
}

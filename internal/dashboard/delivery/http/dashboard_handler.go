package http

import (
	"errors"
	"net/http"

	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/dashboard/service"
	"tnp-quickview/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the news and stock panels.
type DashboardHandler struct {
	dashboardService service.DashboardService
	newsService      service.NewsService
	stockService     service.StockService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, newsService service.NewsService, stockService service.StockService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		newsService:      newsService,
		stockService:     stockService,
		logger:           logger,
	}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/news", h.GetNews)
	g.GET("/news/preview", h.GetArticlePreview)
	g.GET("/stocks", h.GetStocks)
}

// GetDashboard godoc
// @Summary Get the dashboard
// @Description Headlines and ranked attention stocks from the latest snapshot
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.GetDashboard(c.Request().Context()))
}

// GetNews godoc
// @Summary Get economic news
// @Description At most five headlines; a single placeholder item when the feed is unavailable
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.NewsResponse
// @Router /news [get]
func (h *DashboardHandler) GetNews(c echo.Context) error {
	return c.JSON(http.StatusOK, h.newsService.FetchEconomicNews(c.Request().Context()))
}

// GetStocks godoc
// @Summary Get attention stocks
// @Description Watch list ranked by absolute change percent; a single placeholder record when no quote is available
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.StocksResponse
// @Router /stocks [get]
func (h *DashboardHandler) GetStocks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.stockService.FetchAttentionStocks(c.Request().Context()))
}

// GetArticlePreview godoc
// @Summary Preview a news article
// @Description Readable text extracted from a news article page
// @Tags dashboard
// @Produce  json
// @Param   url  query    string true    "Article URL"
// @Success 200 {object} dto.ArticlePreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news/preview [get]
func (h *DashboardHandler) GetArticlePreview(c echo.Context) error {
	preview, err := h.dashboardService.GetArticlePreview(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidArticleURL) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid article URL"})
		}
		h.logger.Warn("Failed to preview article", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Failed to fetch article"})
	}
	return c.JSON(http.StatusOK, preview)
}

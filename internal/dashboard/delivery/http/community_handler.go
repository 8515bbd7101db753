package http

import (
	"errors"
	"net/http"

	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/service"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CommunityHandler handles likes, comments and the viewer name.
type CommunityHandler struct {
	communityService service.CommunityService
	storageService   service.StorageService
	logger           *logger.Logger
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(communityService service.CommunityService, storageService service.StorageService, logger *logger.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		storageService:   storageService,
		logger:           logger,
	}
}

// RegisterRoutes registers the community routes to the Echo group.
func (h *CommunityHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/likes", h.GetLikes)
	g.GET("/likes/stream", h.StreamLikes)
	g.POST("/stocks/:code/like", h.ToggleLike)
	g.GET("/stocks/:code/comments", h.GetComments)
	g.POST("/stocks/:code/comments", h.AddComment)
	g.GET("/comments/stream", h.StreamComments)
	g.GET("/users/me/name", h.GetUserName)
	g.PUT("/users/me/name", h.UpdateUserName)
	g.GET("/storage/status", h.GetStorageStatus)
}

// GetLikes godoc
// @Summary Get likes
// @Description Like data of every stock, keyed by stock code
// @Tags community
// @Produce  json
// @Success 200 {object} entity.LikesRecord
// @Router /likes [get]
func (h *CommunityHandler) GetLikes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.communityService.GetLikes(c.Request().Context()))
}

// ToggleLike godoc
// @Summary Toggle a like
// @Description Flips the viewer's like on a stock
// @Tags community
// @Produce  json
// @Param   code  path    string true    "Stock code"
// @Success 200 {object} entity.LikeData
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /stocks/{code}/like [post]
func (h *CommunityHandler) ToggleLike(c echo.Context) error {
	like, err := h.communityService.ToggleLike(c.Request().Context(), c.Param("code"))
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusOK, like)
}

// GetComments godoc
// @Summary Get comments
// @Description Comments of one stock in insertion order
// @Tags community
// @Produce  json
// @Param   code  path    string true    "Stock code"
// @Success 200 {object} dto.CommentsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/{code}/comments [get]
func (h *CommunityHandler) GetComments(c echo.Context) error {
	code := c.Param("code")
	comments, err := h.communityService.GetComments(c.Request().Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CommentsResponse{StockCode: code, Items: comments})
}

// AddComment godoc
// @Summary Add a comment
// @Description Appends a comment to a stock; the author defaults to the stored user name
// @Tags community
// @Accept  json
// @Produce  json
// @Param   code     path    string                    true    "Stock code"
// @Param   comment  body    dto.CreateCommentRequest  true    "Comment to add"
// @Success 201 {object} entity.Comment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /stocks/{code}/comments [post]
func (h *CommunityHandler) AddComment(c echo.Context) error {
	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	comment, err := h.communityService.AddComment(c.Request().Context(), c.Param("code"), req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetUserName godoc
// @Summary Get the user name
// @Tags community
// @Produce  json
// @Success 200 {object} dto.UserNameResponse
// @Router /users/me/name [get]
func (h *CommunityHandler) GetUserName(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.UserNameResponse{UserName: h.communityService.GetUserName(c.Request().Context())})
}

// UpdateUserName godoc
// @Summary Update the user name
// @Tags community
// @Accept  json
// @Produce  json
// @Param   user  body    dto.UpdateUserNameRequest  true    "New user name"
// @Success 200 {object} dto.UserNameResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /users/me/name [put]
func (h *CommunityHandler) UpdateUserName(c echo.Context) error {
	var req dto.UpdateUserNameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	name, err := h.communityService.SetUserName(c.Request().Context(), req.UserName)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserNameResponse{UserName: name})
}

// GetStorageStatus godoc
// @Summary Get the storage backend
// @Description Reports whether the remote store or only the local store is in use
// @Tags community
// @Produce  json
// @Success 200 {object} dto.StorageStatusResponse
// @Router /storage/status [get]
func (h *CommunityHandler) GetStorageStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.StorageStatusResponse{Backend: h.storageService.State().String()})
}

// StreamLikes godoc
// @Summary Stream likes
// @Description Server-sent events carrying the full likes snapshot on every change
// @Tags community
// @Produce  text/event-stream
// @Success 200 {object} entity.LikesRecord
// @Router /likes/stream [get]
func (h *CommunityHandler) StreamLikes(c echo.Context) error {
	ctx := c.Request().Context()
	updates := make(chan entity.LikesRecord, streamBufferSize)
	unsubscribe := h.storageService.SubscribeLikes(ctx, func(rec entity.LikesRecord) {
		offer(updates, rec)
	})
	defer unsubscribe()

	return streamEvents(c, "likes", h.storageService.GetLikes(ctx), updates)
}

// StreamComments godoc
// @Summary Stream comments
// @Description Server-sent events carrying the full comments snapshot on every change
// @Tags community
// @Produce  text/event-stream
// @Success 200 {object} entity.CommentsRecord
// @Router /comments/stream [get]
func (h *CommunityHandler) StreamComments(c echo.Context) error {
	ctx := c.Request().Context()
	updates := make(chan entity.CommentsRecord, streamBufferSize)
	unsubscribe := h.storageService.SubscribeComments(ctx, func(rec entity.CommentsRecord) {
		offer(updates, rec)
	})
	defer unsubscribe()

	return streamEvents(c, "comments", h.storageService.GetComments(ctx), updates)
}

func (h *CommunityHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidStockCode),
		errors.Is(err, service.ErrEmptyUserName):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		h.logger.Error("Storage unavailable", logger.ErrorField(err))
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Storage unavailable"})
	default:
		h.logger.Error("Community request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

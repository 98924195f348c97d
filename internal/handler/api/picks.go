package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"PickRank/internal/domain/models"
	"PickRank/internal/middleware"
	"PickRank/internal/service/ratelimit"
	"PickRank/internal/usecase"
	xhttp "PickRank/pkg/http"
	applogger "PickRank/pkg/logger"
	"PickRank/pkg/util"
)

// PicksService is what the handler needs from the picks use case.
type PicksService interface {
	GetPicks(ctx context.Context, symbols []string) (*models.PicksResponse, error)
	GetPick(ctx context.Context, symbol string, refresh bool) *models.CompositeResult
}

// PicksHandler serves ranked picks over HTTP.
type PicksHandler struct {
	log     *applogger.Logger
	picks   PicksService
	limiter *ratelimit.Limiter
}

// NewPicksHandler builds the handler; a nil limiter disables rate limiting.
func NewPicksHandler(log *applogger.Logger, picks PicksService, limiter *ratelimit.Limiter) *PicksHandler {
	return &PicksHandler{log: log, picks: picks, limiter: limiter}
}

func (h *PicksHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	if h.limiter != nil {
		g.Use(middleware.RateLimit(h.limiter, h.log))
	}
	g.GET("/picks", h.Picks)
	g.GET("/picks/:symbol", h.Pick)
}

func (h *PicksHandler) Picks(c echo.Context) error {
	req := &models.PicksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.picks.GetPicks(c.Request().Context(), util.ParseSymbols(req.Symbols))
	if err != nil {
		if errors.Is(err, usecase.ErrTooManySymbols) || errors.Is(err, usecase.ErrInvalidSymbol) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
		}
		h.log.Error("picks usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *PicksHandler) Pick(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbol := util.NormalizeSymbol(req.Symbol)
	if !util.ValidSymbol(symbol) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("symbol is not a valid ticker").WithParam("symbol", symbol))
	}
	return xhttp.SuccessResponse(c, h.picks.GetPick(c.Request().Context(), symbol, req.Refresh))
}

func (h *PicksHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

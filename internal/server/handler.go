package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"animeflix/catalog/internal/client"
	"animeflix/catalog/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// pageWindowSize is the number of page links the home page shows.
const pageWindowSize = 5

type handler struct {
	catalog  client.CatalogClient
	pageSize int
}

type searchResponse struct {
	Data       []domain.AnimeSummary `json:"data"`
	Pagination domain.Pagination     `json:"pagination"`
	Pages      []int                 `json:"pages"`
}

type detailResponse struct {
	Data     domain.AnimeDetail `json:"data"`
	Fallback bool               `json:"fallback"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *handler) search(c echo.Context) error {
	page, err := positiveParam(c, "page", 1)
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit, err := positiveParam(c, "limit", h.pageSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.catalog.SearchCatalog(c.Request().Context(), domain.CatalogQuery{
		Text:     c.QueryParam("q"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return clientError(c, err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Data:       result.Items,
		Pagination: result.Pagination,
		Pages:      result.Pagination.PageWindow(pageWindowSize),
	})
}

func (h *handler) detail(c echo.Context) error {
	result, err := h.catalog.FetchDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return clientError(c, err)
	}

	return c.JSON(http.StatusOK, detailResponse{
		Data:     result.Detail,
		Fallback: result.Fallback,
	})
}

func positiveParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Kind: client.KindInvalidArgument.String()})
}

func clientError(c echo.Context, err error) error {
	kind := client.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message()
	}

	if status >= http.StatusInternalServerError {
		log.Errorf("Catalog request %s failed: %v", c.Request().RequestURI, err)
	}
	if kind == client.KindRateLimited {
		c.Response().Header().Set("Retry-After", "1")
	}

	return c.JSON(status, errorResponse{Error: msg, Kind: kind.String()})
}

func statusFor(kind client.Kind) int {
	switch kind {
	case client.KindInvalidArgument:
		return http.StatusBadRequest
	case client.KindRateLimited:
		return http.StatusTooManyRequests
	case client.KindMalformedResponse, client.KindUpstream:
		return http.StatusBadGateway
	case client.KindTimeout:
		return http.StatusGatewayTimeout
	case client.KindCanceled:
		// client went away, nobody reads this
		return 499
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/packages", h.browse)
	router.GET("/packages/top", h.top)
	router.GET("/packages/:id", h.get)
	router.GET("/locations", h.locations)
	router.GET("/categories", h.categories)
}

// browse serves the filtered, sorted catalog. No parameters means the
// full catalog in source order.
func (h *CatalogHandler) browse(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkgs, err := h.service.Browse(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

func (h *CatalogHandler) top(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	pkgs, err := h.service.Top(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

func (h *CatalogHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	pkg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *CatalogHandler) locations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *CatalogHandler) categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func parseFilterSpec(c *gin.Context) (domain.FilterSpec, error) {
	spec := domain.DefaultFilterSpec()
	spec.Themes = splitParam(c.Query("themes"))
	spec.Cities = splitParam(c.Query("cities"))

	var err error
	if spec.MinDurationDays, err = intParam(c, "min_duration"); err != nil {
		return spec, err
	}
	if spec.MaxDurationDays, err = intParam(c, "max_duration"); err != nil {
		return spec, err
	}
	if raw := c.Query("min_price_cents"); raw != "" {
		if spec.MinPriceCents, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return spec, errInvalidParam("min_price_cents")
		}
	}
	if raw := c.Query("max_price_cents"); raw != "" {
		if spec.MaxPriceCents, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return spec, errInvalidParam("max_price_cents")
		}
	}
	if raw := c.Query("sort"); raw != "" {
		key := domain.SortKey(raw)
		if !domain.ValidSortKey(key) {
			return spec, errInvalidParam("sort")
		}
		spec.Sort = key
	}
	return spec, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidParam(name)
	}
	return v, nil
}

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid parameter %s", name)
}

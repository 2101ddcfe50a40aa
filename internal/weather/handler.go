package weather

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/pkg/common"
)

// FavoritesReader is the slice of the favorites list the weather endpoints
// need: they only ever read names already marked as favorites.
type FavoritesReader interface {
	GetByName(name string) (catalog.Location, error)
	All() ([]catalog.Location, error)
}

// Handler handles HTTP requests for weather lookups on favorites
type Handler struct {
	favorites FavoritesReader
	client    ClientInterface
}

// NewHandler creates a new weather handler
func NewHandler(favorites FavoritesReader, client ClientInterface) *Handler {
	return &Handler{favorites: favorites, client: client}
}

// CurrentWeather handles GET /favorites/:name/weather
func (h *Handler) CurrentWeather(c *gin.Context) {
	h.lookup(c, h.client.Current)
}

// WeatherHistory handles GET /favorites/:name/history
func (h *Handler) WeatherHistory(c *gin.Context) {
	h.lookup(c, h.client.History)
}

// WeatherForecast handles GET /favorites/:name/forecast
func (h *Handler) WeatherForecast(c *gin.Context) {
	h.lookup(c, h.client.Forecast)
}

// AllWeather handles GET /favorites/weather. It reports current weather for
// every favorite in list order, aborting on the first failure.
func (h *Handler) AllWeather(c *gin.Context) {
	favorites, err := h.favorites.All()
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	reports := make([]gin.H, 0, len(favorites))
	for _, loc := range favorites {
		coords, err := h.client.Geocode(c.Request.Context(), loc.Name)
		if err != nil {
			common.DomainErrorResponse(c, err)
			return
		}
		report, err := h.client.Current(c.Request.Context(), coords)
		if err != nil {
			common.DomainErrorResponse(c, err)
			return
		}
		reports = append(reports, gin.H{"location": loc, "weather": report})
	}

	common.SuccessResponse(c, reports)
}

// lookup resolves the :name path parameter against the favorites list,
// geocodes it, and returns the fetched payload verbatim.
func (h *Handler) lookup(c *gin.Context, fetch func(ctx context.Context, coords Coordinates) (json.RawMessage, error)) {
	name := c.Param("name")

	loc, err := h.favorites.GetByName(name)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	coords, err := h.client.Geocode(c.Request.Context(), loc.Name)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	report, err := fetch(c.Request.Context(), coords)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", report)
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"location-finder/internal/types"
)

// SearchRequest is the query string of GET /api/location-finder/search
type SearchRequest struct {
	Query string `form:"query" binding:"required,min=3,max=255"`
}

// GeocodeRequest is the body of POST /api/location-finder/geocode
type GeocodeRequest struct {
	Address string `json:"address" form:"address" binding:"required,max=255" example:"Galata Tower, Istanbul"`
}

// ReverseGeocodeRequest is the body of POST /api/location-finder/reverse-geocode.
// Pointers distinguish a missing coordinate from zero.
type ReverseGeocodeRequest struct {
	Lat *float64 `json:"lat" form:"lat" binding:"required,gte=-90,lte=90" example:"41.0256"`
	Lon *float64 `json:"lon" form:"lon" binding:"required,gte=-180,lte=180" example:"28.9742"`
}

// SearchResponse represents the response for the search endpoint
type SearchResponse struct {
	Success bool                   `json:"success" example:"true"`
	Query   string                 `json:"query" example:"istanbul"`
	Results []types.LocationRecord `json:"results"`
	Count   int                    `json:"count" example:"1"`
}

// GeocodeResponse represents a successful forward geocode
type GeocodeResponse struct {
	Success bool                  `json:"success" example:"true"`
	Address string                `json:"address" example:"Galata Tower, Istanbul"`
	Result  *types.LocationRecord `json:"result"`
}

// ReverseGeocodeResponse represents a successful reverse geocode
type ReverseGeocodeResponse struct {
	Success     bool                  `json:"success" example:"true"`
	Coordinates types.Coords          `json:"coordinates"`
	Result      *types.LocationRecord `json:"result"`
	Timezone    string                `json:"timezone,omitempty" example:"Europe/Istanbul"`
}

// ErrorResponse is the envelope for every non-2xx response
type ErrorResponse struct {
	Success     bool                `json:"success" example:"false"`
	Message     string              `json:"message" example:"Validation error"`
	Errors      map[string][]string `json:"errors,omitempty"`
	Address     string              `json:"address,omitempty"`
	Coordinates *types.Coords       `json:"coordinates,omitempty"`
}

// handleSearch godoc
// @Summary Search places
// @Description Free-text place search. Upstream failures yield an empty result list.
// @Tags location-finder
// @Produce json
// @Param query query string true "Search text (3 to 255 characters)"
// @Success 200 {object} SearchResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/location-finder/search [get]
func (app *App) handleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		app.respondValidationError(c, err)
		return
	}

	results := app.geocodingService.Search(c.Request.Context(), req.Query)

	c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Query:   req.Query,
		Results: results,
		Count:   len(results),
	})
}

// handleGeocode godoc
// @Summary Geocode an address
// @Description Returns the best match for a free-text address
// @Tags location-finder
// @Accept json
// @Produce json
// @Param request body GeocodeRequest true "Address to geocode"
// @Success 200 {object} GeocodeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/location-finder/geocode [post]
func (app *App) handleGeocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBind(&req); err != nil {
		app.respondValidationError(c, err)
		return
	}

	result := app.geocodingService.Geocode(c.Request.Context(), req.Address)
	if result == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Message: "Address not found",
			Address: req.Address,
		})
		return
	}

	c.JSON(http.StatusOK, GeocodeResponse{
		Success: true,
		Address: req.Address,
		Result:  result,
	})
}

// handleReverseGeocode godoc
// @Summary Reverse geocode a coordinate
// @Description Returns the place at a latitude/longitude, annotated with its IANA timezone when enabled
// @Tags location-finder
// @Accept json
// @Produce json
// @Param request body ReverseGeocodeRequest true "Coordinates"
// @Success 200 {object} ReverseGeocodeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/location-finder/reverse-geocode [post]
func (app *App) handleReverseGeocode(c *gin.Context) {
	var req ReverseGeocodeRequest
	if err := c.ShouldBind(&req); err != nil {
		app.respondValidationError(c, err)
		return
	}

	coords := types.NewCoords(*req.Lat, *req.Lon)

	result := app.geocodingService.ReverseGeocode(c.Request.Context(), coords.Latitude, coords.Longitude)
	if result == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success:     false,
			Message:     "No address found for coordinates",
			Coordinates: &coords,
		})
		return
	}

	resp := ReverseGeocodeResponse{
		Success:     true,
		Coordinates: coords,
		Result:      result,
	}
	if app.timezoneService != nil {
		zone, err := app.timezoneService.Lookup(coords)
		if err != nil {
			app.logger.Debug("timezone lookup failed", "latitude", coords.Latitude, "longitude", coords.Longitude, "error", err)
		} else {
			resp.Timezone = zone
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (app *App) respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Success: false,
		Message: "Validation error",
		Errors:  validationErrors(err),
	})
}

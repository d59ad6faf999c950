package handlers

import (
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/maps"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	places  maps.PlacesProvider
	country string
}

func NewPlaceHandler(places maps.PlacesProvider, country string) *PlaceHandler {
	return &PlaceHandler{
		places:  places,
		country: country,
	}
}

// SearchPlaces backs the location picker's autocomplete. Results are biased
// to the configured country.
func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.BadRequestResponse(c, "query parameter is required")
		return
	}

	if h.places == nil {
		utils.SuccessResponse(c, "Place search unavailable", &maps.PlaceSearchResponse{})
		return
	}

	country := c.DefaultQuery("country", h.country)

	resp, err := h.places.SearchPlaces(c.Request.Context(), &maps.PlaceSearchRequest{
		Query:   query,
		Country: country,
		Limit:   5,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Places retrieved", resp)
}

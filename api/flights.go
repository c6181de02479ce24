package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/Domenick1991/flightrecords/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

// flightRequest is the POST and PUT body. A flight_id sent by the client
// is not read.
type flightRequest struct {
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
}

func (r flightRequest) toDomain() domain.Flight {
	return domain.Flight{DepartureCity: r.DepartureCity, ArrivalCity: r.ArrivalCity}
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register mounts the handlers on a group rooted at /flights.
func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.PUT("/:flight_id", h.update)
	router.GET("/departing/:departure_city/arriving/:arrival_city", h.listByRoute)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.GetAllFlights(c.Request.Context())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) listByRoute(c *gin.Context) {
	flights, err := h.service.GetAllFlightsFromCityToCity(c.Request.Context(), c.Param("departure_city"), c.Param("arrival_city"))
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	added, ok, err := h.service.AddFlight(c.Request.Context(), req.toDomain())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, added)
}

func (h *FlightHandler) update(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	id, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	updated, ok, err := h.service.UpdateFlight(c.Request.Context(), id, req.toDomain())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, updated)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/service/booking"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
)

type BookingHandler struct {
	service booking.BookingUseCase
	policy  slots.Policy
}

type availabilityResponse struct {
	Date   string   `json:"date"`
	Booked []string `json:"booked"`
}

type bookingResponse struct {
	Token     string   `json:"token"`
	Status    string   `json:"status"`
	Name      string   `json:"name"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Services  []string `json:"services"`
	CreatedAt string   `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase, policy slots.Policy) *BookingHandler {
	return &BookingHandler{service: service, policy: policy}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/availability", h.availability)
	router.POST("/booking", h.submit)
	router.DELETE("/booking/:token", h.cancel)
}

func (h *BookingHandler) availability(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := h.policy.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want " + domain.DateLayout})
		return
	}

	booked, err := h.service.BookedSlots(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if booked == nil {
		booked = []string{}
	}

	c.JSON(http.StatusOK, availabilityResponse{
		Date:   date.Format(domain.DateLayout),
		Booked: booked,
	})
}

func (h *BookingHandler) submit(c *gin.Context) {
	var req booking.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	token := c.Param("token")
	cancelled, err := h.service.Cancel(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Token:     b.Token,
		Status:    string(b.Status),
		Name:      b.Name,
		Date:      b.Date.Format(domain.DateLayout),
		Time:      b.TimeLabel,
		Services:  b.Services,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
)

type ReservationHandler struct {
	service *services.ReservationService
}

func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var request struct {
		ID              *uint  `json:"id"`
		Carnet          string `json:"carnet"`
		BookCode        string `json:"bookCode"`
		ReservationDate string `json:"reservationDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	reservationDate, err := time.Parse(dateLayout, request.ReservationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	reservation, err := h.service.Create(services.ReservationInput{
		ID:              request.ID,
		Carnet:          request.Carnet,
		BookCode:        request.BookCode,
		ReservationDate: reservationDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reservation, err := h.service.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationDetailResponse(reservation))
}

func (h *ReservationHandler) GetAll(c *gin.Context) {
	reservations, err := h.service.ListAll()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(reservations))
	for i := range reservations {
		items[i] = reservationDetailResponse(&reservations[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReservationHandler) GetByStatus(c *gin.Context) {
	reservations, err := h.service.ListByStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(reservations))
	for i := range reservations {
		items[i] = reservationResponse(&reservations[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var request struct {
		Carnet          string `json:"carnet" binding:"required"`
		BookCode        string `json:"bookCode" binding:"required"`
		ReservationDate string `json:"reservationDate" binding:"required"`
		Status          string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	reservationDate, err := time.Parse(dateLayout, request.ReservationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	reservation, err := h.service.Update(id, services.ReservationUpdate{
		Carnet:          request.Carnet,
		BookCode:        request.BookCode,
		ReservationDate: reservationDate,
		Status:          request.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status query parameter is required"})
		return
	}
	reservation, err := h.service.UpdateStatus(id, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func reservationResponse(reservation *models.Reservation) gin.H {
	return gin.H{
		"id":              reservation.ID,
		"reservationDate": reservation.ReservationDate.Format(dateLayout),
		"status":          reservation.Status,
		"carnet":          reservation.StudentCarnet,
		"bookCode":        reservation.BookCode,
	}
}

func reservationDetailResponse(reservation *models.Reservation) gin.H {
	return gin.H{
		"id":              reservation.ID,
		"reservationDate": reservation.ReservationDate.Format(dateLayout),
		"status":          reservation.Status,
		"carnet":          reservation.Student.Carnet,
		"student":         reservation.Student.Name,
		"bookCode":        reservation.Book.Code,
		"bookTitle":       reservation.Book.Title,
	}
}

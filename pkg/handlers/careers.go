package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
)

type CareerHandler struct {
	service *services.CareerService
}

func NewCareerHandler(service *services.CareerService) *CareerHandler {
	return &CareerHandler{service: service}
}

func (h *CareerHandler) Create(c *gin.Context) {
	var request struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	career, err := h.service.Create(request.Code, request.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, careerResponse(career))
}

func (h *CareerHandler) GetAll(c *gin.Context) {
	careers, err := h.service.ListActive()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(careers))
	for i := range careers {
		items[i] = careerResponse(&careers[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *CareerHandler) Update(c *gin.Context) {
	code := c.Param("code")
	var request struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	career, err := h.service.Update(code, request.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, careerResponse(career))
}

func (h *CareerHandler) SoftDelete(c *gin.Context) {
	career, err := h.service.SoftDelete(c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, careerResponse(career))
}

func careerResponse(career *models.Career) gin.H {
	return gin.H{
		"code":   career.Code,
		"name":   career.Name,
		"status": career.Status,
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
)

type StudentHandler struct {
	service *services.StudentService
}

func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) Create(c *gin.Context) {
	var request struct {
		Carnet    string `json:"carnet" binding:"required"`
		Name      string `json:"name" binding:"required"`
		BirthDate string `json:"birthDate"`
		Career    string `json:"career" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	birthDate, err := parseDate(request.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	student, err := h.service.Create(services.StudentInput{
		Carnet:     request.Carnet,
		Name:       request.Name,
		BirthDate:  birthDate,
		CareerCode: request.Career,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentResponse(student))
}

func (h *StudentHandler) GetAll(c *gin.Context) {
	students, err := h.service.ListActive()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(students))
	for i, student := range students {
		items[i] = gin.H{
			"carnet":    student.Carnet,
			"name":      student.Name,
			"birthDate": formatDate(student.BirthDate),
			"career":    student.Career.Name,
			"status":    student.Status,
		}
	}
	c.JSON(http.StatusOK, items)
}

// GetEntities lists active students with their loan history attached.
func (h *StudentHandler) GetEntities(c *gin.Context) {
	students, err := h.service.ListActiveWithLoans()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(students))
	for i, student := range students {
		loans := make([]gin.H, len(student.Loans))
		for j := range student.Loans {
			loans[j] = loanResponse(&student.Loans[j])
		}
		items[i] = gin.H{
			"carnet": student.Carnet,
			"name":   student.Name,
			"career": student.Career.Name,
			"status": student.Status,
			"loans":  loans,
		}
	}
	c.JSON(http.StatusOK, items)
}

func (h *StudentHandler) GetByCarnet(c *gin.Context) {
	student, err := h.service.GetByCarnet(c.Param("carnet"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentResponse(student))
}

func (h *StudentHandler) Update(c *gin.Context) {
	carnet := c.Param("carnet")
	var request struct {
		Name      string `json:"name" binding:"required"`
		BirthDate string `json:"birthDate"`
		Career    string `json:"career" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	birthDate, err := parseDate(request.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	student, err := h.service.Update(carnet, services.StudentInput{
		Name:       request.Name,
		BirthDate:  birthDate,
		CareerCode: request.Career,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentResponse(student))
}

func (h *StudentHandler) Delete(c *gin.Context) {
	carnet, err := h.service.Delete(c.Param("carnet"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carnet": carnet})
}

func (h *StudentHandler) SoftDelete(c *gin.Context) {
	student, err := h.service.SoftDelete(c.Param("carnet"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentResponse(student))
}

func (h *StudentHandler) Test(c *gin.Context) {
	c.String(http.StatusOK, "The application is running!")
}

func studentResponse(student *models.Student) gin.H {
	return gin.H{
		"carnet":     student.Carnet,
		"name":       student.Name,
		"birthDate":  formatDate(student.BirthDate),
		"careerCode": student.CareerCode,
		"status":     student.Status,
	}
}

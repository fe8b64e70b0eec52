package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
)

type LoanHandler struct {
	service *services.LoanService
}

func NewLoanHandler(service *services.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) Create(c *gin.Context) {
	var request struct {
		ID         *uint   `json:"id"`
		Carnet     string  `json:"carnet"`
		BookCode   string  `json:"bookCode"`
		LoanDate   string  `json:"loanDate" binding:"required"`
		ReturnDate string  `json:"returnDate"`
		TotalDue   float64 `json:"totalDue"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	loanDate, err := time.Parse(dateLayout, request.LoanDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	returnDate, err := parseDate(request.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	loan, err := h.service.Create(services.LoanInput{
		ID:         request.ID,
		Carnet:     request.Carnet,
		BookCode:   request.BookCode,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
		TotalDue:   request.TotalDue,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanResponse(loan))
}

func (h *LoanHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	loan, err := h.service.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanDetailResponse(loan))
}

// GetAll returns the denormalized listing with each loan's student carnet and
// book title.
func (h *LoanHandler) GetAll(c *gin.Context) {
	loans, err := h.service.ListAll()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(loans))
	for i := range loans {
		items[i] = loanDetailResponse(&loans[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *LoanHandler) GetByStatus(c *gin.Context) {
	loans, err := h.service.ListByStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(loans))
	for i := range loans {
		items[i] = loanResponse(&loans[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *LoanHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var request struct {
		Carnet     string `json:"carnet" binding:"required"`
		LoanDate   string `json:"loanDate" binding:"required"`
		ReturnDate string `json:"returnDate"`
		Status     string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	loanDate, err := time.Parse(dateLayout, request.LoanDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	returnDate, err := parseDate(request.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	loan, err := h.service.Update(id, services.LoanUpdate{
		Carnet:     request.Carnet,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
		Status:     request.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanResponse(loan))
}

func (h *LoanHandler) Close(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	loan, err := h.service.Close(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanResponse(loan))
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func loanResponse(loan *models.Loan) gin.H {
	return gin.H{
		"id":         loan.ID,
		"loanDate":   loan.LoanDate.Format(dateLayout),
		"returnDate": formatDate(loan.ReturnDate),
		"status":     loan.Status,
		"totalDue":   loan.TotalDue,
		"carnet":     loan.StudentCarnet,
		"bookCode":   loan.BookCode,
	}
}

func loanDetailResponse(loan *models.Loan) gin.H {
	return gin.H{
		"id":         loan.ID,
		"loanDate":   loan.LoanDate.Format(dateLayout),
		"returnDate": formatDate(loan.ReturnDate),
		"status":     loan.Status,
		"totalDue":   loan.TotalDue,
		"carnet":     loan.Student.Carnet,
		"student":    loan.Student.Name,
		"bookCode":   loan.Book.Code,
		"bookTitle":  loan.Book.Title,
	}
}

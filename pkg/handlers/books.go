package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
)

type BookHandler struct {
	service *services.BookService
}

func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) Create(c *gin.Context) {
	var request struct {
		Code            string `json:"code" binding:"required"`
		Title           string `json:"title" binding:"required"`
		Author          string `json:"author" binding:"required"`
		PublicationDate string `json:"publicationDate"`
		Publisher       string `json:"publisher"`
		AvailableCopies int    `json:"availableCopies"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	publicationDate, err := parseDate(request.PublicationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	book, err := h.service.Create(services.BookInput{
		Code:            request.Code,
		Title:           request.Title,
		Author:          request.Author,
		PublicationDate: publicationDate,
		Publisher:       request.Publisher,
		AvailableCopies: request.AvailableCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookResponse(book))
}

func (h *BookHandler) GetByCode(c *gin.Context) {
	book, err := h.service.GetByCode(c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookResponse(book))
}

func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.service.ListActive()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(books))
	for i := range books {
		items[i] = bookResponse(&books[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *BookHandler) Update(c *gin.Context) {
	code := c.Param("code")
	var request struct {
		Title           string `json:"title" binding:"required"`
		Author          string `json:"author" binding:"required"`
		Publisher       string `json:"publisher"`
		AvailableCopies int    `json:"availableCopies"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	book, err := h.service.Update(code, services.BookInput{
		Title:           request.Title,
		Author:          request.Author,
		Publisher:       request.Publisher,
		AvailableCopies: request.AvailableCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookResponse(book))
}

func (h *BookHandler) SoftDelete(c *gin.Context) {
	book, err := h.service.SoftDelete(c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookResponse(book))
}

func bookResponse(book *models.Book) gin.H {
	return gin.H{
		"code":            book.Code,
		"title":           book.Title,
		"author":          book.Author,
		"publicationDate": formatDate(book.PublicationDate),
		"publisher":       book.Publisher,
		"availableCopies": book.AvailableCopies,
		"status":          book.Status,
	}
}

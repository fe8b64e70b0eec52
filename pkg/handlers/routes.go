package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library_backend/pkg/middleware"
	"library_backend/pkg/models"
	"library_backend/pkg/services"
	"library_backend/pkg/token"
)

// Register wires every route. Mutations are restricted to librarians; the
// read endpoints marked with both roles are also open to students.
func Register(
	r *gin.Engine,
	db *gorm.DB,
	tokens *token.Service,
	careers *services.CareerService,
	books *services.BookService,
	students *services.StudentService,
	loans *services.LoanService,
	reservations *services.ReservationService,
	users *services.UserService,
) {
	careerHandler := NewCareerHandler(careers)
	bookHandler := NewBookHandler(books)
	studentHandler := NewStudentHandler(students)
	loanHandler := NewLoanHandler(loans)
	reservationHandler := NewReservationHandler(reservations)
	authHandler := NewAuthHandler(users, tokens)
	healthHandler := NewHealthHandler(db)

	authenticated := middleware.AuthRequired(tokens)
	librarian := middleware.RequireRoles(models.RoleLibrarian)
	anyReader := middleware.RequireRoles(models.RoleLibrarian, models.RoleStudent)

	r.GET("/manage/health", healthHandler.Check)
	r.GET("/student/test", studentHandler.Test)

	auth := r.Group("/auth")
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signup", authHandler.Signup)
	auth.PUT("/users/:id", authenticated, librarian, authHandler.UpdateUser)

	career := r.Group("/career", authenticated)
	career.POST("", librarian, careerHandler.Create)
	career.GET("/all", anyReader, careerHandler.GetAll)
	career.PUT("/update/:code", librarian, careerHandler.Update)
	career.PUT("/soft-delete/:code", librarian, careerHandler.SoftDelete)

	booksGroup := r.Group("/books", authenticated)
	booksGroup.POST("", librarian, bookHandler.Create)
	booksGroup.GET("/all", anyReader, bookHandler.GetAll)
	booksGroup.GET("/:code", librarian, bookHandler.GetByCode)
	booksGroup.PUT("/:code", librarian, bookHandler.Update)
	booksGroup.DELETE("/:code", librarian, bookHandler.SoftDelete)

	student := r.Group("/student", authenticated)
	student.POST("", librarian, studentHandler.Create)
	student.GET("", librarian, studentHandler.GetAll)
	student.GET("/entities", librarian, studentHandler.GetEntities)
	student.GET("/:carnet", librarian, studentHandler.GetByCarnet)
	student.PUT("/:carnet", anyReader, studentHandler.Update)
	student.DELETE("/:carnet", librarian, studentHandler.Delete)
	student.PUT("/soft-delete/:carnet", librarian, studentHandler.SoftDelete)

	loansGroup := r.Group("/loans", authenticated)
	loansGroup.POST("", librarian, loanHandler.Create)
	loansGroup.GET("", anyReader, loanHandler.GetAll)
	loansGroup.GET("/:id", anyReader, loanHandler.GetByID)
	loansGroup.GET("/status/:status", anyReader, loanHandler.GetByStatus)
	loansGroup.PUT("/:id", librarian, loanHandler.Update)
	loansGroup.DELETE("/:id", librarian, loanHandler.Close)

	reservationsGroup := r.Group("/reservations", authenticated)
	reservationsGroup.POST("", librarian, reservationHandler.Create)
	reservationsGroup.GET("", anyReader, reservationHandler.GetAll)
	reservationsGroup.GET("/:id", anyReader, reservationHandler.GetByID)
	reservationsGroup.GET("/status/:status", anyReader, reservationHandler.GetByStatus)
	reservationsGroup.PUT("/:id", librarian, reservationHandler.Update)
	reservationsGroup.PATCH("/:id/status", librarian, reservationHandler.UpdateStatus)
}

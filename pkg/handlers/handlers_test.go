package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
	"library_backend/pkg/token"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *token.Service
	users  *services.UserService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Career{},
		&models.Book{},
		&models.Student{},
		&models.Loan{},
		&models.Reservation{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tokens := token.NewService("test-secret", time.Hour)

	careers := services.NewCareerService(db)
	books := services.NewBookService(db)
	students := services.NewStudentService(db, careers)
	loans := services.NewLoanService(db, students, books)
	reservations := services.NewReservationService(db, students, books)
	users := services.NewUserService(db)

	router := gin.New()
	Register(router, db, tokens, careers, books, students, loans, reservations, users)

	return &testServer{router: router, db: db, tokens: tokens, users: users}
}

func (s *testServer) request(t *testing.T, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) librarianToken(t *testing.T) string {
	t.Helper()
	signed, err := s.tokens.Generate("librarian", models.RoleLibrarian)
	assert.NoError(t, err)
	return signed
}

func (s *testServer) studentToken(t *testing.T) string {
	t.Helper()
	signed, err := s.tokens.Generate("student", models.RoleStudent)
	assert.NoError(t, err)
	return signed
}

func TestSigninReturnsTokenHeader(t *testing.T) {
	s := setupServer(t)
	_, err := s.users.CreateUser("Ana", "ana", "secret123", "ana@example.com", models.RoleLibrarian)
	assert.NoError(t, err)

	w := s.request(t, "POST", "/auth/signin", gin.H{"username": "ana", "password": "secret123"}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Authorization"), "Bearer ")
	assert.Empty(t, w.Body.String())
}

func TestSigninUnknownUser(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "POST", "/auth/signin", gin.H{"username": "ghost", "password": "secret123"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSigninWrongPassword(t *testing.T) {
	s := setupServer(t)
	_, err := s.users.CreateUser("Ana", "ana", "secret123", "ana@example.com", models.RoleLibrarian)
	assert.NoError(t, err)

	w := s.request(t, "POST", "/auth/signin", gin.H{"username": "ana", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSigninDisabledUser(t *testing.T) {
	s := setupServer(t)
	user, err := s.users.CreateUser("Ana", "ana", "secret123", "ana@example.com", models.RoleLibrarian)
	assert.NoError(t, err)
	user.Status = models.UserDisabled
	assert.NoError(t, s.db.Save(user).Error)

	w := s.request(t, "POST", "/auth/signin", gin.H{"username": "ana", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSignupDuplicateUsername(t *testing.T) {
	s := setupServer(t)

	body := gin.H{"name": "Ana", "email": "ana@example.com", "username": "ana", "password": "secret123"}
	w := s.request(t, "POST", "/auth/signup", body, "")
	assert.Equal(t, http.StatusOK, w.Code)

	body["email"] = "other@example.com"
	w = s.request(t, "POST", "/auth/signup", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "GET", "/books/all", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentRoleCannotCreateBooks(t *testing.T) {
	s := setupServer(t)

	body := gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "availableCopies": 1}
	w := s.request(t, "POST", "/books", body, s.studentToken(t))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStudentRoleCanListBooks(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "GET", "/books/all", nil, s.studentToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookCreateAndDuplicate(t *testing.T) {
	s := setupServer(t)
	bearer := s.librarianToken(t)

	body := gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "availableCopies": 2}
	w := s.request(t, "POST", "/books", body, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "POST", "/books", body, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookUpdateKeepsPublicationDate(t *testing.T) {
	s := setupServer(t)
	bearer := s.librarianToken(t)

	body := gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "publicationDate": "1965-08-01", "availableCopies": 2}
	w := s.request(t, "POST", "/books", body, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "PUT", "/books/B1", gin.H{"title": "Dune Messiah", "author": "Herbert", "availableCopies": 4}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Dune Messiah", updated["title"])
	assert.Equal(t, "1965-08-01", updated["publicationDate"])
}

func TestStudentEntitiesListing(t *testing.T) {
	s := setupServer(t)
	bearer := s.librarianToken(t)

	w := s.request(t, "POST", "/career", gin.H{"code": "CS", "name": "Computer Science"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, "POST", "/student", gin.H{"carnet": "S1", "name": "Ana", "career": "CS"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, "POST", "/books", gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "availableCopies": 1}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, "POST", "/loans", gin.H{"carnet": "S1", "bookCode": "B1", "loanDate": "2024-03-01"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "GET", "/student/entities", nil, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, "Computer Science", listed[0]["career"])
	loans, ok := listed[0]["loans"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, loans, 1)
}

func TestBookGetNotFound(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "GET", "/books/NOPE", nil, s.librarianToken(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCareerUpdateNotFound(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "PUT", "/career/update/NOPE", gin.H{"name": "Anything"}, s.librarianToken(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentTestEndpointIsPublic(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "GET", "/student/test", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The application is running!", w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "GET", "/manage/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

/// The end-to-end walk: career, student, duplicate student, book, loan, close.
func TestLoanLifecycle(t *testing.T) {
	s := setupServer(t)
	bearer := s.librarianToken(t)

	w := s.request(t, "POST", "/career", gin.H{"code": "CS", "name": "Computer Science"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	studentBody := gin.H{"carnet": "S1", "name": "Ana", "career": "CS"}
	w = s.request(t, "POST", "/student", studentBody, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "POST", "/student", studentBody, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bookBody := gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "availableCopies": 1}
	w = s.request(t, "POST", "/books", bookBody, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	loanBody := gin.H{"carnet": "S1", "bookCode": "B1", "loanDate": "2024-03-01", "totalDue": 50}
	w = s.request(t, "POST", "/loans", loanBody, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ACTIVE", created["status"])

	w = s.request(t, "DELETE", "/loans/1", nil, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var closed map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &closed))
	assert.Equal(t, "returned", closed["status"])
}

func TestLoanCreateNegativeTotalDue(t *testing.T) {
	s := setupServer(t)

	loanBody := gin.H{"carnet": "S1", "bookCode": "B1", "loanDate": "2024-03-01", "totalDue": -100}
	w := s.request(t, "POST", "/loans", loanBody, s.librarianToken(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationStatusUpdate(t *testing.T) {
	s := setupServer(t)
	bearer := s.librarianToken(t)

	w := s.request(t, "POST", "/career", gin.H{"code": "CS", "name": "Computer Science"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, "POST", "/student", gin.H{"carnet": "S1", "name": "Ana", "career": "CS"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, "POST", "/books", gin.H{"code": "B1", "title": "Dune", "author": "Herbert", "availableCopies": 1}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "POST", "/reservations", gin.H{"carnet": "S1", "bookCode": "B1", "reservationDate": "2024-03-01"}, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "PATCH", "/reservations/1/status?status=EXPIRED", nil, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "EXPIRED", updated["status"])
}

func TestReservationStatusUpdateMissingQuery(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, "PATCH", "/reservations/1/status", nil, s.librarianToken(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserEndpoint(t *testing.T) {
	s := setupServer(t)
	user, err := s.users.CreateUser("Ana", "ana", "secret123", "ana@example.com", models.RoleLibrarian)
	assert.NoError(t, err)

	body := gin.H{"name": "Ana Maria", "email": "ana@example.com", "username": "ana", "password": "secret123"}
	w := s.request(t, "PUT", "/auth/users/1", body, s.librarianToken(t))
	assert.Equal(t, http.StatusOK, w.Code)

	updated, err := s.users.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
}

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "peoplectl/internal/errors"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type personCreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Roll   string `json:"roll" binding:"required"`
	Age    *int   `json:"age" binding:"required,gte=0"`
	Gender string `json:"gender" binding:"required"`
}

type personPatchRequest struct {
	Name   *string `json:"name"`
	Roll   *string `json:"roll"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (s *Server) signupHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	if _, err := s.store.GetUser(req.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already exists"})
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.internalError(c, err)
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Server-side hashing error"})
		return
	}

	user, err := s.store.CreateUser(req.Username, hashed)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "User created", "username": user.Username})
}

func (s *Server) loginHandler(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	user, err := s.store.GetUser(req.Username)
	if err != nil || !checkPasswordHash(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}

	token, err := s.minter.Mint(user.Username)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	rawToken, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || rawToken == "" {
		s.unauthorized(c)
		return
	}

	username, err := s.minter.Verify(rawToken)
	if err != nil {
		s.unauthorized(c)
		return
	}

	c.Set("username", username)
	c.Next()
}

func (s *Server) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authentication credentials"})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

func (s *Server) createPersonHandler(c *gin.Context) {
	var req personCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	rec, err := s.store.CreatePerson(PersonRecord{Name: req.Name, Roll: req.Roll, Age: *req.Age, Gender: req.Gender})
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person created", "data": rec})
}

func (s *Server) listPersonsHandler(c *gin.Context) {
	search := c.Query("search")
	skip, ok := intQuery(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 50)
	if !ok {
		return
	}

	items, err := s.store.ListPersons(search, skip, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "skip": skip, "limit": limit})
}

func (s *Server) getPersonHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, err := s.store.GetPerson(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (s *Server) replacePersonHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req personCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	rec := PersonRecord{ID: id, Name: req.Name, Roll: req.Roll, Age: *req.Age, Gender: req.Gender}
	if err := s.store.UpdatePerson(rec); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person updated", "data": rec})
}

func (s *Server) patchPersonHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req personPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	rec, err := s.store.GetPerson(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	// Merge only the supplied fields.
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Roll != nil {
		rec.Roll = *req.Roll
	}
	if req.Age != nil {
		rec.Age = *req.Age
	}
	if req.Gender != nil {
		rec.Gender = *req.Gender
	}

	if err := s.store.UpdatePerson(rec); err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person partially updated", "data": rec})
}

func (s *Server) deletePersonHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, err := s.store.GetPerson(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	if err := s.store.DeletePerson(id); err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted", "data": rec})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid person id"})
		return 0, false
	}
	return id, true
}

// intQuery reads a non-negative integer query parameter. A malformed or
// negative value is a client error, not a silent fallback.
func intQuery(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("%s must be a non-negative integer", name)})
		return 0, false
	}
	return value, true
}

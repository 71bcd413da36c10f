package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"personalblog/api/v1/request"
	"personalblog/api/v1/response"
	"personalblog/internal/metrics"
	"personalblog/model"
	"personalblog/service"
)

// UserAPI exposes HTTP handlers for the registration/login flows.
type UserAPI struct {
	service *service.UserService
}

// NewUserAPI wires the service layer into the HTTP handlers.
func NewUserAPI(s *service.UserService) *UserAPI {
	return &UserAPI{service: s}
}

// Register handles new account creation.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRegister("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := model.User{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Age:    req.Age,
		Region: req.Region,
	}
	if err := u.service.Register(&user, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrUserFieldsMissing):
			metrics.IncRegister("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			metrics.IncRegister("internal_error")
			log.Printf("register failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	metrics.IncRegister("success")
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"user":    response.NewUser(&user),
	})
}

// Login validates credentials and returns a bearer token with the public
// user fields. Unknown email and wrong password are indistinguishable.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, user, err := u.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.IncLogin("invalid_credentials")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.IncLogin("internal_error")
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	metrics.IncLogin("success")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  response.NewUserSummary(user),
	})
}

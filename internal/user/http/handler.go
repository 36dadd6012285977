package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/pkg/response"
	"github.com/courtside/booking-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	u, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			c.JSON(http.StatusConflict, response.Result{Success: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: err.Error()})
		return
	}

	response.OK(c, http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, user.ErrInactiveUser) {
			c.JSON(http.StatusUnauthorized, response.Result{Success: false, Error: err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, response.Result{Success: false, Error: "unauthorized"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Result{Success: false, Error: "user not found"})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewUserResponse(u))
}

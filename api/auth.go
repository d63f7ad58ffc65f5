package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/staybooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie written on login.
type CookieConfig struct {
	Name   string
	Secure bool
	// TTL of 0 writes a browser-session cookie.
	TTL time.Duration
}

type AuthHandler struct {
	service auth.AuthUseCase
	cookie  CookieConfig
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"id"`
}

func NewAuthHandler(service auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{service: service, cookie: cookie}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/profile", h.profile)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "register", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, "register", err, "Failed registering user!")
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Name: user.Name, Email: user.Email})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "login", err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "login", err, "Failed to log in!")
		return
	}

	h.setCookie(c, token, int(h.cookie.TTL/time.Second))
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) profile(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	user, err := h.service.Profile(c.Request.Context(), token)
	if err != nil {
		respondError(c, "profile", err, "Failed to load profile!")
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, profileResponse{Name: user.Name, Email: user.Email, ID: user.ID})
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, true)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	// a cross-site SPA only sends the cookie back with SameSite=None, which requires Secure
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

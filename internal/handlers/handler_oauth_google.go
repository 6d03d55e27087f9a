package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/expenseflow/expense_approval_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthHandler exchanges Google authorization codes for application
// tokens. Only pre-registered users can sign in this way.
type GoogleOAuthHandler struct {
	authService portssvc.AuthSvcFacade
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		authService: as,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.Auth, cfg)

	oauth := rg.Group("/api/v1/auth/google")
	{
		oauth.POST("/exchange-code", h.ExchangeCode)
	}
}

// ExchangeCodeRequest carries the authorization code obtained by the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCode godoc
// @Summary Exchange a Google authorization code for an application token
// @Description Exchanges the code for Google tokens, validates the ID token, looks up the user by email and issues an application JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "No ID token in Google response"})
		return
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, h.oauthConfig.ClientID)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		logger.Error("Google ID token carried no email claim")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account has no email"})
		return
	}

	resp, err := h.authService.LoginWithProvider(ctx, email)
	if err != nil {
		respondServiceError(c, logger, err, "login with Google")
		return
	}

	logger.Info("User logged in via Google", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

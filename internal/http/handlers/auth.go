package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/http/middleware"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	"github.com/persx/persx-sub000/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, res.Token, int(ah.authService.TokenTTL().Seconds()), "/", "", ah.secureCookie, true)
	response.RespondOK(c, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"expires_in": int(ah.authService.TokenTTL().Seconds()),
		"user":       res.User,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ah.secureCookie, true)
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) Me(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.RespondOK(c, gin.H{"user_id": rd.UserID.String(), "email": rd.Email})
}

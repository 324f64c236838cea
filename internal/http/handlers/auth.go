package handlers

import (
	"net/http"
	"strings"
	"time"

	"faregateway/internal/http/middleware"
	"faregateway/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
// Single admin credential provisioned through the environment. The token it
// issues unlocks the pricing write endpoints.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	d := getDeps()
	requestID := middleware.GetRequestID(c)

	if d.Env.AdminEmail == "" || d.Env.AdminPasswordHash == "" {
		RespondError(c, http.StatusServiceUnavailable, "admin login is not configured", nil)
		return
	}

	email := strings.ToLower(utils.TrimOrEmpty(req.Email))
	if email != strings.ToLower(d.Env.AdminEmail) {
		utils.LogEvent(requestID, "auth", "login_failed", "unknown email")
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.Env.AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.LogEvent(requestID, "auth", "login_failed", "bad password")
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(d.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	utils.LogEvent(requestID, "auth", "login_ok", email)
	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"role":  "admin",
		"email": email,
	})
}

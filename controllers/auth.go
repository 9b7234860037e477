package controllers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const authCookie = "bingo_admin"

// AuthController is the thin operator gate: a password login sets an HttpOnly
// cookie, a middleware checks it on operator routes. Not a real identity
// system and not meant to be one.
type AuthController struct {
	token string
}

func NewAuthController(adminPassword string) *AuthController {
	sum := sha256.Sum256([]byte(adminPassword))
	return &AuthController{token: hex.EncodeToString(sum[:])}
}

// Login checks the password and sets the admin cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sum := sha256.Sum256([]byte(req.Password))
	if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(ac.token)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
		return
	}

	c.SetCookie(authCookie, ac.token, 12*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RequireAdmin guards operator routes behind the login cookie.
func (ac *AuthController) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(authCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(cookie), []byte(ac.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}
		c.Next()
	}
}

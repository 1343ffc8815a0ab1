package mailer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the relay API on r.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	api := r.Group("/api")
	api.Use(cors())

	api.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Portfolio API is running...")
	})

	api.POST("/send-email", func(c *gin.Context) {
		var m Message
		if err := c.ShouldBindJSON(&m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgFieldsRequired})
			return
		}

		if _, err := svc.Send(c.Request.Context(), m); err != nil {
			if errors.Is(err, ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": MsgFieldsRequired})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": MsgSendFailed})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": MsgSent})
	})
}

// cors lets the page be served from another origin than the relay.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

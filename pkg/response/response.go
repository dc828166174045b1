package response

import (
	"github.com/gin-gonic/gin"
)

// Every error body in the API is the flat {"message": "..."} shape; success
// bodies embed the resource next to the message.

// Message writes {"message": msg} with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// MessageWith writes {"message": msg, <key>: v}.
func MessageWith(c *gin.Context, status int, msg string, key string, v any) {
	c.JSON(status, gin.H{"message": msg, key: v})
}

// AbortMessage writes {"message": msg} and aborts the handler chain.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

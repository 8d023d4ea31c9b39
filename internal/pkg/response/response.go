package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope so clients never have to
// guess the shape of an error.

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"data":       data,
		"message":    message,
		"success":    true,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"data":       nil,
		"message":    message,
		"success":    false,
		"error":      gin.H{"code": code},
	})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"statusCode": statusCode,
		"data":       nil,
		"message":    message,
		"success":    false,
		"error":      gin.H{"code": code},
	})
}

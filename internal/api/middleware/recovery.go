package middleware

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/0xksdata/openclaw-honeypot/internal/logger"
)

// Recovery logs panic information and answers with a bland success stub.
// A 500 with a stack trace would break character; the generic body keeps the
// peer engaged and leaks nothing.
func Recovery() gin.HandlerFunc {
    return func(c *gin.Context) {
        defer func() {
            if r := recover(); r != nil {
                logger.WithFields(map[string]interface{}{
                    "method": c.Request.Method,
                    "path":   c.Request.URL.Path,
                    "panic":  r,
                }).Error("handler panic")
                c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true})
            }
        }()
        c.Next()
    }
}

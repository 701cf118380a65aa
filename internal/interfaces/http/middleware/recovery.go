package middleware

import (
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

// Recovery turns panics into 500 responses and logs the stack. Requests that
// died because the client hung up are logged without writing a response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		rawRequest, _ := httputil.DumpRequest(c.Request, false)
		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", redactHeaders(string(rawRequest)),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		c.Abort()
	})
}

// redactHeaders masks credential-bearing header values before they hit the log.
func redactHeaders(rawRequest string) []string {
	headers := strings.Split(rawRequest, "\r\n")
	for i, header := range headers {
		name, _, found := strings.Cut(header, ":")
		if found && (name == "Authorization" || name == constants.HeaderXAPIToken) {
			headers[i] = name + ": *"
		}
	}
	return headers
}

func isBrokenConnection(err interface{}) bool {
	ne, ok := err.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	for _, s := range []string{"connection reset by peer", "broken pipe", "connection refused"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

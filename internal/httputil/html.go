package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTMLPage writes a minimal static HTML page. The OAuth callback is reached by
// full-page navigation rather than a script, so it renders HTML instead of JSON.
func HTMLPage(c *gin.Context, status int, heading, message string) {
	body := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>" + heading + "</title></head><body><h1>" +
		heading + "</h1><p>" + message + "</p></body></html>"
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// HTMLSuccessPage writes a 200 HTML page.
func HTMLSuccessPage(c *gin.Context, heading, message string) {
	HTMLPage(c, http.StatusOK, heading, message)
}

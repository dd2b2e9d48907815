package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths bypass session authentication.
var publicPaths = map[string]bool{
	"/health":     true,
	"/api/health": true,
	"/api/login":  true,
}

// AuthSkipper returns true for requests whose route should skip
// authentication. Pass it to SessionMiddleware.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether path is served without a session.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}

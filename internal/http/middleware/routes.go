package middleware

import "github.com/gin-gonic/gin"

// unmatchedRoute labels requests that hit no registered route, so stray paths
// cannot grow metric or log cardinality.
const unmatchedRoute = "unmatched"

var operationalRoutes = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

func routeTemplate(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return unmatchedRoute
}

// operational reports health check and scrape endpoints, which are kept out of request
// logs and API metrics.
func operational(route string) bool {
	return operationalRoutes[route]
}

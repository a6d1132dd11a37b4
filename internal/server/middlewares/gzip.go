package middlewares

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

var (
	// probes poll often and the payload is tiny
	excludedPaths = []string{
		"/api/health",
	}
	excludedExtensions = []string{
		".png", ".gif", ".jpeg", ".jpg", ".webp", ".ico",
		".zip", ".tar", ".gz", ".bz2", ".rar", ".7z",
	}
)

func GZIP() gin.HandlerFunc {
	return gzip.Gzip(
		gzip.BestSpeed,
		gzip.WithExcludedPaths(excludedPaths),
		gzip.WithExcludedExtensions(excludedExtensions),
	)
}

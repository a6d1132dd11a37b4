package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Policy is a process wide cross-origin policy. It is not configurable per
// route or per request.
type Policy struct {
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DevPolicy accepts any origin. Development only, never use it in production.
func DevPolicy() Policy {
	return Policy{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       time.Hour,
	}
}

// Headers returns the fixed response headers the policy stamps on every response.
func (p Policy) Headers() http.Header {
	h := http.Header{}
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", strings.Join(p.AllowMethods, ","))
	h.Set("Access-Control-Allow-Headers", strings.Join(p.AllowHeaders, ","))
	h.Set("Access-Control-Max-Age", strconv.FormatInt(int64(p.MaxAge/time.Second), 10))
	return h
}

// CORS applies the policy to every request, matched route or not. Requests
// with an Origin go through gin-contrib/cors; the fixed headers are set first
// so that same-origin and origin-less requests carry them too. Every OPTIONS
// request is answered 200 without reaching the router.
func CORS(p Policy) gin.HandlerFunc {
	fixed := p.Headers()
	corsHandler := cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              p.AllowMethods,
		AllowHeaders:              p.AllowHeaders,
		AllowCredentials:          false,
		MaxAge:                    p.MaxAge,
		OptionsResponseStatusCode: http.StatusOK,
	})

	return func(c *gin.Context) {
		header := c.Writer.Header()
		for key, values := range fixed {
			header[key] = values
		}

		corsHandler(c)
		if c.IsAborted() {
			return
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

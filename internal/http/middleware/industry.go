package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
)

const (
	IndustryCookie = "persx_industry"
	industryQuery  = "industry"
	industryMaxAge = 90 * 24 * time.Hour
)

// Industry resolves the visitor's industry for personalization. A canonical
// ?industry= value wins and is remembered in a cookie; otherwise the cookie
// is used. Anything non-canonical leaves the request unpersonalized.
func Industry() gin.HandlerFunc {
	return func(c *gin.Context) {
		var industry blocks.Industry
		if q, ok := blocks.ParseIndustry(c.Query(industryQuery)); ok {
			industry = q
			SetIndustryCookie(c, q)
		} else if v, err := c.Cookie(IndustryCookie); err == nil {
			if ck, ok := blocks.ParseIndustry(v); ok {
				industry = ck
			}
		}
		if industry != "" {
			c.Request = c.Request.WithContext(ctxutil.WithIndustry(c.Request.Context(), string(industry)))
		}
		c.Next()
	}
}

func SetIndustryCookie(c *gin.Context, industry blocks.Industry) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(IndustryCookie, string(industry), int(industryMaxAge.Seconds()), "/", "", false, false)
}

// RequestIndustry returns the industry attached by Industry, or "".
func RequestIndustry(c *gin.Context) blocks.Industry {
	return blocks.Industry(ctxutil.Industry(c.Request.Context()))
}

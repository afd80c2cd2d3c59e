package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func industryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Industry())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, string(RequestIndustry(c)))
	})
	return r
}

func TestIndustryQuerySetsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	industryRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?industry=SaaS", nil))

	if rec.Body.String() != "saas" {
		t.Fatalf("industry: got=%q want=%q", rec.Body.String(), "saas")
	}
	if got := rec.Header().Get("Set-Cookie"); !strings.HasPrefix(got, IndustryCookie+"=saas") {
		t.Fatalf("cookie not set: %q", got)
	}
}

func TestIndustryCookieIsHonoured(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: IndustryCookie, Value: "healthcare"})
	rec := httptest.NewRecorder()
	industryRouter().ServeHTTP(rec, req)

	if rec.Body.String() != "healthcare" {
		t.Fatalf("industry: got=%q want=%q", rec.Body.String(), "healthcare")
	}
	if got := rec.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("unexpected cookie write: %q", got)
	}
}

func TestNonCanonicalIndustryIsIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?industry=retail", nil)
	req.AddCookie(&http.Cookie{Name: IndustryCookie, Value: "retail"})
	rec := httptest.NewRecorder()
	industryRouter().ServeHTTP(rec, req)

	if rec.Body.String() != "" {
		t.Fatalf("expected no industry, got %q", rec.Body.String())
	}
}

package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/http/middleware"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/services"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Geo headers set by the edge in front of the site, in order of preference.
var (
	countryHeaders = []string{"X-Vercel-IP-Country", "CF-IPCountry", "X-Country"}
	regionHeaders  = []string{"X-Vercel-IP-Country-Region", "X-Region"}
	cityHeaders    = []string{"X-Vercel-IP-City", "X-City"}
)

func firstHeader(c *gin.Context, names []string) string {
	for _, n := range names {
		if v := strings.TrimSpace(c.GetHeader(n)); v != "" {
			if dec, err := url.QueryUnescape(v); err == nil {
				return dec
			}
			return v
		}
	}
	return ""
}

// POST /api/submit-roadmap
func (h *LeadHandler) SubmitRoadmap(c *gin.Context) {
	var in services.RoadmapInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in.IPAddress = c.ClientIP()
	in.UserAgent = c.Request.UserAgent()
	in.Referrer = c.Request.Referer()
	in.Country = firstHeader(c, countryHeaders)
	in.Region = firstHeader(c, regionHeaders)
	in.City = firstHeader(c, cityHeaders)

	sub, err := h.leadService.SubmitRoadmap(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if industry, ok := blocks.ParseIndustry(sub.Industry); ok {
		middleware.SetIndustryCookie(c, industry)
	}
	response.RespondCreated(c, gin.H{"id": sub.ID, "industry": sub.Industry})
}

// POST /api/contact accepts JSON from the site script or a plain form post,
// which is redirected back with ?sent=1.
func (h *LeadHandler) Contact(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sub, err := h.leadService.SubmitContact(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if c.ContentType() == gin.MIMEPOSTForm || c.ContentType() == gin.MIMEMultipartPOSTForm {
		c.Redirect(http.StatusSeeOther, backTo(c.Request.Referer()))
		return
	}
	response.RespondCreated(c, gin.H{"id": sub.ID})
}

// backTo keeps only the path of a same-site referrer.
func backTo(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return "/?sent=1"
	}
	return u.Path + "?sent=1"
}

package blocks

import (
	"encoding/json"
	"strings"
)

// Industry identifies a visitor segment used to pick personalization variants.
type Industry string

const (
	IndustryEcommerce         Industry = "ecommerce"
	IndustrySaaS              Industry = "saas"
	IndustryFinancialServices Industry = "financial_services"
	IndustryHealthcare        Industry = "healthcare"
	IndustryEducation         Industry = "education"
)

var Industries = []Industry{
	IndustryEcommerce,
	IndustrySaaS,
	IndustryFinancialServices,
	IndustryHealthcare,
	IndustryEducation,
}

var industryLabels = map[Industry]string{
	IndustryEcommerce:         "E-commerce",
	IndustrySaaS:              "SaaS",
	IndustryFinancialServices: "Financial Services",
	IndustryHealthcare:        "Healthcare",
	IndustryEducation:         "Education",
}

func (i Industry) Canonical() bool {
	_, ok := industryLabels[i]
	return ok
}

func (i Industry) Label() string { return industryLabels[i] }

// ParseIndustry normalizes user input and reports whether it is canonical.
func ParseIndustry(s string) (Industry, bool) {
	i := Industry(strings.ToLower(strings.TrimSpace(s)))
	if !i.Canonical() {
		return "", false
	}
	return i, true
}

// Resolve returns the data to render for b given the visitor's industry.
//
// Hero and feature grid variants replace the personalizable fields wholesale.
// Contact form variants merge field by field over {headline: subheading, reasons}.
// Everything else, and any miss, renders the defaults.
func Resolve(b Block, industry Industry) Data {
	data := b.Data
	if cf, ok := data.(ContactFormData); ok {
		cf.Headline = cf.Subheading
		data = cf
	}
	raw, ok := variantFor(b, industry)
	if !ok {
		return data
	}
	switch d := data.(type) {
	case HeroData:
		var v struct {
			Headline    string `json:"headline"`
			Subheadline string `json:"subheadline"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return data
		}
		d.Headline, d.Subheadline = v.Headline, v.Subheadline
		return d
	case FeatureGridData:
		var v struct {
			Heading    string    `json:"heading"`
			Subheading string    `json:"subheading"`
			Features   []Feature `json:"features"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return data
		}
		d.Heading, d.Subheading, d.Features = v.Heading, v.Subheading, v.Features
		return d
	case ContactFormData:
		var v struct {
			Headline *string  `json:"headline"`
			Reasons  []string `json:"reasons"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return data
		}
		if v.Headline != nil {
			d.Headline = *v.Headline
		}
		if v.Reasons != nil {
			d.Reasons = v.Reasons
		}
		return d
	}
	return data
}

func variantFor(b Block, industry Industry) (json.RawMessage, bool) {
	if b.Personalization == nil || !b.Personalization.Enabled {
		return nil, false
	}
	if !b.Type.Personalizable() || !industry.Canonical() {
		return nil, false
	}
	raw, ok := b.Personalization.Variants[string(industry)]
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

package blocks

// Type tags the closed set of block shapes a page can be built from.
type Type string

const (
	TypeHero                Type = "hero"
	TypeFeatureGrid         Type = "feature_grid"
	TypeCTABanner           Type = "cta_banner"
	TypeCallout             Type = "callout"
	TypeMartechIntegrations Type = "martech_integrations"
	TypeContactForm         Type = "contact_form"
	TypeTrustCards          Type = "trust_cards"
	TypeSteps               Type = "steps"
	TypeTwoColumn           Type = "two_column"
)

// Types lists every known block type in picker order.
var Types = []Type{
	TypeHero,
	TypeFeatureGrid,
	TypeCTABanner,
	TypeCallout,
	TypeMartechIntegrations,
	TypeContactForm,
	TypeTrustCards,
	TypeSteps,
	TypeTwoColumn,
}

var typeLabels = map[Type]string{
	TypeHero:                "Hero",
	TypeFeatureGrid:         "Feature Grid",
	TypeCTABanner:           "CTA Banner",
	TypeCallout:             "Callout",
	TypeMartechIntegrations: "Martech Integrations",
	TypeContactForm:         "Contact Form",
	TypeTrustCards:          "Trust Cards",
	TypeSteps:               "Steps",
	TypeTwoColumn:           "Two Column",
}

func (t Type) Known() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string { return typeLabels[t] }

// FullWidth reports whether blocks of this type render edge to edge instead of
// inside the page container.
func (t Type) FullWidth() bool {
	return t == TypeTwoColumn || t == TypeCTABanner
}

// Personalizable reports whether variants are honoured for this type.
func (t Type) Personalizable() bool {
	return t == TypeHero || t == TypeFeatureGrid || t == TypeContactForm
}

// Data is implemented by exactly one struct per block type, plus Unknown.
type Data interface {
	BlockType() Type
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type HeroData struct {
	Headline     string `json:"headline"`
	Subheadline  string `json:"subheadline"`
	PrimaryCTA   Link   `json:"primaryCta"`
	SecondaryCTA Link   `json:"secondaryCta"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ImageAlt     string `json:"imageAlt,omitempty"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FeatureGridData struct {
	Heading    string    `json:"heading"`
	Subheading string    `json:"subheading"`
	Features   []Feature `json:"features"`
	Columns    int       `json:"columns,omitempty"`
}

type CTABannerData struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	CTA         Link   `json:"cta"`
	Variant     string `json:"variant,omitempty"`
}

type CalloutData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Style   string `json:"style,omitempty"`
}

type MartechTool struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

type MartechIntegrationsData struct {
	Heading    string        `json:"heading"`
	Subheading string        `json:"subheading"`
	Tools      []MartechTool `json:"tools"`
}

type ContactFormData struct {
	Heading    string   `json:"heading"`
	Subheading string   `json:"subheading"`
	Reasons    []string `json:"reasons"`
	SubmitText string   `json:"submitText"`
	// Headline is the side-panel headline. It is never stored; Resolve fills it
	// from the variant or from Subheading.
	Headline string `json:"headline,omitempty"`
}

type TrustCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type TrustCardsData struct {
	Heading string      `json:"heading"`
	Cards   []TrustCard `json:"cards"`
}

type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type StepsData struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Steps      []Step `json:"steps"`
}

type Column struct {
	Heading string   `json:"heading"`
	Content string   `json:"content"`
	Bullets []string `json:"bullets,omitempty"`
	CTA     *Link    `json:"cta,omitempty"`
}

type TwoColumnData struct {
	Left       Column `json:"left"`
	Right      Column `json:"right"`
	Background string `json:"background,omitempty"`
}

// Unknown holds a block whose type is not in the closed set. The raw payload is
// preserved so saving a page never drops data written by a newer editor.
type Unknown struct {
	Kind Type
	Raw  []byte
}

func (HeroData) BlockType() Type                { return TypeHero }
func (FeatureGridData) BlockType() Type         { return TypeFeatureGrid }
func (CTABannerData) BlockType() Type           { return TypeCTABanner }
func (CalloutData) BlockType() Type             { return TypeCallout }
func (MartechIntegrationsData) BlockType() Type { return TypeMartechIntegrations }
func (ContactFormData) BlockType() Type         { return TypeContactForm }
func (TrustCardsData) BlockType() Type          { return TypeTrustCards }
func (StepsData) BlockType() Type               { return TypeSteps }
func (TwoColumnData) BlockType() Type           { return TypeTwoColumn }
func (u Unknown) BlockType() Type               { return u.Kind }

package blocks

// DefaultData returns the payload a freshly added block starts with.
func DefaultData(t Type) (Data, error) {
	switch t {
	case TypeHero:
		return HeroData{
			Headline:     "Personalization that pays for itself",
			Subheadline:  "Turn every visit into a conversation tailored to the visitor's industry.",
			PrimaryCTA:   Link{Text: "Get your roadmap", URL: "/roadmap"},
			SecondaryCTA: Link{Text: "See how it works", URL: "/knowledge"},
		}, nil
	case TypeFeatureGrid:
		return FeatureGridData{
			Heading:    "Why teams choose PersX",
			Subheading: "Everything you need to personalize without a rebuild.",
			Features: []Feature{
				{Icon: "target", Title: "Audience targeting", Description: "Segment by industry, intent and stack."},
				{Icon: "zap", Title: "Fast experiments", Description: "Launch tests in hours, not sprints."},
				{Icon: "bar-chart", Title: "Clear reporting", Description: "See lift per segment at a glance."},
			},
			Columns: 3,
		}, nil
	case TypeCTABanner:
		return CTABannerData{
			Heading:     "Ready to personalize?",
			Description: "Get a tailored roadmap in under five minutes.",
			CTA:         Link{Text: "Start now", URL: "/roadmap"},
			Variant:     "primary",
		}, nil
	case TypeCallout:
		return CalloutData{Title: "Note", Content: "Add supporting context here.", Style: "info"}, nil
	case TypeMartechIntegrations:
		return MartechIntegrationsData{
			Heading:    "Works with your stack",
			Subheading: "Native integrations with the tools you already use.",
			Tools: []MartechTool{
				{Name: "Google Analytics", Category: "analytics"},
				{Name: "HubSpot", Category: "crm"},
				{Name: "Segment", Category: "cdp"},
			},
		}, nil
	case TypeContactForm:
		return ContactFormData{
			Heading:    "Talk to us",
			Subheading: "Tell us about your goals and we will follow up within one business day.",
			Reasons: []string{
				"A personalization roadmap for your site",
				"Benchmarks from teams in your industry",
				"A walkthrough of your martech integrations",
			},
			SubmitText: "Send message",
		}, nil
	case TypeTrustCards:
		return TrustCardsData{
			Heading: "Built for trust",
			Cards: []TrustCard{
				{Title: "Privacy first", Description: "No third-party cookies required.", Icon: "shield"},
				{Title: "Enterprise ready", Description: "SSO, audit logs and role-based access.", Icon: "building"},
			},
		}, nil
	case TypeSteps:
		return StepsData{
			Heading: "How it works",
			Steps: []Step{
				{Title: "Connect", Description: "Add one snippet to your site."},
				{Title: "Segment", Description: "Pick the audiences that matter."},
				{Title: "Personalize", Description: "Ship tailored experiences."},
			},
		}, nil
	case TypeTwoColumn:
		return TwoColumnData{
			Left:  Column{Heading: "The problem", Content: "Generic pages convert generic visitors."},
			Right: Column{Heading: "The fix", Content: "Speak to each industry in its own language."},
		}, nil
	default:
		return nil, ErrUnknownType
	}
}

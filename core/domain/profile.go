// ABOUTME: Composite company profile returned by the profile aggregator
// ABOUTME: Every section is independently nullable; nil means the source returned nothing

package domain

import "time"

// RiskTier is a coarse risk classification
type RiskTier string

const (
	RiskLow     RiskTier = "laag"
	RiskMedium  RiskTier = "gemiddeld"
	RiskHigh    RiskTier = "hoog"
	RiskUnknown RiskTier = "onbekend"
)

// LegalEventType classifies entries in the insolvency and announcement registers
type LegalEventType string

const (
	LegalBankruptcy   LegalEventType = "faillissement"
	LegalSuspension   LegalEventType = "surseance"
	LegalDissolution  LegalEventType = "ontbinding"
	LegalAnnouncement LegalEventType = "publicatie"
)

// LegalEvent is a dated legal record
type LegalEvent struct {
	Type        LegalEventType `json:"type"`
	Date        time.Time      `json:"datum"`
	Description string         `json:"omschrijving"`
	Reference   string         `json:"kenmerk,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// LegalStatus aggregates insolvency, suspension and dissolution records
type LegalStatus struct {
	Bankruptcy    *LegalEvent  `json:"faillissement,omitempty"`
	Suspension    *LegalEvent  `json:"surseance,omitempty"`
	Dissolution   *LegalEvent  `json:"ontbinding,omitempty"`
	Announcements []LegalEvent `json:"publicaties"`
	Risk          RiskTier     `json:"risico"`
}

// DeriveRisk computes the tier from the records present
func (l *LegalStatus) DeriveRisk() RiskTier {
	switch {
	case l.Bankruptcy != nil, l.Suspension != nil:
		return RiskHigh
	case l.Dissolution != nil, len(l.Announcements) > 3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// EmployeeTrend describes the direction of headcount over recent years
type EmployeeTrend string

const (
	TrendGrowing   EmployeeTrend = "groeiend"
	TrendStable    EmployeeTrend = "stabiel"
	TrendShrinking EmployeeTrend = "krimpend"
	TrendUnknown   EmployeeTrend = "onbekend"
)

// EmployeeCount is one yearly headcount observation
type EmployeeCount struct {
	Year  int `json:"jaar"`
	Count int `json:"aantal"`
}

// FinancialIndicators combines provider data with locally derived heuristics.
// Each field is independently optional.
type FinancialIndicators struct {
	CreditScore      *int            `json:"kredietscore,omitempty"`
	PaymentBehaviour string          `json:"betaalgedrag,omitempty"`
	Risk             RiskTier        `json:"risico,omitempty"`
	CompanyAgeYears  *int            `json:"bedrijfsleeftijd,omitempty"`
	EmployeeTrend    EmployeeTrend   `json:"werknemerstrend,omitempty"`
	SectorRisk       RiskTier        `json:"sectorRisico,omitempty"`
	EmployeeHistory  []EmployeeCount `json:"werknemershistorie,omitempty"`
}

// SocialProfiles holds discovered social media URLs
type SocialProfiles struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Count returns the number of platforms with a profile
func (s *SocialProfiles) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, v := range []string{s.LinkedIn, s.Facebook, s.Instagram, s.Twitter, s.YouTube} {
		if v != "" {
			n++
		}
	}
	return n
}

// TechStack groups detected technology tags by category
type TechStack struct {
	CMS        []string `json:"cms"`
	Frameworks []string `json:"frameworks"`
	Analytics  []string `json:"analytics"`
	Payments   []string `json:"payments"`
	Marketing  []string `json:"marketing"`
}

// Categories returns how many categories have at least one tag
func (t *TechStack) Categories() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range [][]string{t.CMS, t.Frameworks, t.Analytics, t.Payments, t.Marketing} {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

// WebPresence is what the website crawl and its derivatives found
type WebPresence struct {
	Website     string          `json:"website,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"telefoon,omitempty"`
	Description string          `json:"omschrijving,omitempty"`
	BrandColor  string          `json:"merkkleur,omitempty"`
	Socials     *SocialProfiles `json:"socials"`
	TechStack   *TechStack      `json:"techStack"`
}

// PlatformRating is the rating on a single review platform
type PlatformRating struct {
	Platform string  `json:"platform"`
	Rating   float64 `json:"score"`
	Count    int     `json:"aantal"`
	URL      string  `json:"url,omitempty"`
}

// Reviews holds per-platform ratings plus a count-weighted aggregate
type Reviews struct {
	Platforms     []PlatformRating `json:"platforms"`
	AverageRating float64          `json:"gemiddelde"`
	TotalCount    int              `json:"totaal"`
}

// Recompute sets the aggregate from the platform list
func (r *Reviews) Recompute() {
	total := 0
	weighted := 0.0
	for _, p := range r.Platforms {
		if p.Count <= 0 {
			continue
		}
		total += p.Count
		weighted += p.Rating * float64(p.Count)
	}
	r.TotalCount = total
	r.AverageRating = 0
	if total > 0 {
		r.AverageRating = float64(int(weighted/float64(total)*10+0.5)) / 10
	}
}

// NewsItem is one news article mentioning the company
type NewsItem struct {
	Title       string    `json:"titel"`
	Source      string    `json:"bron"`
	PublishedAt time.Time `json:"datum"`
	URL         string    `json:"url"`
	Summary     string    `json:"samenvatting,omitempty"`
}

// Scores are the four derived 0..100 sub-scores
type Scores struct {
	Growth     int `json:"groei"`
	Digital    int `json:"digitaal"`
	Reputation int `json:"reputatie"`
	Overall    int `json:"totaal"`
}

// Narrative origins
const (
	NarrativeGenerated = "ai"
	NarrativeRules     = "regels"
)

// Analysis is the narrative block with its scores
type Analysis struct {
	Summary         string   `json:"samenvatting"`
	Strengths       []string `json:"sterktes"`
	Concerns        []string `json:"aandachtspunten"`
	Recommendations []string `json:"aanbevelingen"`
	Scores          Scores   `json:"scores"`
	// Confidence is a percentage reflecting how complete the inputs were
	Confidence int    `json:"betrouwbaarheid"`
	Origin     string `json:"herkomst"`
}

// TimelineEventType classifies timeline entries
type TimelineEventType string

const (
	EventFounding      TimelineEventType = "oprichting"
	EventDirectorStart TimelineEventType = "bestuurder_in"
	EventDirectorEnd   TimelineEventType = "bestuurder_uit"
	EventAnnouncement  TimelineEventType = "publicatie"
	EventSuspension    TimelineEventType = "surseance"
	EventBankruptcy    TimelineEventType = "faillissement"
	EventDissolution   TimelineEventType = "ontbinding"
)

// TimelineEvent is one dated entry in the synthesized timeline
type TimelineEvent struct {
	Date        time.Time         `json:"datum"`
	Type        TimelineEventType `json:"type"`
	Title       string            `json:"titel"`
	Description string            `json:"omschrijving,omitempty"`
	Source      string            `json:"bron"`
	URL         string            `json:"url,omitempty"`
}

// Meta reports how the profile was produced
type Meta struct {
	GeneratedAt      time.Time `json:"gegenereerdOp"`
	Sources          []string  `json:"bronnen"`
	ProcessingTimeMs int64     `json:"verwerkingstijdMs"`
	Errors           []string  `json:"errors"`
}

// CompanyProfile is the composite result for one registration number
type CompanyProfile struct {
	KvkNumber   string               `json:"kvkNummer"`
	Identity    *Identity            `json:"identiteit"`
	Address     *Address             `json:"adres"`
	Directors   []Director           `json:"bestuurders"`
	Relations   *Relations           `json:"relaties"`
	LegalStatus *LegalStatus         `json:"juridischeStatus"`
	Financial   *FinancialIndicators `json:"financieel"`
	WebPresence *WebPresence         `json:"webAanwezigheid"`
	Reviews     *Reviews             `json:"reviews"`
	News        []NewsItem           `json:"nieuws"`
	Analysis    *Analysis            `json:"aiAnalyse"`
	Timeline    []TimelineEvent      `json:"tijdlijn"`
	Meta        Meta                 `json:"meta"`
}

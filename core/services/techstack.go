// ABOUTME: Technology detection over a website crawl using script, markup and header signatures
// ABOUTME: Tags are grouped into CMS, frameworks, analytics, payments and marketing

package services

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

type techCategory int

const (
	catCMS techCategory = iota
	catFramework
	catAnalytics
	catPayments
	catMarketing
)

type signature struct {
	name     string
	category techCategory
	// needles are matched case-insensitively against script URLs, markup,
	// the generator tag and response headers
	needles []string
}

var signatures = []signature{
	{"WordPress", catCMS, []string{"wp-content/", "wp-includes/", "wordpress"}},
	{"Shopify", catCMS, []string{"cdn.shopify.com", "shopify"}},
	{"Wix", catCMS, []string{"static.wixstatic.com", "wix.com"}},
	{"Squarespace", catCMS, []string{"squarespace"}},
	{"Drupal", catCMS, []string{"drupal"}},
	{"Joomla", catCMS, []string{"joomla"}},
	{"Magento", catCMS, []string{"mage/cookies", "magento"}},
	{"Lightspeed", catCMS, []string{"lightspeed", "webshopapp.com"}},
	{"WooCommerce", catCMS, []string{"woocommerce"}},
	{"Webflow", catCMS, []string{"webflow"}},

	{"React", catFramework, []string{"react-dom", "data-reactroot", "__react"}},
	{"Next.js", catFramework, []string{"/_next/", "__next"}},
	{"Vue.js", catFramework, []string{"vue.js", "vue.min.js", "vue.global", "vue@"}},
	{"Nuxt", catFramework, []string{"/_nuxt/", "__nuxt"}},
	{"Angular", catFramework, []string{"ng-version", "angular"}},
	{"jQuery", catFramework, []string{"jquery"}},
	{"Bootstrap", catFramework, []string{"bootstrap"}},
	{"Tailwind CSS", catFramework, []string{"tailwind"}},

	{"Google Analytics", catAnalytics, []string{"google-analytics.com", "gtag/js", "googletagmanager.com/gtag"}},
	{"Google Tag Manager", catAnalytics, []string{"googletagmanager.com/gtm"}},
	{"Hotjar", catAnalytics, []string{"hotjar"}},
	{"Matomo", catAnalytics, []string{"matomo", "piwik"}},
	{"Plausible", catAnalytics, []string{"plausible.io"}},

	{"Mollie", catPayments, []string{"mollie"}},
	{"Adyen", catPayments, []string{"adyen"}},
	{"Stripe", catPayments, []string{"js.stripe.com", "stripe"}},
	{"PayPal", catPayments, []string{"paypal"}},
	{"iDEAL", catPayments, []string{"ideal.js", "/ideal/", "idealcheckout"}},

	{"HubSpot", catMarketing, []string{"hs-scripts.com", "hubspot"}},
	{"Mailchimp", catMarketing, []string{"mailchimp", "list-manage.com"}},
	{"Meta Pixel", catMarketing, []string{"connect.facebook.net", "fbq("}},
	{"LinkedIn Insight", catMarketing, []string{"snap.licdn.com"}},
	{"ActiveCampaign", catMarketing, []string{"activecampaign"}},
	{"Cookiebot", catMarketing, []string{"cookiebot"}},
}

// TechDetector implements TechStackDetector
type TechDetector struct{}

// NewTechDetector creates a detector
func NewTechDetector() *TechDetector {
	return &TechDetector{}
}

// Detect returns the tags found in snapshot. A nil snapshot yields nil.
func (d *TechDetector) Detect(snapshot *interfaces.WebsiteSnapshot) *domain.TechStack {
	if snapshot == nil {
		return nil
	}

	haystack := strings.ToLower(buildHaystack(snapshot))
	found := make(map[techCategory][]string)
	for _, sig := range signatures {
		for _, needle := range sig.needles {
			if strings.Contains(haystack, needle) {
				found[sig.category] = append(found[sig.category], sig.name)
				break
			}
		}
	}

	return &domain.TechStack{
		CMS:        sorted(found[catCMS]),
		Frameworks: sorted(found[catFramework]),
		Analytics:  sorted(found[catAnalytics]),
		Payments:   sorted(found[catPayments]),
		Marketing:  sorted(found[catMarketing]),
	}
}

// buildHaystack concatenates the parts of the crawl that carry signatures.
// Visible text is excluded so a blog post about WordPress is not a match.
func buildHaystack(s *interfaces.WebsiteSnapshot) string {
	var b strings.Builder
	b.WriteString(s.Generator)
	b.WriteByte('\n')
	for _, src := range s.Scripts {
		b.WriteString(src)
		b.WriteByte('\n')
	}
	for k, v := range s.Headers {
		if k == "x-powered-by" || k == "server" || k == "x-generator" || strings.HasPrefix(k, "x-shopify") {
			b.WriteString(k + ": " + v + "\n")
		}
	}

	if s.HTML == "" {
		return b.String()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.HTML))
	if err != nil {
		return b.String()
	}
	doc.Find("script").Each(func(_ int, sc *goquery.Selection) {
		b.WriteString(sc.AttrOr("src", ""))
		b.WriteByte('\n')
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	})
	doc.Find("link[href]").Each(func(_ int, l *goquery.Selection) {
		b.WriteString(l.AttrOr("href", ""))
		b.WriteByte('\n')
	})
	doc.Find("[data-reactroot], [ng-version], #__next, #__nuxt").Each(func(_ int, el *goquery.Selection) {
		if _, ok := el.Attr("data-reactroot"); ok {
			b.WriteString("data-reactroot\n")
		}
		if _, ok := el.Attr("ng-version"); ok {
			b.WriteString("ng-version\n")
		}
		if id := el.AttrOr("id", ""); id != "" {
			b.WriteString(id + "\n")
		}
	})
	return b.String()
}

func sorted(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	sort.Strings(tags)
	return tags
}

package extract

import (
	"regexp"
	"strings"
)

// markdownImagePattern matches markdown image syntax ![alt](url)
var markdownImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// bareImagePattern catches image-looking URLs outside markdown syntax,
// including the big Indian car CDNs that omit file extensions
var bareImagePattern = regexp.MustCompile(`(?i)(https?://[^\s"']+(?:\.jpg|\.png|\.webp|imagecdn[^\s"']*|stimg[^\s"']*|imgcdn[^\s"']*))`)

// trustedImageDomains are car portals whose images we accept without a
// brand/model match in the alt text or URL
var trustedImageDomains = []string{"carwale", "cardekho", "cars24", "autoportal", "zigwheels"}

func looksLikeCarImage(url string) bool {
	return strings.Contains(url, "http") &&
		(strings.Contains(url, ".jpg") || strings.Contains(url, ".png") ||
			strings.Contains(url, ".webp") || strings.Contains(url, "imagecdn") ||
			strings.Contains(url, "stimg") || strings.Contains(url, "imgcdn"))
}

func fromTrustedDomain(url string) bool {
	for _, domain := range trustedImageDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

// ExtractImageURL finds the most plausible car image in a markdown body.
// Markdown images whose alt text or URL mentions the brand/model (or that come
// from a trusted portal) win; otherwise any image-like URL from a trusted
// domain, then the first image-like URL at all.
func ExtractImageURL(markdown, brand, model string) string {
	brandLower := strings.ToLower(brand)
	modelLower := strings.ToLower(model)

	for _, match := range markdownImagePattern.FindAllStringSubmatch(markdown, -1) {
		alt := strings.ToLower(match[1])
		url := match[2]

		if !looksLikeCarImage(url) {
			continue
		}

		urlLower := strings.ToLower(url)
		if (brandLower != "" && (strings.Contains(alt, brandLower) || strings.Contains(urlLower, brandLower))) ||
			(modelLower != "" && (strings.Contains(alt, modelLower) || strings.Contains(urlLower, modelLower))) ||
			strings.Contains(url, "carwale") || strings.Contains(url, "cardekho") || strings.Contains(url, "cars24") {
			return url
		}
	}

	urls := bareImagePattern.FindAllString(markdown, -1)
	if len(urls) == 0 {
		return ""
	}

	for _, url := range urls {
		if fromTrustedDomain(url) {
			return url
		}
	}

	// Usually the first image on a listing page is the car itself
	return urls[0]
}

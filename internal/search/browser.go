package search

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"autovault/internal/models"
)

// portalSearchURLs are the car-portal search pages the browser provider loads
// directly when no Firecrawl key is configured
var portalSearchURLs = []string{
	"https://www.cardekho.com/search?q=%s",
	"https://www.carwale.com/search/?q=%s",
	"https://www.cars24.com/buy-used-cars/?q=%s",
}

// BrowserProvider is a headless-browser fallback search provider. It loads the
// big Indian car portals' search pages for the query and returns each page's
// text as one result. Slower and noisier than Firecrawl, but keyless.
type BrowserProvider struct {
	browser *rod.Browser
}

// NewBrowserProvider creates a browser-backed search provider. The browser is
// launched lazily on the first search.
func NewBrowserProvider() *BrowserProvider {
	return &BrowserProvider{}
}

// initBrowser launches and connects the headless browser if needed
func (p *BrowserProvider) initBrowser() error {
	if p.browser != nil {
		return nil
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", "1920,1080").
		Set("user-agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	if path, has := launcher.LookPath(); has {
		l = l.Bin(path)
	}

	if isDockerEnvironment() {
		fmt.Println("🐳 Docker environment detected, applying container-specific settings")
		l = l.Set("disable-setuid-sandbox").
			Set("no-first-run").
			Set("single-process")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	p.browser = browser
	fmt.Println("✅ Browser initialized successfully")
	return nil
}

// Search loads each portal's search page for the query and collects the page
// text. A portal that fails to load is skipped; the batch continues.
func (p *BrowserProvider) Search(ctx context.Context, query string, limit int) ([]models.RawResult, error) {
	if err := p.initBrowser(); err != nil {
		return nil, err
	}

	var results []models.RawResult
	escaped := url.QueryEscape(query)

	for _, template := range portalSearchURLs {
		if len(results) >= limit {
			break
		}
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		pageURL := fmt.Sprintf(template, escaped)
		text, err := p.scrapePageText(pageURL)
		if err != nil {
			fmt.Printf("⚠️ Failed to load %s: %v\n", pageURL, err)
			continue
		}

		results = append(results, models.RawResult{
			Description: text,
			URL:         pageURL,
		})
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no portal search page could be loaded for %q", query)
	}
	return results, nil
}

// scrapePageText loads one page behind stealth and returns its visible text
func (p *BrowserProvider) scrapePageText(pageURL string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page load panicked: %v", r)
		}
	}()

	page := stealth.MustPage(p.browser)
	defer page.MustClose()

	page = page.Timeout(20 * time.Second)
	page.MustNavigate(pageURL)
	page.MustWaitLoad()

	// Give client-rendered listings a moment to appear
	time.Sleep(2 * time.Second)

	body := page.MustElement("body")
	return body.MustText(), nil
}

// Close shuts down the headless browser
func (p *BrowserProvider) Close() {
	if p.browser != nil {
		_ = p.browser.Close()
		p.browser = nil
	}
}

// isDockerEnvironment detects container environments that need extra Chrome flags
func isDockerEnvironment() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return os.Getenv("DOCKER_CONTAINER") != ""
}

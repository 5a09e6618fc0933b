package service

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	"leadagent/internal/util"
	agenterrors "leadagent/pkg/errors"
)

const serviceSelectors = ".service, .product, .offering, .feature, .card, li"

// BrowserService renders JavaScript-heavy pages in headless Chromium and
// extracts a richer content bundle than the static scraper: image alt texts
// and service/offering snippets in addition to the page copy.
type BrowserService struct {
	headless bool
	timeout  time.Duration
	logger   *zap.Logger
}

// BrowserResult carries the scraped bundle plus an optional page screenshot
// saved as a debug artifact.
type BrowserResult struct {
	Bundle     *domain.ContentBundle
	Screenshot []byte
}

func NewBrowserService(headless bool, timeout time.Duration, logger *zap.Logger) *BrowserService {
	if timeout <= 0 {
		timeout = constants.ScraperConfig.BrowserTimeout
	}
	return &BrowserService{
		headless: headless,
		timeout:  timeout,
		logger:   logger,
	}
}

// Scrape renders the page and extracts the content bundle. Used when the
// static scraper comes back empty-handed.
func (b *BrowserService) Scrape(ctx context.Context, url string) (*BrowserResult, error) {
	l := launcher.New().Headless(b.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, agenterrors.NewTransportError("failed to launch browser", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, agenterrors.NewTransportError("failed to connect to browser", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			b.logger.Debug("Browser close failed", zap.Error(err))
		}
	}()

	pageCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	page, err := browser.Context(pageCtx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, agenterrors.NewTransportError("failed to open page", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, agenterrors.NewTransportError("page load failed", err)
	}

	// Give client-side rendering time to settle before reading the DOM
	select {
	case <-pageCtx.Done():
		return nil, pageCtx.Err()
	case <-time.After(constants.ScraperConfig.SettleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return nil, agenterrors.NewTransportError("failed to read page HTML", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, agenterrors.NewTransportError("rendered HTML parse failed", err)
	}

	bundle := b.extractBundle(doc, url)

	if len(bundle.AboutLinks) > 0 {
		aboutContent, err := b.scrapeAboutPage(ctx, browser, bundle.AboutLinks[0])
		if err != nil {
			b.logger.Warn("Error scraping about page",
				zap.String("url", bundle.AboutLinks[0]),
				zap.Error(err))
		} else {
			bundle.AboutContent = aboutContent
		}
	}

	result := &BrowserResult{Bundle: bundle}

	if shot, err := page.Screenshot(true, nil); err != nil {
		b.logger.Debug("Screenshot failed", zap.Error(err))
	} else {
		result.Screenshot = shot
	}

	b.logger.Info("Dynamic scrape succeeded",
		zap.String("business_name", bundle.BusinessName),
		zap.Int("main_content_len", len(bundle.MainContent)),
		zap.Int("image_alts", len(bundle.ImageAltTexts)),
		zap.Int("services", len(bundle.PossibleServices)))

	return result, nil
}

func (b *BrowserService) extractBundle(doc *goquery.Document, pageURL string) *domain.ContentBundle {
	bundle := &domain.ContentBundle{
		BusinessName: "N/A",
		Description:  "N/A",
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		bundle.BusinessName = title
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		bundle.Description = desc
	}

	bundle.MainContent = extractRenderedContent(doc)
	if len(bundle.MainContent) > constants.ContentLimits.MainContent {
		bundle.MainContent = bundle.MainContent[:constants.ContentLimits.MainContent]
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if len(bundle.AboutLinks) >= 1 {
			return
		}
		if aboutLinkRegex.MatchString(strings.ToLower(a.Text())) {
			href, _ := a.Attr("href")
			bundle.AboutLinks = append(bundle.AboutLinks, resolveURL(pageURL, href))
		}
	})

	doc.Find("img[alt]").Each(func(_ int, img *goquery.Selection) {
		if len(bundle.ImageAltTexts) >= constants.ContentLimits.MaxImageAlts {
			return
		}
		alt, _ := img.Attr("alt")
		if len(alt) > 3 {
			bundle.ImageAltTexts = append(bundle.ImageAltTexts, alt)
		}
	})

	doc.Find(serviceSelectors).Each(func(_ int, el *goquery.Selection) {
		if len(bundle.PossibleServices) >= constants.ContentLimits.MaxServices {
			return
		}
		text := strings.TrimSpace(el.Text())
		if len(text) > 15 && len(text) < 200 {
			bundle.PossibleServices = append(bundle.PossibleServices, text)
		}
	})

	bundle.ImageAltTexts = util.Unique(bundle.ImageAltTexts)
	bundle.PossibleServices = util.Unique(bundle.PossibleServices)

	return bundle
}

// extractRenderedContent collects text from known content containers, or
// from any substantial text element when no container matches.
func extractRenderedContent(doc *goquery.Document) string {
	var b strings.Builder

	containers := doc.Find(mainContentSelectors)
	if containers.Length() > 0 {
		containers.Each(func(_ int, el *goquery.Selection) {
			if text := strings.TrimSpace(el.Text()); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		})
		return strings.TrimSpace(b.String())
	}

	doc.Find("p, h1, h2, h3, h4, h5, h6, li, span").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if len(text) > 20 {
			b.WriteString(text)
			b.WriteString(" ")
		}
	})

	return strings.TrimSpace(b.String())
}

func (b *BrowserService) scrapeAboutPage(ctx context.Context, browser *rod.Browser, url string) (string, error) {
	aboutCtx, cancel := context.WithTimeout(ctx, constants.ScraperConfig.AboutTimeout)
	defer cancel()

	page, err := browser.Context(aboutCtx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", err
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	select {
	case <-aboutCtx.Done():
		return "", aboutCtx.Err()
	case <-time.After(2 * time.Second):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	doc.Find("p, h1, h2, h3, h4, h5, h6, li").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if len(text) > 20 {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	})

	content := strings.TrimSpace(sb.String())
	if len(content) > constants.ContentLimits.MainContent {
		content = content[:constants.ContentLimits.MainContent]
	}
	return content, nil
}

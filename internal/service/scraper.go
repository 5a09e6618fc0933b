package service

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	agenterrors "leadagent/pkg/errors"
)

var aboutLinkRegex = regexp.MustCompile(`about|company|team|who we are`)

// mainContentSelectors are the containers checked for primary page copy
// before falling back to bare paragraphs.
const mainContentSelectors = "main, article, .content, #content, .main, #main"

// ScraperService fetches a site's landing page over plain HTTP and extracts
// the content bundle used by the downstream analysis stages.
type ScraperService struct {
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	logger     *zap.Logger
}

func NewScraperService(timeout time.Duration, maxRetries int, logger *zap.Logger) *ScraperService {
	if timeout <= 0 {
		timeout = constants.ScraperConfig.RequestTimeout
	}
	if maxRetries <= 0 {
		maxRetries = constants.ScraperConfig.MaxRetries
	}

	return &ScraperService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		retryDelay: constants.ScraperConfig.RetryDelay,
		userAgent:  constants.ScraperConfig.UserAgent,
		logger:     logger,
	}
}

// Scrape fetches the page with retries. A nil bundle with an error means the
// static path is exhausted and the caller should try the browser scraper.
func (s *ScraperService) Scrape(ctx context.Context, url string) (*domain.ContentBundle, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		bundle, err := s.scrapeOnce(ctx, url)
		if err == nil {
			return bundle, nil
		}

		lastErr = err
		s.logger.Warn("Static scrape attempt failed",
			zap.Int("attempt", attempt),
			zap.String("url", url),
			zap.Error(err))

		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
	}

	s.logger.Error("Static scraping failed after all retries", zap.String("url", url))
	return nil, agenterrors.NewTransportError(
		fmt.Sprintf("static scraping failed after %d retries", s.maxRetries), lastErr)
}

func (s *ScraperService) scrapeOnce(ctx context.Context, url string) (*domain.ContentBundle, error) {
	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

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

	bundle.MainContent = extractMainContent(doc)
	bundle.AboutLinks = s.findAboutLinks(doc, url)

	if len(bundle.AboutLinks) > 0 {
		aboutContent, err := s.scrapeAboutPage(ctx, bundle.AboutLinks[0])
		if err != nil {
			s.logger.Warn("Error scraping about page",
				zap.String("url", bundle.AboutLinks[0]),
				zap.Error(err))
		} else {
			bundle.AboutContent = aboutContent
		}
	}

	s.logger.Info("Static scrape succeeded",
		zap.String("business_name", bundle.BusinessName),
		zap.Int("main_content_len", len(bundle.MainContent)),
		zap.Int("about_links", len(bundle.AboutLinks)))

	return bundle, nil
}

func (s *ScraperService) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTML parse failed: %w", err)
	}

	return doc, nil
}

// extractMainContent pulls the primary page text from the first known
// content container, or from the first 10 paragraphs when none match.
func extractMainContent(doc *goquery.Document) string {
	var parts []string

	containers := doc.Find(mainContentSelectors)
	if containers.Length() > 0 {
		containers.First().Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				parts = append(parts, text)
			}
		})
	} else {
		doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			if text := strings.TrimSpace(p.Text()); text != "" {
				parts = append(parts, text)
			}
			return true
		})
	}

	return strings.Join(parts, " ")
}

// findAboutLinks returns at most one link whose anchor text looks like an
// about page, with relative URLs resolved against the page URL.
func (s *ScraperService) findAboutLinks(doc *goquery.Document, pageURL string) []string {
	var links []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.ToLower(a.Text())
		if !aboutLinkRegex.MatchString(text) {
			return
		}

		href, _ := a.Attr("href")
		links = append(links, resolveURL(pageURL, href))
	})

	if len(links) > 1 {
		links = links[:1]
	}
	return links
}

func resolveURL(pageURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		parts := strings.SplitN(pageURL, "/", 4)
		if len(parts) >= 3 {
			return parts[0] + "//" + parts[2] + href
		}
		return pageURL + href
	}
	return strings.TrimRight(pageURL, "/") + "/" + href
}

func (s *ScraperService) scrapeAboutPage(ctx context.Context, url string) (string, error) {
	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= 10 {
			return false
		}
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
		return true
	})

	return strings.Join(parts, " "), nil
}

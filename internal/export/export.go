package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadagent/internal/domain"
	"leadagent/internal/util"
)

// Exporter writes run artifacts: the lead batch, one draft file per email,
// and the debug captures of the scrape pipeline. Each pipeline run gets its
// own directory so reruns never clobber earlier output.
type Exporter struct {
	baseDir string
	logger  *zap.Logger
}

func NewExporter(baseDir string, logger *zap.Logger) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Run is a single pipeline run's output directory.
type Run struct {
	Dir    string
	logger *zap.Logger
}

// NewRun creates the run directory, named after the business plus a short
// random suffix for uniqueness.
func (e *Exporter) NewRun(businessName string) (*Run, error) {
	slug := util.Slugify(businessName)
	if slug == "" || slug == "n-a" {
		slug = "run"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}

	dir := filepath.Join(e.baseDir, fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8]))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	e.logger.Info("Run directory created", zap.String("dir", dir))
	return &Run{Dir: dir, logger: e.logger}, nil
}

// OpenRun reopens an existing run directory so its leads can be composed
// again without rescraping.
func (e *Exporter) OpenRun(dir string) (*Run, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open run directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Run{Dir: dir, logger: e.logger}, nil
}

// SaveLeads writes the lead batch as indented JSON.
func (r *Run) SaveLeads(leads []domain.Lead) (string, error) {
	path := filepath.Join(r.Dir, "leads.json")

	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal leads: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write leads file: %w", err)
	}

	r.logger.Info("Leads saved", zap.String("path", path), zap.Int("count", len(leads)))
	return path, nil
}

// LoadLeads reads the lead batch written by an earlier run.
func (r *Run) LoadLeads() ([]domain.Lead, error) {
	path := filepath.Join(r.Dir, "leads.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read leads file: %w", err)
	}
	var leads []domain.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("failed to parse leads file: %w", err)
	}
	return leads, nil
}

// LoadRawScrape reads the scrape capture written by an earlier run.
func (r *Run) LoadRawScrape() (*domain.ContentBundle, error) {
	path := filepath.Join(r.Dir, "raw_scrape.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw scrape: %w", err)
	}
	var bundle domain.ContentBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse raw scrape: %w", err)
	}
	return &bundle, nil
}

// SaveEmail writes one draft as email_N.txt with To/Subject headers, a blank
// line, and the body. Index is 1-based.
func (r *Run) SaveEmail(index int, draft domain.EmailDraft) (string, error) {
	path := filepath.Join(r.Dir, fmt.Sprintf("email_%d.txt", index))

	content := fmt.Sprintf("To: %s\nSubject: %s\n\n%s", draft.Recipient, draft.Subject, draft.Body)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write email file: %w", err)
	}

	r.logger.Info("Email draft saved", zap.String("path", path), zap.String("to", draft.Recipient))
	return path, nil
}

// SaveRawScrape writes the untouched scrape result for debugging.
func (r *Run) SaveRawScrape(bundle *domain.ContentBundle) error {
	path := filepath.Join(r.Dir, "raw_scrape.json")

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scrape result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write raw scrape: %w", err)
	}
	return nil
}

// SaveCompiledContent writes the text block fed to the extraction prompt.
func (r *Run) SaveCompiledContent(content string) error {
	path := filepath.Join(r.Dir, "compiled_content.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write compiled content: %w", err)
	}
	return nil
}

// SaveScreenshot writes the rendered-page capture from the browser scraper.
func (r *Run) SaveScreenshot(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	path := filepath.Join(r.Dir, "screenshot.png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}

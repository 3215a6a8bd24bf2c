package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogsmith/app/config"
	"blogsmith/app/service/crew"

	"github.com/elliotchance/pie/v2"
	"github.com/go-pdf/fpdf"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/yuin/goldmark"
)

// Service renders the current blog to files. PDFs go to the configured
// artifact directory and are served back by name.
type Service struct {
	dir string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if err := os.MkdirAll(cfg.Server.ArtifactDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}

	return &Service{dir: cfg.Server.ArtifactDir}, nil
}

func NewWithDir(dir string) *Service {
	return &Service{dir: dir}
}

// Render writes the blog as a PDF and returns the generated file name.
func (s *Service) Render(blog *crew.Blog) (string, error) {
	name := fmt.Sprintf("%s-%d.pdf", Slug(blog.Header), time.Now().Unix())

	pdf := fpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, translate(blog.Header), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, translate(blog.Entry), "", "L", false)
	pdf.Ln(4)

	for _, section := range blog.Paragraphs {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, translate(section.SubHeader), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, translate(section.Paragraph), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, "Conclusion", "", "L", false)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, translate(blog.Conclusion), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, translate("Keywords: "+strings.Join(pie.Unique(blog.SEOKeywords), ", ")), "", "L", false)

	if err := pdf.OutputFileAndClose(filepath.Join(s.dir, name)); err != nil {
		return "", oops.Code("artifact_render_failed").Wrapf(err, "failed to write PDF")
	}

	return name, nil
}

// PreviewHTML renders the blog through its markdown form.
func (s *Service) PreviewHTML(blog *crew.Blog) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(blog)), &buf); err != nil {
		return nil, oops.Code("artifact_render_failed").Wrapf(err, "failed to render markdown")
	}

	return buf.Bytes(), nil
}

// Open resolves a previously rendered artifact by name.
func (s *Service) Open(name string) (string, error) {
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".pdf") {
		return "", fmt.Errorf("invalid artifact name: %q", name)
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %w", err)
	}

	return path, nil
}

// Markdown serializes the blog back into a markdown article.
func Markdown(blog *crew.Blog) string {
	var builder strings.Builder

	builder.WriteString("# " + blog.Header + "\n\n")
	builder.WriteString(blog.Entry + "\n\n")

	for _, section := range blog.Paragraphs {
		builder.WriteString("## " + section.SubHeader + "\n\n")
		builder.WriteString(section.Paragraph + "\n\n")
	}

	builder.WriteString("## Conclusion\n\n")
	builder.WriteString(blog.Conclusion + "\n\n")
	builder.WriteString("*Keywords: " + strings.Join(pie.Unique(blog.SEOKeywords), ", ") + "*\n")

	return builder.String()
}

// Slug derives a file-name-safe fragment from a blog header.
func Slug(header string) string {
	var builder strings.Builder

	for _, r := range strings.ToLower(header) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		case builder.Len() > 0 && !strings.HasSuffix(builder.String(), "-"):
			builder.WriteRune('-')
		}
	}

	slug := strings.Trim(builder.String(), "-")
	if slug == "" {
		return "blog"
	}

	if len(slug) > 48 {
		slug = strings.Trim(slug[:48], "-")
	}

	return slug
}

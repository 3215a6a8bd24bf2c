package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogsmith/app/service/crew"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlog() *crew.Blog {
	return &crew.Blog{
		Header: "Rust Corrosion Prevention",
		Entry:  "Why metal fails and what to do about it.",
		Paragraphs: []crew.Paragraph{
			{SubHeader: "Causes", Paragraph: "Moisture and oxygen."},
			{SubHeader: "Coatings", Paragraph: "Paints and galvanization."},
		},
		Conclusion:  "Prevention beats repair.",
		SEOKeywords: []string{"rust", "corrosion", "rust"},
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Rust Corrosion Prevention", "rust-corrosion-prevention"},
		{"  Hello,   World!  ", "hello-world"},
		{"Go 1.25: What's New?", "go-1-25-what-s-new"},
		{"!!!", "blog"},
		{"", "blog"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.header), "header %q", tt.header)
	}
}

func TestSlug_Bounded(t *testing.T) {
	slug := Slug(strings.Repeat("very long header ", 20))

	assert.LessOrEqual(t, len(slug), 48)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleBlog())

	assert.True(t, strings.HasPrefix(md, "# Rust Corrosion Prevention\n"))
	assert.Contains(t, md, "## Causes\n")
	assert.Contains(t, md, "## Coatings\n")
	assert.Contains(t, md, "## Conclusion\n")
	assert.Contains(t, md, "rust, corrosion", "keywords are deduplicated")
	assert.Equal(t, 1, strings.Count(md, "rust,"), "duplicate keyword appears once")
}

func TestRenderAndOpen(t *testing.T) {
	svc := NewWithDir(t.TempDir())

	name, err := svc.Render(sampleBlog())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "rust-corrosion-prevention-"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	path, err := svc.Open(name)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOpen_RejectsTraversalAndUnknownNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.pdf"), []byte("pdf"), 0644))

	svc := NewWithDir(dir)

	for _, name := range []string{"../secret.pdf", "a/b.pdf", "ok.txt", "missing.pdf"} {
		_, err := svc.Open(name)
		assert.Error(t, err, "name %q must be rejected", name)
	}

	_, err := svc.Open("ok.pdf")
	assert.NoError(t, err)
}

func TestPreviewHTML(t *testing.T) {
	svc := NewWithDir(t.TempDir())

	html, err := svc.PreviewHTML(sampleBlog())
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "Rust Corrosion Prevention")
	assert.Contains(t, string(html), "<h2")
}

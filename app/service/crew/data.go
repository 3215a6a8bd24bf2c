package crew

import (
	"github.com/go-playground/validator/v10"
)

// Paragraph is one body section of the blog.
type Paragraph struct {
	SubHeader string `json:"sub_header" validate:"required"`
	Paragraph string `json:"paragraph" validate:"required"`
}

// Blog is the structured article managed by the assistant. It is replaced
// wholesale on every successful draft or revision, never patched field by
// field.
type Blog struct {
	Header      string      `json:"header" validate:"required"`
	Entry       string      `json:"entry" validate:"required"`
	Paragraphs  []Paragraph `json:"paragraphs" validate:"required,min=1,dive"`
	Conclusion  string      `json:"conclusion" validate:"required"`
	SEOKeywords []string    `json:"seo_keywords" validate:"required,min=1"`
}

var blogValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateBlog reports whether a collaborator response conforms to the
// required blog shape.
func ValidateBlog(blog *Blog) error {
	return blogValidator.Struct(blog)
}

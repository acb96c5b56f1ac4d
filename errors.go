package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
	"github.com/alnah/go-mdsite/internal/markdown"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors from the markdown compiler, re-exported for errors.Is checks.
var (
	ErrNoHeading       = markdown.ErrNoHeading
	ErrMissingValue    = htmlnode.ErrMissingValue
	ErrMissingTag      = htmlnode.ErrMissingTag
	ErrMissingChildren = htmlnode.ErrMissingChildren
	ErrUnknownSpanKind = inline.ErrUnknownKind
)

// Errors from page generation, re-exported for errors.Is checks.
var (
	ErrHTMLConversion         = pipeline.ErrHTMLConversion
	ErrUnknownEngine          = pipeline.ErrUnknownEngine
	ErrTemplateMissingContent = pipeline.ErrTemplateMissingContent
	ErrStyleNotFound          = assets.ErrStyleNotFound
	ErrTemplateNotFound       = assets.ErrTemplateNotFound
)

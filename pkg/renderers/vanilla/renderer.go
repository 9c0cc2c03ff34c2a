package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	wizardTemplate   = "wizard.tmpl"
	documentTemplate = "document.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	noticePolicy     *bluemonday.Policy
	assetsURL        string
	document         bool
	lang             string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithNoticePolicy overrides the sanitiser applied to notices and backend
// form errors. The default allows user-generated-content markup.
func WithNoticePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.noticePolicy = policy
		}
	}
}

// WithAssetsURL links the stylesheet and runtime script from prefix instead
// of inlining the embedded copies.
func WithAssetsURL(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsURL = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithDocument wraps the wizard in a complete HTML document using lang as
// the page language.
func WithDocument(lang string) Option {
	return func(cfg *config) {
		cfg.document = true
		cfg.lang = strings.TrimSpace(lang)
	}
}

// Renderer renders the wizard as a single HTML form. Every step section is
// present in the markup; inactive ones are hidden.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	noticePolicy *bluemonday.Policy
	textPolicy   *bluemonday.Policy
	assetsURL    string
	document     bool
	lang         string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.noticePolicy == nil {
		cfg.noticePolicy = bluemonday.UGCPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		noticePolicy: cfg.noticePolicy,
		textPolicy:   bluemonday.StrictPolicy(),
		assetsURL:    cfg.assetsURL,
		document:     cfg.document,
		lang:         cfg.lang,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view wizard.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := wizardTemplate
	if r.document {
		name = documentTemplate
	}
	result, err := r.templates.RenderTemplate(name, map[string]any{
		"page": r.buildPage(view, options),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

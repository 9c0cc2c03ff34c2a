package main

import (
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/submit"
)

func loadDefinition(cfg config.DefinitionConfig) (model.Definition, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return schema.Default()
	}
	return schema.LoadFile(cfg.Path)
}

// resolveTheme turns the configured tokens into a renderer theme. No theme
// name means the stylesheet defaults apply.
func resolveTheme(cfg config.ThemeConfig) (*theme.RendererConfig, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, nil
	}
	manifest := &theme.Manifest{
		Name:     cfg.Name,
		Tokens:   cfg.Tokens,
		Variants: make(map[string]theme.Variant, len(cfg.Variants)),
	}
	for name, tokens := range cfg.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: tokens}
	}
	selector, err := render.NewManifestSelector(cfg.Name, cfg.Variant, manifest)
	if err != nil {
		return nil, err
	}
	resolved, err := render.ResolveTheme(selector, cfg.Name, cfg.Variant, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve theme: %w", err)
	}
	return resolved, nil
}

// newSubmitter returns nil when no backend is configured.
func newSubmitter(ctx context.Context, cfg config.BackendConfig) (*submit.Client, error) {
	if cfg.BaseURL == "" {
		return nil, nil
	}
	return submit.New(ctx, cfg.BaseURL,
		submit.WithTimeout(cfg.Timeout),
		submit.WithLogger(app.logger.Named("submit")),
	)
}

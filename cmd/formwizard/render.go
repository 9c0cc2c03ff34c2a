package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var renderFlags struct {
	renderer  string
	output    string
	action    string
	templates string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the initial state of the wizard without serving it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		def, err := loadDefinition(app.cfg.Definition)
		if err != nil {
			return err
		}
		controller, err := wizard.New(def)
		if err != nil {
			return err
		}

		registry, err := buildRegistry()
		if err != nil {
			return err
		}
		renderer, err := registry.Get(renderFlags.renderer)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, registry.List())
		}
		resolved, err := resolveTheme(app.cfg.Theme)
		if err != nil {
			return err
		}

		out, err := renderer.Render(ctx, controller.View(), render.RenderOptions{
			Action: renderFlags.action,
			Theme:  resolved,
		})
		if err != nil {
			return err
		}
		if renderFlags.output != "" {
			return os.WriteFile(renderFlags.output, out, 0o644)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func buildRegistry() (*render.Registry, error) {
	html, err := vanilla.New(vanilla.WithDocument("es"), vanilla.WithTemplatesDir(renderFlags.templates))
	if err != nil {
		return nil, err
	}
	text, err := tui.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(render.NewJSONRenderer())
	registry.MustRegister(text)
	return registry, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.renderer, "renderer", "r", "vanilla", "renderer: vanilla, json or tui")
	renderCmd.Flags().StringVarP(&renderFlags.output, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringVar(&renderFlags.action, "action", "", "form action URL")
	renderCmd.Flags().StringVar(&renderFlags.templates, "templates", "", "template directory overriding the embedded bundle")
}

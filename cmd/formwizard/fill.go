package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var fillFlags struct {
	format    string
	output    string
	omitEmpty bool
	send      bool
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the wizard in the terminal",
	Long: `Walk every step with interactive prompts. The accepted values are
printed in the chosen format, or posted to the backend with --send.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		def, err := loadDefinition(app.cfg.Definition)
		if err != nil {
			return err
		}
		controller, err := wizard.New(def, wizard.WithLogger(app.logger.Named("wizard")))
		if err != nil {
			return err
		}

		options := []tui.Option{
			tui.WithOutput(cmd.ErrOrStderr()),
			tui.WithOutputFormat(tui.OutputFormat(fillFlags.format)),
			tui.WithTheme(tui.Theme{PromptPrefix: "", InfoPrefix: "» ", ErrorPrefix: "✗ "}),
		}
		if fillFlags.omitEmpty {
			options = append(options, tui.WithSubmitTransformer(omitEmpty))
		}
		renderer, err := tui.New(options...)
		if err != nil {
			return err
		}

		result, err := renderer.Run(ctx, controller)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "cancelado")
			return nil
		}
		if err != nil {
			return err
		}

		if fillFlags.send {
			return send(cmd, def, result)
		}

		out, err := renderer.Serialize(result.Values)
		if err != nil {
			return err
		}
		if fillFlags.output != "" {
			return os.WriteFile(fillFlags.output, append(out, '\n'), 0o644)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func send(cmd *cobra.Command, def model.Definition, result wizard.Result) error {
	client, err := newSubmitter(cmd.Context(), app.cfg.Backend)
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("--send needs backend.base_url")
	}
	payload, err := submit.Assemble(def, result)
	if err != nil {
		return err
	}
	created, err := client.Submit(cmd.Context(), payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), created.Message)
	return err
}

func omitEmpty(values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for key, value := range values {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	return out, nil
}

func init() {
	fillCmd.Flags().StringVarP(&fillFlags.format, "format", "f", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	fillCmd.Flags().StringVarP(&fillFlags.output, "output", "o", "", "write the values to a file instead of stdout")
	fillCmd.Flags().BoolVar(&fillFlags.omitEmpty, "omit-empty", false, "leave blank optional values out of the output")
	fillCmd.Flags().BoolVar(&fillFlags.send, "send", false, "post the solicitud to the configured backend")
}

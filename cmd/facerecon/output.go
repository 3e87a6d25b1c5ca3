package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func writeValue(w io.Writer, format string, v any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// render prints the snapshot and turns a failed intent into a command error so
// the exit status reflects it.
func (a *app) render(cmd *cobra.Command, state store.ViewState) error {
	if err := writeValue(cmd.OutOrStdout(), mustGetString(cmd, "output"), a.presenter.State(state)); err != nil {
		return err
	}
	return outcomeErr(state)
}

func outcomeErr(state store.ViewState) error {
	if state.HasError() {
		return errors.New(state.ErrorMessage)
	}
	if state.Notice != nil && state.Notice.Visible && !state.Notice.Success {
		return errors.New(state.Notice.Message)
	}
	return nil
}

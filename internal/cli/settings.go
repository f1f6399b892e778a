package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xoseperez/platformio/internal/settings"
)

// Output formats for settings list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persisted settings",
	}
	cmd.AddCommand(
		newSettingsGetCmd(),
		newSettingsSetCmd(),
		newSettingsListCmd(),
		newSettingsResetCmd(),
	)
	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := settings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Println(formatValue(value))
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value := args[0], args[1]
			if err := settings.Set(cmd.Context(), name, value); err != nil {
				return err
			}

			effective, err := settings.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			cmd.Printf("The new value for the setting is %s\n", formatValue(effective))
			return nil
		},
	}
}

func newSettingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Revert all settings to their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := settings.Reset(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("The settings have been reseted!")
			return nil
		},
	}
}

func newSettingsListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings with their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case formatTable:
				return renderSettingsTable(cmd)
			case formatJSON, formatYAML:
				return dumpSettings(cmd, output)
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", formatTable, "output format: table, json or yaml")
	return cmd
}

// renderSettingsTable writes a Name/Value/Default/Description table, marking
// values that differ from their default.
func renderSettingsTable(cmd *cobra.Command) error {
	const tabPadding = 2
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, headerStyle("Name\tValue\tDefault\tDescription"))
	fmt.Fprintln(w, "----\t-----\t-------\t-----------")

	for _, name := range settings.Names() {
		def, err := settings.Describe(name)
		if err != nil {
			return err
		}
		value, err := settings.Get(cmd.Context(), name)
		if err != nil {
			return err
		}

		rendered := formatValue(value)
		if value != def.Default {
			rendered = modifiedStyle(rendered + " *")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, rendered, formatValue(def.Default), def.Description)
	}
	return w.Flush()
}

// dumpSettings writes a name-to-effective-value mapping as JSON or YAML.
func dumpSettings(cmd *cobra.Command, format string) error {
	values := make(map[string]any, len(settings.Names()))
	for _, name := range settings.Names() {
		value, err := settings.Get(cmd.Context(), name)
		if err != nil {
			return err
		}
		values[name] = value
	}

	var (
		data []byte
		err  error
	)
	if format == formatJSON {
		data, err = json.MarshalIndent(values, "", "  ")
	} else {
		data, err = yaml.Marshal(values)
	}
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	cmd.Println(string(data))
	return nil
}

// formatValue renders a setting value the way the settings commands print
// them: booleans as Yes/No, everything else verbatim.
func formatValue(value any) string {
	if b, ok := value.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprint(value)
}

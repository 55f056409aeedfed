package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/htmlwash/policy"
)

// NewPresetsCmd creates the presets command.
func NewPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name...]",
		Short: "Print the available cleanup presets",
		Long: `Print the cleanup presets as YAML, in the same layout as a preset file.
Built-in presets are merged with the preset file, if one is found. With
arguments, only the named presets are printed.`,
		RunE: runPresetsCmd,
	}
}

func runPresetsCmd(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets(cmd, newLogger(cmd))
	if err != nil {
		return err
	}

	f := policy.File{Presets: presets}
	if len(args) > 0 {
		f.Presets = make(map[string]policy.Policy, len(args))
		for _, name := range args {
			p, ok := presets.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown preset %q", name)
			}
			f.Presets[name] = p
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding presets: %w", err)
	}
	return enc.Close()
}

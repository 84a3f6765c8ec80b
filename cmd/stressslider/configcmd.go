package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accesstechnology-mike/stressslider/internal/config"
)

func newConfigCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration",
	}
	cmd.AddCommand(newConfigShowCmd(f), newConfigInitCmd(f))
	return cmd
}

func newConfigShowCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend:       %s\n", cfg.Backend)
			fmt.Fprintf(out, "db_path:       %s\n", cfg.DBPath)
			fmt.Fprintf(out, "file_path:     %s\n", cfg.FilePath)
			fmt.Fprintf(out, "log_path:      %s\n", cfg.LogPath)
			fmt.Fprintf(out, "log_level:     %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "initial_level: %d\n", cfg.InitialLevel)
			return nil
		},
	}
}

func newConfigInitCmd(f *flags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to .stressslider/config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			if output != "" {
				err = config.SaveFile(output, cfg)
			} else {
				output = ".stressslider/config.yaml"
				err = config.SaveToProject(cfg)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of the project config")
	return cmd
}

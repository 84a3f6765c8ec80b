package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/accesstechnology-mike/stressslider/internal/strategy"
	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

func newStrategiesCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "Inspect or reset the stored strategy lists",
	}
	cmd.AddCommand(newStrategiesListCmd(f), newStrategiesResetCmd(f))
	return cmd
}

func newStrategiesListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [zone]",
		Short: "Print the strategies for one zone or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zones := zone.All()
			if len(args) == 1 {
				z, ok := zone.Parse(args[0])
				if !ok {
					return fmt.Errorf("unknown zone %q (use low, medium, high or 1-3, 4-6, 7-9)", args[0])
				}
				zones = []zone.Zone{z}
			}

			s, closer, err := openCLIStore(f)
			if err != nil {
				return err
			}
			defer closer.Close()

			return printStrategies(cmd.Context(), cmd.OutOrStdout(), s, zones)
		},
	}
}

func newStrategiesResetCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <zone>",
		Short: "Restore a zone's built-in strategies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, ok := zone.Parse(args[0])
			if !ok {
				return fmt.Errorf("unknown zone %q (use low, medium, high or 1-3, 4-6, 7-9)", args[0])
			}

			s, closer, err := openCLIStore(f)
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := s.Reset(cmd.Context(), z); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s strategies restored\n", z.Title())
			return nil
		},
	}
}

// openCLIStore opens the configured store with logs discarded; subcommands
// report through their exit status and output instead, so a backend that
// can't be opened is an error here.
func openCLIStore(f *flags) (*strategy.Store, io.Closer, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend, closer, err := openBackend(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return strategy.NewStore(backend, logger), closer, nil
}

func printStrategies(ctx context.Context, w io.Writer, s *strategy.Store, zones []zone.Zone) error {
	for i, z := range zones {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", z.Title(), z.TabID())
		list := s.Get(ctx, z)
		if len(list) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		for n, entry := range list {
			fmt.Fprintf(w, "  %d. %s\n", n+1, entry)
		}
	}
	return nil
}

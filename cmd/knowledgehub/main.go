package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/knowledgehub/internal/app"
	"github.com/five82/knowledgehub/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "knowledgehub: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "knowledgehub",
		Short:         "Read the KnowledgeHub blog and run its daily generation trigger",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "blog API base URL (overrides config)")

	root.AddCommand(
		&cobra.Command{
			Use:   "read",
			Short: "Open the reader TUI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Run(cmd.Context(), opts)
			},
		},
		newTriggerCmd(&opts),
		newGenerateCmd(&opts),
		&cobra.Command{
			Use:   "list",
			Short: "List published blogs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				opts.Out = cmd.OutOrStdout()
				return app.List(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print one article as plain text",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				opts.Out = cmd.OutOrStdout()
				return app.Show(cmd.Context(), opts, args[0])
			},
		},
		&cobra.Command{
			Use:   "next",
			Short: "Print the next scheduled trigger time",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				opts.Out = cmd.OutOrStdout()
				return app.Next(opts)
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check the blog API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				opts.Out = cmd.OutOrStdout()
				return app.Health(cmd.Context(), opts)
			},
		},
	)
	return root
}

func newTriggerCmd(opts *app.Options) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Run the scheduled generation trigger without the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Interval = interval
			return app.RunTrigger(cmd.Context(), *opts)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "check interval (overrides trigger.interval)")
	return cmd
}

func newGenerateCmd(opts *app.Options) *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Request a new blog now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("KNOWLEDGEHUB_ADMIN_SECRET")
			}
			opts.Out = cmd.OutOrStdout()
			return app.Generate(cmd.Context(), *opts, secret)
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "admin secret (defaults to $KNOWLEDGEHUB_ADMIN_SECRET)")
	return cmd
}

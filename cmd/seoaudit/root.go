package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Bahjat/seo-insight-tool/internal/platform/logger"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "seoaudit",
		Short:        "Audit a web page for on-page SEO, social previews and crawl discovery",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level written to stderr (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(newAnalyzeCommand(func() *analyzeDeps {
		return &analyzeDeps{
			logger: logger.New(os.Stderr, logLevel),
			out:    os.Stdout,
		}
	}))

	return root
}

package main

import (
	"context"
	"os"

	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "scriblyn",
		Short:         "Scriblyn API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCommand()
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

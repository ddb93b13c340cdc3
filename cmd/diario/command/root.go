package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/glucodiario/diario"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var logLevel string

// Run executes a given function with dependencies supplied by the diario DI
// graph. `f` must return an error or nothing.
// `opts` can be used to supply additional arguments that are not provided by
// the application itself.
func Run(f interface{}, opts ...fx.Option) error {
	opts = append(opts, diario.Dependencies()...)
	opts = append(opts, fx.NopLogger, fx.Invoke(f))

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}

var rootCmd = &cobra.Command{
	Use:   "diario",
	Short: "Admin tool for the glucose diary data store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level
		return os.Setenv("LOG_LEVEL", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/screens"
	"github.com/suteetoe/stockmobile/pkg/logger"
)

func main() {
	var a *app

	root := &cobra.Command{
		Use:           "stockmobile",
		Short:         "Inventory catalog client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp()
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), a.log.With(zap.String("command", cmd.CommandPath()))))
			return nil
		},
	}

	appRef := func() *app { return a }
	root.AddCommand(
		loginCmd(appRef),
		registerCmd(appRef),
		logoutCmd(appRef),
		productsCmd(appRef),
		imagesCmd(appRef),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := root.ExecuteContext(ctx)
	if a != nil {
		a.Close()
	}
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// printOutcome shows alerts and returns an error when the action failed
func printOutcome(cmd *cobra.Command, out screens.Outcome) error {
	for _, alert := range out.Alerts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", alert.Title, alert.Message)
	}
	if out.NavigateTo != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "-> %s\n", out.NavigateTo)
		return nil
	}
	if len(out.Alerts) == 0 {
		return nil
	}

	last := out.Alerts[len(out.Alerts)-1]
	if last.Title == "Success" || strings.HasSuffix(last.Title, "Successful") {
		return nil
	}
	return fmt.Errorf("%s", last.Message)
}

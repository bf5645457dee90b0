package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pv",
		Short:         "Pizza Voice (pv): take phone pizza orders through a spoken conversation",
		Long:          "pv drives a voice pizza order from the terminal: it opens an order for a phone number, submits transcript turns to the conversational parsing backend, tracks which pizzas still miss details, and shows the final priced summary.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newOrderCmd(app),
		newSummaryCmd(app),
		newSessionsCmd(app),
	)

	return rootCmd
}

package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "hex",
		Short: "Play Hex against a minimax engine",
		Long: heredoc.Doc(`
			hex plays the connection game Hex on a small board.

			Blue joins the left and right edges, Red joins the top and
			bottom edges. The engine searches with minimax, optionally
			with alpha-beta pruning.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.AddCommand(Play())
	root.AddCommand(BestMove())

	return root
}

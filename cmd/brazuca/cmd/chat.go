package cmd

import (
	"errors"
	"fmt"

	"github.com/brazucaphish/console/pkg/chat"
	"github.com/brazucaphish/console/pkg/termui"
	"github.com/spf13/cobra"
)

func newChatCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the security assistant",
		Long: `Without arguments chat opens an interactive session. With a message it asks
once and prints the reply.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			panel := chat.NewPanel(a.api, a.translator, a.logger)
			if len(args) == 0 {
				return termui.RunChat(cmd.Context(), panel, a.translator, a.lang)
			}

			state, err := panel.Submit(cmd.Context(), a.lang, args[0])
			switch {
			case errors.Is(err, chat.ErrEmptyMessage):
				return nil
			case err != nil:
				a.printer.Error(state.Error)
				return errReported
			}
			fmt.Fprintln(a.out, state.Log[len(state.Log)-1].Text)
			return nil
		},
	}
}

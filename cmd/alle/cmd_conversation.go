package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var conversationCmd = &cobra.Command{
	Use:   "conversation",
	Short: "Work with the models of a conversation",
}

var conversationModelsCmd = &cobra.Command{
	Use:   "models [session]",
	Short: "Show which models answer in a conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runConversationModels),
}

var conversationToggleCmd = &cobra.Command{
	Use:   "toggle-model <model-uid> [session]",
	Short: "Pause or resume a model in a conversation",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  withApp(runConversationToggle),
}

func init() {
	conversationCmd.AddCommand(conversationModelsCmd)
	conversationCmd.AddCommand(conversationToggleCmd)
}

// sessionArg picks the session argument, or the active conversation.
func sessionArg(a *app, args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	if id := a.stores.Conversation.ConversationID(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no active conversation; pass a session")
}

func runConversationModels(cmd *cobra.Command, args []string, a *app) error {
	session, err := sessionArg(a, args, 0)
	if err != nil {
		return err
	}
	models, err := a.api.ListConversationModels(cmd.Context(), session)
	if err != nil {
		return err
	}
	return a.out.print(models, func(w io.Writer) {
		fmt.Fprintln(w, "MODEL\tACTIVE")
		for _, m := range models {
			fmt.Fprintf(w, "%s\t%t\n", m.UID, m.Active)
		}
	})
}

func runConversationToggle(cmd *cobra.Command, args []string, a *app) error {
	uid := args[0]
	session, err := sessionArg(a, args, 1)
	if err != nil {
		return err
	}
	// the inactive list is per conversation
	a.modelStatus.Load(cmd.Context(), session)

	active, err := a.modelStatus.Toggle(cmd.Context(), session, uid)
	if err != nil {
		return err
	}
	state := "paused"
	if active {
		state = "resumed"
	}
	a.out.line("%s %s in %s", uid, state, session)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage conversation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations outside of projects",
	RunE:  withApp(runHistoryList),
}

var historyRenameCmd = &cobra.Command{
	Use:   "rename <session> <title>",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runHistoryRename),
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runHistoryDelete),
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRenameCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().StringP("type", "t", "chat", "Content type: chat, image, audio, video")
	historyListCmd.Flags().Bool("offline", false, "Show the saved history without contacting the platform")
}

func runHistoryList(cmd *cobra.Command, args []string, a *app) error {
	ct, err := contentTypeFlag(cmd)
	if err != nil {
		return err
	}
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		if err := a.history.Load(cmd.Context(), ct); err != nil {
			return fmt.Errorf("load history: %w", err)
		}
	}

	var list []domain.Conversation
	for _, c := range a.stores.History.List() {
		if c.Type == ct {
			list = append(list, c)
		}
	}
	return printConversations(a, list)
}

func printConversations(a *app, list []domain.Conversation) error {
	active := a.stores.Conversation.ConversationID()
	return a.out.print(list, func(w io.Writer) {
		fmt.Fprintln(w, "SESSION\tTYPE\tTITLE\tUPDATED\tACTIVE")
		for _, c := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				c.Session, c.Type, c.DisplayTitle(), c.UpdatedAt.Local().Format("2006-01-02 15:04"), mark(c.Session == active))
		}
	})
}

func runHistoryRename(cmd *cobra.Command, args []string, a *app) error {
	if err := a.locate(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := a.history.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	a.out.line("renamed %s", args[0])
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string, a *app) error {
	if err := a.locate(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := a.history.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	a.out.line("deleted %s", args[0])
	return nil
}

// locate makes sure session is known locally, refreshing history and
// projects from the platform when it is not.
func (a *app) locate(ctx context.Context, session string) error {
	if _, ok := a.stores.Locate(session); ok {
		return nil
	}
	for _, ct := range domain.ContentTypes {
		if !a.entitlement.Entitled(ct) {
			continue
		}
		if err := a.history.Load(ctx, ct); err != nil {
			return fmt.Errorf("load %s history: %w", ct, err)
		}
	}
	if _, ok := a.stores.Locate(session); ok {
		return nil
	}
	if err := a.projects.Load(ctx); err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	for _, p := range a.stores.Projects.List() {
		if err := a.projects.LoadConversations(ctx, p.UUID); err != nil {
			return fmt.Errorf("load project %s: %w", p.UUID, err)
		}
		if _, ok := a.stores.Locate(session); ok {
			return nil
		}
	}
	return fmt.Errorf("conversation %s not found", session)
}

package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat <prompt>",
	Short: "Start a conversation with the selected models",
	Long: `chat sends the first prompt of a new conversation to the models
selected for the content type (see: alle select).

Combine and compare stay switched on between runs until the platform
turns them off or you pass --combine=false / --compare=false.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runChat),
}

func init() {
	chatCmd.Flags().StringP("type", "t", "chat", "Content type: chat, image, audio, video")
	chatCmd.Flags().String("project", "", "Create the conversation inside this project")
	chatCmd.Flags().StringSlice("attach", nil, "Upload a local file with the prompt")
	chatCmd.Flags().StringSlice("file-uuid", nil, "Reference an already uploaded file")
	chatCmd.Flags().Bool("combine", false, "Combine the answers of all models")
	chatCmd.Flags().Bool("compare", false, "Compare the answers of all models")
	chatCmd.Flags().Bool("web-search", false, "Let models search the web")
}

func runChat(cmd *cobra.Command, args []string, a *app) error {
	ct, err := contentTypeFlag(cmd)
	if err != nil {
		return err
	}
	if !a.entitlement.Entitled(ct) {
		return fmt.Errorf("your %s plan does not include %s", a.entitlement, ct)
	}

	if cmd.Flags().Changed("combine") {
		v, _ := cmd.Flags().GetBool("combine")
		a.stores.Modes.SetCombined(v)
	}
	if cmd.Flags().Changed("compare") {
		v, _ := cmd.Flags().GetBool("compare")
		a.stores.Modes.SetCompare(v)
	}
	if cmd.Flags().Changed("web-search") {
		v, _ := cmd.Flags().GetBool("web-search")
		a.stores.Modes.SetWebSearch(v)
	}

	attachments, err := readAttachments(cmd)
	if err != nil {
		return err
	}
	projectID, _ := cmd.Flags().GetString("project")

	res, err := a.conversations.Submit(cmd.Context(), chat.Request{
		Prompt:      strings.Join(args, " "),
		Type:        ct,
		ProjectID:   projectID,
		Attachments: attachments,
	})
	if err != nil {
		if chat.IsType(err, chat.ErrTypeValidation) {
			return fmt.Errorf("%w (see: alle select --type %s)", err, ct)
		}
		return err
	}

	if res.Outcome != chat.OutcomeCreated {
		return fmt.Errorf("conversation not started: %s", res.Outcome)
	}
	a.out.line("session %s", res.Conversation.Session)
	return nil
}

func readAttachments(cmd *cobra.Command) ([]domain.Attachment, error) {
	paths, _ := cmd.Flags().GetStringSlice("attach")
	uuids, _ := cmd.Flags().GetStringSlice("file-uuid")

	out := make([]domain.Attachment, 0, len(paths)+len(uuids))
	for _, id := range uuids {
		out = append(out, domain.Attachment{UUID: id, Name: id})
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		out = append(out, domain.Attachment{
			Name:     filepath.Base(path),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Size:     int64(len(data)),
			Data:     data,
		})
	}
	return out, nil
}

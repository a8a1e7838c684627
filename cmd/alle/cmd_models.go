package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Browse the model catalog",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the models of a content type",
	RunE:  withApp(runModelsList),
}

var modelsFavoriteCmd = &cobra.Command{
	Use:   "favorite <model-uid>",
	Short: "Toggle a model's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runModelsFavorite),
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsFavoriteCmd)

	modelsListCmd.Flags().StringP("type", "t", "chat", "Content type: chat, image, audio, video")
	modelsListCmd.Flags().Bool("all", false, "Load every content type")
}

func contentTypeFlag(cmd *cobra.Command) (domain.ContentType, error) {
	raw, _ := cmd.Flags().GetString("type")
	return domain.ParseContentType(raw)
}

func runModelsList(cmd *cobra.Command, args []string, a *app) error {
	all, _ := cmd.Flags().GetBool("all")
	types := domain.ContentTypes
	if all {
		if err := a.catalog.LoadAll(cmd.Context()); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	} else {
		ct, err := contentTypeFlag(cmd)
		if err != nil {
			return err
		}
		if err := a.catalog.Load(cmd.Context(), ct); err != nil {
			return fmt.Errorf("load %s models: %w", ct, err)
		}
		types = []domain.ContentType{ct}
	}

	catalog := make(map[domain.ContentType][]domain.Model, len(types))
	for _, ct := range types {
		catalog[ct] = a.stores.Registry.Models(ct)
	}

	return a.out.print(catalog, func(w io.Writer) {
		fmt.Fprintln(w, "TYPE\tUID\tNAME\tPLAN\tCATEGORY\tSELECTED\tFAVORITE")
		for _, ct := range types {
			selected := a.stores.Selection.SelectedModels(ct)
			for _, m := range catalog[ct] {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					ct, m.UID, m.Name, m.Plan, m.Category,
					mark(contains(selected, m.UID)), mark(m.Favorite))
			}
		}
	})
}

func runModelsFavorite(cmd *cobra.Command, args []string, a *app) error {
	uid := args[0]
	if err := a.catalog.LoadAll(cmd.Context()); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	favorite, err := a.catalog.ToggleFavorite(cmd.Context(), uid)
	if err != nil {
		return err
	}
	if favorite {
		a.out.line("%s added to favorites", uid)
	} else {
		a.out.line("%s removed from favorites", uid)
	}
	return nil
}

func mark(v bool) string {
	if v {
		return "*"
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ", ")
}

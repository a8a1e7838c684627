package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  withApp(runProjectsList),
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runProjectsCreate),
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-uuid>",
	Short: "Show the conversations and files of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runProjectsShow),
}

var projectsMoveCmd = &cobra.Command{
	Use:   "move <session> [project-uuid]",
	Short: "Move a conversation into a project, or out of it without a project",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  withApp(runProjectsMove),
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsMoveCmd)

	projectsCreateCmd.Flags().String("description", "", "Project description")
	projectsCreateCmd.Flags().String("color", "", "Project color")
	projectsCreateCmd.Flags().String("instructions", "", "Instructions applied to every conversation")
}

func runProjectsList(cmd *cobra.Command, args []string, a *app) error {
	if err := a.projects.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	list := a.stores.Projects.List()
	return a.out.print(list, func(w io.Writer) {
		fmt.Fprintln(w, "UUID\tNAME\tDESCRIPTION")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.UUID, p.Name, p.Description)
		}
	})
}

func runProjectsCreate(cmd *cobra.Command, args []string, a *app) error {
	description, _ := cmd.Flags().GetString("description")
	color, _ := cmd.Flags().GetString("color")
	instructions, _ := cmd.Flags().GetString("instructions")

	p, err := a.projects.Create(cmd.Context(), domain.Project{
		Name:         args[0],
		Description:  description,
		Color:        color,
		Instructions: instructions,
	})
	if err != nil {
		return err
	}
	a.out.line("created project %s (%s)", p.Name, p.UUID)
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id := args[0]
	if err := a.projects.Load(ctx); err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	if err := a.projects.LoadConversations(ctx, id); err != nil {
		return err
	}
	if err := a.projects.LoadFiles(ctx, id); err != nil {
		return err
	}
	p, _ := a.stores.Projects.Get(id)

	return a.out.print(p, func(w io.Writer) {
		fmt.Fprintf(w, "PROJECT\t%s\t%s\n", p.UUID, p.Name)
		for _, c := range p.Histories {
			fmt.Fprintf(w, "CONVERSATION\t%s\t%s\n", c.Session, c.DisplayTitle())
		}
		for _, f := range p.Files {
			fmt.Fprintf(w, "FILE\t%s\t%s\n", f.UUID, f.Name)
		}
	})
}

func runProjectsMove(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	session := args[0]
	target := ""
	if len(args) == 2 {
		target = args[1]
	}
	if err := a.locate(ctx, session); err != nil {
		return err
	}
	if target != "" {
		if _, ok := a.stores.Projects.Get(target); !ok {
			if err := a.projects.Load(ctx); err != nil {
				return fmt.Errorf("load projects: %w", err)
			}
		}
	}
	if err := a.projects.Move(ctx, session, target); err != nil {
		return err
	}
	if target == "" {
		a.out.line("moved %s to history", session)
	} else {
		a.out.line("moved %s to project %s", session, target)
	}
	return nil
}

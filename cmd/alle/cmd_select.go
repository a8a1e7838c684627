package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/selection"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

var selectCmd = &cobra.Command{
	Use:   "select [model-uid...]",
	Short: "Choose the models new conversations are sent to",
	Long: `select replaces the confirmed selection of a content type with the
given models, within the limits of your plan. Without arguments it shows
the current selection.

Audio confirms a single model; when several are given the last one wins.`,
	RunE: withApp(runSelect),
}

func init() {
	selectCmd.Flags().StringP("type", "t", "chat", "Content type: chat, image, audio, video")
}

func runSelect(cmd *cobra.Command, args []string, a *app) error {
	ct, err := contentTypeFlag(cmd)
	if err != nil {
		return err
	}
	if !a.entitlement.Entitled(ct) {
		return fmt.Errorf("your %s plan does not include %s", a.entitlement, ct)
	}
	if err := a.catalog.Load(cmd.Context(), ct); err != nil {
		return fmt.Errorf("load %s models: %w", ct, err)
	}

	sel := selection.NewSelector(a.entitlement, a.stores.Registry, a.stores.Selection)
	if len(args) > 0 {
		if err := applySelection(sel, a.stores.Registry, ct, args); err != nil {
			return err
		}
	}

	confirmed := a.stores.Selection.SelectedModels(ct)
	type row struct {
		Type     domain.ContentType `yaml:"type"`
		Plan     domain.PlanTier    `yaml:"effective_plan"`
		Selected []string           `yaml:"selected"`
	}
	view := row{Type: ct, Plan: a.entitlement.EffectivePlan(ct), Selected: confirmed}
	return a.out.print(view, func(w io.Writer) {
		fmt.Fprintf(w, "TYPE\t%s\n", view.Type)
		fmt.Fprintf(w, "PLAN\t%s\n", view.Plan)
		fmt.Fprintf(w, "SELECTED\t%s\n", joinOrDash(view.Selected))
	})
}

// applySelection edits the pending selection until it holds exactly uids
// and saves it. Any rejection cancels the edit.
func applySelection(sel *selection.Selector, registry *store.Registry, ct domain.ContentType, uids []string) error {
	sel.Open(ct)
	defer sel.Cancel()

	if ct == domain.ContentAudio {
		// one audio model is confirmed at a time
		uids = uids[len(uids)-1:]
		if m, _, ok := registry.Find(uids[0]); ok && m.Category.Valid() {
			if err := sel.SwitchAudioCategory(m.Category); err != nil {
				return err
			}
		}
	}

	for _, m := range sel.Pending() {
		if !contains(uids, m.UID) {
			if err := sel.Toggle(m.UID); err != nil {
				return explain(err)
			}
		}
	}
	for _, uid := range uids {
		if pendingHas(sel, uid) {
			continue
		}
		if err := sel.Toggle(uid); err != nil {
			return explain(err)
		}
	}
	return explain(sel.Save())
}

func pendingHas(sel *selection.Selector, uid string) bool {
	for _, m := range sel.Pending() {
		if m.UID == uid {
			return true
		}
	}
	return false
}

func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selection.ErrUnknownModel):
		return fmt.Errorf("%w (see: alle models list)", err)
	case selection.IsKind(err, selection.KindTier), selection.IsKind(err, selection.KindCount):
		return fmt.Errorf("selection rejected: %w", err)
	}
	return err
}

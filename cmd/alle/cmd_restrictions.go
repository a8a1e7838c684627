package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

var restrictionsCmd = &cobra.Command{
	Use:   "restrictions",
	Short: "Show modes the platform has temporarily disabled",
	RunE:  withApp(runRestrictions),
}

func runRestrictions(cmd *cobra.Command, args []string, a *app) error {
	list := a.stores.Restrictions.All()
	if len(list) == 0 && !a.out.yaml {
		a.out.line("no active restrictions")
		return nil
	}
	now := a.stores.Restrictions.Now()
	return a.out.print(list, func(w io.Writer) {
		fmt.Fprintln(w, "MODE\tUNTIL\tREMAINING\tMESSAGE")
		for _, r := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Mode, r.ComebackTime.Local().Format(time.Kitchen),
				r.Remaining(now).Round(time.Second), r.Message)
		}
	})
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"sitebudget/internal/cli/formatter"
	"sitebudget/internal/money"
	"sitebudget/internal/remote"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect submitted projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectCheckNameCmd(app),
	)

	return cmd
}

func newProjectCheckNameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-name NAME",
		Short: "Check a project name against the remote store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Names == nil {
				return fmt.Errorf("no remote endpoint configured (set SITEBUDGET_REMOTE)")
			}

			done := make(chan remote.NameCheckResult, 1)
			app.Names.Check(context.Background(), args[0], func(r remote.NameCheckResult) {
				done <- r
			})

			select {
			case r := <-done:
				if r.Unique {
					fmt.Println(formatter.StyleGreen.Render("Available: ") + r.Name)
				} else {
					fmt.Println(formatter.StyleYellow.Render("Already taken: ") + r.Name)
				}
				return nil
			case <-time.After(15 * time.Second):
				return fmt.Errorf("name check timed out")
			}
		},
	}
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List submitted projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No submitted projects.")
				return nil
			}

			headers := []string{"ID", "Name", "Client", "Total Budget", "Submitted"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				budget := p.TotalBudget
				if v, err := decimal.NewFromString(p.TotalBudget); err == nil {
					budget = money.FormatGrouped(v)
				}
				rows = append(rows, []string{
					p.ID,
					p.Name,
					p.Client,
					budget,
					p.SubmittedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a submitted project's budget tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := app.Projects.LoadForEditing(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(pr.ProjectName))
			fmt.Printf("  Client:       %s\n", pr.Client)
			fmt.Printf("  Location:     %s\n", pr.Location)
			fmt.Printf("  Currency:     %s\n", pr.Currency)
			fmt.Printf("  Total budget: %s\n", formatter.Bold(money.FormatGrouped(pr.TotalBudget)))
			fmt.Println()

			for _, phase := range pr.Phases {
				fmt.Printf("%s %s  %s\n",
					formatter.Header(fmt.Sprintf("Phase %d:", phase.PhaseNumber)),
					formatter.Bold(phase.PhaseName),
					formatter.Dim(money.FormatGrouped(phase.Budget)))
				for _, dept := range phase.Departments {
					fmt.Printf("  %-24s %s\n", dept.Name, money.FormatGrouped(dept.Amount))
				}
			}
			return nil
		},
	}
}

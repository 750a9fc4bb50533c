package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitebudget/internal/cli/formatter"
	"sitebudget/internal/money"
)

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [FILE]",
		Short: "Validate and submit a draft",
		Long:  "Submits the draft in FILE (a saved snapshot), or the locally saved draft when no file is given. A failed remote write aborts the whole submission; run submit again to retry.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := loadDraftProject(app, args)
			if err != nil {
				return err
			}

			result, err := app.Submit.Submit(context.Background(), pr)
			if err != nil {
				return err
			}
			if result.Invalid != nil {
				fmt.Println(formatter.StyleRed.Render("Not submitted: ") + describeFieldRef(pr, result.Invalid))
				os.Exit(1)
			}

			fmt.Println(formatter.StyleGreen.Render("Submitted ") + formatter.Bold(pr.ProjectName))
			fmt.Printf("  ID:           %s\n", result.ProjectID)
			fmt.Printf("  Total budget: %s\n", money.FormatGrouped(pr.TotalBudget))
			fmt.Printf("  Submitted at: %s\n", result.SubmittedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sitebudget/internal/cli/formatter"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage saved drafts",
	}

	cmd.AddCommand(
		newDraftListCmd(app),
		newDraftDeleteCmd(app),
	)

	return cmd
}

func newDraftListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafts on the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := app.Drafts.ListRemote(context.Background())
			if err != nil {
				return err
			}

			if len(drafts) == 0 {
				fmt.Println("No drafts found.")
				return nil
			}

			headers := []string{"ID", "Name", "Saved"}
			rows := make([][]string, 0, len(drafts))
			for _, d := range drafts {
				saved := ""
				if !d.SavedAt.IsZero() {
					saved = d.SavedAt.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{d.ID, d.Name, saved})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newDraftDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a draft from the remote store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes && app.IsInteractive != nil && app.IsInteractive() {
				if !confirm(fmt.Sprintf("Delete draft %s?", id)) {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Drafts.DeleteRemote(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted draft %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

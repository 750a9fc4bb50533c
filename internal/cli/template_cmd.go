package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sitebudget/internal/cli/formatter"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse project templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}

			headers := []string{"#", "Name", "Business Type", "Version"}
			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{
					fmt.Sprintf("%d", t.NumericID),
					t.Name,
					t.BusinessType,
					t.Version,
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Templates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Template"))
			fmt.Printf("  Name:          %s\n", formatter.Bold(s.Name))
			fmt.Printf("  Business type: %s\n", s.BusinessType)
			fmt.Printf("  Version:       %s\n", s.Version)
			if s.Description != "" {
				fmt.Printf("  Description:   %s\n", s.Description)
			}
			fmt.Println()

			headers := []string{"Phase", "Offset (days)", "Duration (days)", "Departments"}
			rows := make([][]string, 0, len(s.Phases))
			for _, pc := range s.Phases {
				names := ""
				for i, dc := range pc.Departments {
					if i > 0 {
						names += ", "
					}
					names += dc.Name
				}
				rows = append(rows, []string{
					pc.Name,
					fmt.Sprintf("%d", pc.StartOffsetDays),
					fmt.Sprintf("%d", pc.DurationDays),
					names,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

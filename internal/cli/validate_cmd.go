package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitebudget/internal/cli/formatter"
	"sitebudget/internal/domain"
	"sitebudget/internal/draft"
	"sitebudget/internal/money"
	"sitebudget/internal/validate"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate a draft without submitting it",
		Long:  "Validates the draft in FILE (a saved snapshot), or the locally saved draft when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := loadDraftProject(app, args)
			if err != nil {
				return err
			}

			if ref := validate.FirstInvalidField(pr); ref != nil {
				fmt.Println(formatter.StyleRed.Render("Invalid: ") + describeFieldRef(pr, ref))
				os.Exit(1)
			}
			fmt.Println(formatter.StyleGreen.Render("Valid.") +
				" Total budget: " + formatter.Bold(money.FormatGrouped(pr.TotalBudget)))
			return nil
		},
	}
}

// loadDraftProject reads the tree to operate on: an explicit snapshot file
// when given, otherwise the locally saved draft.
func loadDraftProject(app *App, args []string) (*domain.Project, error) {
	if len(args) == 1 {
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		snap, err := draft.Decode(blob)
		if err != nil {
			return nil, err
		}
		return snap.Project, nil
	}

	restored, err := app.Drafts.Restore(context.Background())
	if err != nil {
		return nil, err
	}
	if !restored {
		return nil, fmt.Errorf("no saved draft; pass a snapshot file")
	}
	return app.Drafts.Reconciler().Project(), nil
}

// describeFieldRef turns a field reference into a human-readable location,
// naming the entity when the tree still holds it.
func describeFieldRef(pr *domain.Project, ref *validate.FieldRef) string {
	switch ref.Entity {
	case validate.EntityProject:
		return fmt.Sprintf("project field %q", ref.Field)
	case validate.EntityPhase:
		if p := pr.Phase(ref.EntityID); p != nil {
			return fmt.Sprintf("phase %d (%s), field %q", p.PhaseNumber, displayName(p.PhaseName), ref.Field)
		}
	case validate.EntityDepartment:
		for _, p := range pr.Phases {
			for _, d := range p.Departments {
				if d.ID == ref.EntityID {
					return fmt.Sprintf("department %s in phase %d, field %q", displayName(d.Name), p.PhaseNumber, ref.Field)
				}
			}
		}
	case validate.EntityLineItem:
		for _, p := range pr.Phases {
			for _, d := range p.Departments {
				for i, li := range d.LineItems {
					if li.ID == ref.EntityID {
						return fmt.Sprintf("line item %d of department %s, field %q", i+1, displayName(d.Name), ref.Field)
					}
				}
			}
		}
	}
	return fmt.Sprintf("%s %s, field %q", ref.Entity, ref.EntityID, ref.Field)
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

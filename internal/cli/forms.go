package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/renderers/tui"
	"github.com/goliatone/go-fileview/pkg/validation"
)

// ErrInvalidForm is returned by validate when the submitted values fail the
// form's constraints.
var ErrInvalidForm = errors.New("validate: form is invalid")

func (a *app) catalog(ctx context.Context) (*forms.Catalog, error) {
	var options []forms.Option
	if path := a.config.GetString(KeyOpenAPI); path != "" {
		a.log.WithField("document", path).Debug("loading forms from document")
		options = append(options, forms.WithDocument(path))
	}
	return forms.Load(ctx, options...)
}

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the request forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, id := range catalog.IDs() {
				form, err := catalog.Form(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, form.Method, form.Endpoint)
			}
			return w.Flush()
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <operation> [name=value ...]",
		Short: "Check values against a form's constraints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			form, err := catalog.Form(args[0])
			if err != nil {
				return err
			}
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			if a.config.GetBool(KeyInteractive) {
				a.log.WithField("form", form.OperationID).Debug("prompting for missing values")
				driver := tui.NewSurveyDriver(cmd.OutOrStdout())
				values, err = tui.FillForm(cmd.Context(), driver, form, values)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			reporter := validation.ReportFunc(func(issues []validation.Issue) {
				for _, issue := range issues {
					fmt.Fprintf(out, "%s: %s\n", issue.Field, issue.Message)
				}
			})
			check := validation.NewConstraintForm(form, values,
				validation.WithReporter(reporter),
				validation.WithReportAll(),
			)
			if !validation.ValidateForm(check) {
				return ErrInvalidForm
			}
			fmt.Fprintln(out, "valid")
			return nil
		},
	}

	cmd.Flags().Bool("interactive", false, "prompt for values that are missing or invalid")
	_ = a.config.BindPFlag(KeyInteractive, cmd.Flags().Lookup("interactive"))
	return cmd
}

func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("validate: expected name=value, got %q", arg)
		}
		values[name] = value
	}
	return values, nil
}

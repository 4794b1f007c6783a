package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/icons"
	"github.com/goliatone/go-fileview/pkg/render"
	"github.com/goliatone/go-fileview/pkg/renderers/listing"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		input     string
		dir       string
		title     string
		formIDs   []string
		csrfToken string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a directory listing page from JSON file records",
		Long: `Reads a JSON array of file records, as returned by the directory
listing endpoint, from --input or stdin and writes the HTML page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := readRecords(cmd, input)
			if err != nil {
				return err
			}
			renderer, err := a.listingRenderer()
			if err != nil {
				return err
			}

			options := listing.ListingOptions{Path: dir, Title: title}
			if len(formIDs) > 0 {
				catalog, err := a.catalog(cmd.Context())
				if err != nil {
					return err
				}
				renderOptions := render.RenderOptions{
					Values: map[string]string{"parent": dir, "path": dir},
				}
				if csrfToken != "" {
					renderOptions.Hidden = render.MergeHiddenFields(nil, render.CSRFToken("_csrf", csrfToken))
				}
				for _, id := range formIDs {
					form, err := catalog.Form(id)
					if err != nil {
						return err
					}
					out, err := renderer.Render(cmd.Context(), form, renderOptions)
					if err != nil {
						return err
					}
					options.Forms = append(options.Forms, out)
				}
			}

			a.log.WithField("records", len(records)).Debug("rendering listing")
			out, err := renderer.RenderListing(cmd.Context(), records, options)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with the records (stdin when empty)")
	cmd.Flags().StringVar(&dir, "path", "/", "directory being listed")
	cmd.Flags().StringVar(&title, "title", "", "page title (default \"Index of <path>\")")
	cmd.Flags().StringSliceVar(&formIDs, "form", nil, "form operation ids to append below the listing")
	cmd.Flags().StringVar(&csrfToken, "csrf-token", "", "CSRF token added to every form as _csrf")
	return cmd
}

func readRecords(cmd *cobra.Command, input string) ([]files.File, error) {
	var reader io.Reader = cmd.InOrStdin()
	if input != "" && input != "-" {
		file, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("render: open input: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var records []files.File
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return nil, fmt.Errorf("render: decode records: %w", err)
	}
	return records, nil
}

func (a *app) listingRenderer() (*listing.Renderer, error) {
	var options []listing.Option
	if dir := a.config.GetString(KeyTemplates); dir != "" {
		a.log.WithField("dir", dir).Debug("using template overrides")
		options = append(options, listing.WithTemplatesDir(dir))
	}
	if path := a.config.GetString(KeyIcons); path != "" {
		custom, err := icons.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if missing := custom.Missing(); len(missing) > 0 {
			a.log.WithField("types", missing).Warn("icon set has no icon for some file types; using defaults")
		}
		options = append(options, listing.WithIcons(icons.Default().Merge(custom)))
	}
	return listing.New(options...)
}

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/termui"
	"github.com/spf13/cobra"
)

func newDashboardCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the stats cards and the campaign table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.dashboard()
			if err != nil {
				return err
			}
			ov, err := view.Refresh(cmd.Context(), a.lang)
			if err != nil {
				a.printer.Error(view.ShowError(a.lang, err))
				return errReported
			}
			a.printer.Overview(ov)
			return nil
		},
	}
}

func newCampaignCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Create, inspect and export campaigns",
	}
	cmd.AddCommand(newCampaignNewCmd(o), newCampaignShowCmd(o), newCampaignExportCmd(o))
	return cmd
}

func newCampaignNewCmd(o *rootOptions) *cobra.Command {
	var (
		in         dashboard.NewCampaignInput
		emails     []string
		emailsFile string
		copyLinks  bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate tracking links for a new campaign",
		Long: `Generate tracking links for a new campaign. Target emails come from --emails
and from --emails-file ("-" reads standard input), separated by any whitespace.
At most 100 emails are sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			text := strings.Join(emails, "\n")
			if emailsFile != "" {
				data, err := readInput(cmd, emailsFile)
				if err != nil {
					return err
				}
				text += "\n" + string(data)
			}
			in.Emails = text

			view, err := a.dashboard()
			if err != nil {
				return err
			}
			out, err := view.NewCampaign(cmd.Context(), a.lang, in)

			if out.Links != nil {
				a.printer.Links(out.Links)
				if copyLinks {
					if cerr := termui.CopyLinks(out.Links); cerr != nil {
						a.printer.Error(cerr.Error())
					} else {
						a.printer.Success(a.t("dashboard.links.copied"))
					}
				}
			}
			if out.Alert != "" {
				a.printer.Error(out.Alert)
			}
			if err != nil {
				return errReported
			}
			if out.Overview != nil {
				a.printer.Overview(*out.Overview)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Name, "name", "", "Campaign name")
	flags.StringVar(&in.Description, "description", "", "Campaign description")
	flags.StringVar(&in.TargetURL, "target-url", "", "Page the tracking links lead to")
	flags.StringSliceVar(&emails, "emails", nil, "Target emails, comma separated")
	flags.StringVar(&emailsFile, "emails-file", "", "File with target emails, one per line")
	flags.BoolVar(&copyLinks, "copy", false, "Copy all links to the clipboard")
	return cmd
}

func newCampaignShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the summary and click timeline of a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.dashboard()
			if err != nil {
				return err
			}
			detail, err := view.ShowCampaign(cmd.Context(), a.lang, apiclient.ID(args[0]))
			if err != nil {
				a.printer.Error(view.ShowError(a.lang, err))
				return errReported
			}
			return a.printer.Detail(detail)
		},
	}
}

func newCampaignExportCmd(o *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Download the clicks of a campaign as CSV",
		Long: `Download the clicks of a campaign as CSV. Without --output the file is saved
under the name suggested by the backend; "-o -" writes to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.dashboard()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			name, err := view.Export(cmd.Context(), apiclient.ID(args[0]), &buf)
			if err != nil {
				a.printer.Error(view.ShowError(a.lang, err))
				return errReported
			}

			switch output {
			case "-":
				_, err := buf.WriteTo(a.out)
				return err
			case "":
				output = filepath.Base(name)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.printer.Success(a.translator.Tf(a.lang, "cli.export.saved", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read emails file: %w", err)
	}
	return data, nil
}

package cmd

import (
	"github.com/brazucaphish/console/pkg/forms"
	"github.com/brazucaphish/console/pkg/termui"
	"github.com/spf13/cobra"
)

func newRegisterCmd(o *rootOptions) *cobra.Command {
	var in forms.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the backend. Missing values are asked for interactively;
with --password the confirmation defaults to the same value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if termui.NeedsPrompt(in.GivenName, in.Email, in.Password) {
				values, err := termui.Prompt(cmd.Context(), a.t("register.heading"), []termui.Field{
					{Label: a.t("register.given_name"), Value: in.GivenName},
					{Label: a.t("register.email"), Value: in.Email},
					{Label: a.t("register.password"), Value: in.Password, Secret: true},
					{Label: a.t("register.confirm_password"), Value: in.ConfirmPassword, Secret: true},
				})
				if err != nil {
					return err
				}
				in.GivenName, in.Email, in.Password, in.ConfirmPassword = values[0], values[1], values[2], values[3]
			} else if in.ConfirmPassword == "" {
				in.ConfirmPassword = in.Password
			}

			return a.report(a.forms().Register(cmd.Context(), a.lang, in))
		},
	}

	cmd.Flags().StringVar(&in.GivenName, "name", "", "Your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "Password confirmation")
	return cmd
}

func newConfirmCmd(o *rootOptions) *cobra.Command {
	var in forms.ConfirmInput

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm an account with the emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if termui.NeedsPrompt(in.Email, in.ConfirmationCode) {
				values, err := termui.Prompt(cmd.Context(), a.t("confirm.heading"), []termui.Field{
					{Label: a.t("confirm.email"), Value: in.Email},
					{Label: a.t("confirm.code"), Value: in.ConfirmationCode},
				})
				if err != nil {
					return err
				}
				in.Email, in.ConfirmationCode = values[0], values[1]
			}

			return a.report(a.forms().Confirm(cmd.Context(), a.lang, in))
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.ConfirmationCode, "code", "", "Confirmation code")
	return cmd
}

func newLoginCmd(o *rootOptions) *cobra.Command {
	var in forms.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if termui.NeedsPrompt(in.Email, in.Password) {
				values, err := termui.Prompt(cmd.Context(), a.t("login.heading"), []termui.Field{
					{Label: a.t("login.email"), Value: in.Email},
					{Label: a.t("login.password"), Value: in.Password, Secret: true},
				})
				if err != nil {
					return err
				}
				in.Email, in.Password = values[0], values[1]
			}

			return a.report(a.forms().Login(cmd.Context(), a.lang, in))
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentledger/internal/auth"
)

func SignUpCmd(env *Env) *cobra.Command {
	var in auth.SignUpInput
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := env.Provider()
			if err != nil {
				return err
			}
			user, err := provider.SignUp(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run `rentledger login` to sign in.\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 8 characters)")
	cmd.Flags().StringVar(&in.Country, "country", "", "Country of residence")
	cmd.Flags().BoolVar(&in.AcceptTerms, "accept-terms", false, "Accept the terms of service")
	cmd.Flags().BoolVar(&in.AcceptPrivacy, "accept-privacy", false, "Accept the privacy policy")

	return cmd
}

func LoginCmd(env *Env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := env.Provider()
			if err != nil {
				return err
			}
			_, user, err := provider.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func LogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func WhoAmICmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := env.Provider()
			if err != nil {
				return err
			}
			user, err := provider.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if user == nil {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}

			fmt.Fprintf(out, "%s (%s)\n", user.Email, user.ID)
			profile, err := provider.Profile(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if profile != nil {
				fmt.Fprintf(out, "Country: %s  Currency: %s %s\n", profile.Country, profile.CurrencyCode, profile.CurrencySymbol)
			}
			return nil
		},
	}
}

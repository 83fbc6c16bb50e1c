// Package commands holds the rentledger command line.
package commands

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(env *Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rentledger",
		Short:         "Rent, utility and ledger bookkeeping for landlords",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		MigrateCmd(env),
		SignUpCmd(env),
		LoginCmd(env),
		LogoutCmd(env),
		WhoAmICmd(env),
		TenantCmd(env),
		RentCmd(env),
		UtilityCmd(env),
		PaymentCmd(env),
		LedgerCmd(env),
		ServeCmd(env),
	)

	return rootCmd
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rentledger/internal/billing"
	"rentledger/internal/models"
)

func RentCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rent",
		Short: "Generate and list rent charges",
	}
	cmd.AddCommand(RentGenerateCmd(env), RentListCmd(env))
	return cmd
}

func RentGenerateCmd(env *Env) *cobra.Command {
	var periodFlag string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Charge every active tenant for a month",
		Long:  "Creates one rent charge per active tenant for the month. Running it again for the same month updates the amounts instead of adding charges.",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			period := engine.CurrentPeriod()
			if periodFlag != "" {
				if period, err = billing.ParsePeriod(periodFlag); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			n, err := engine.GenerateRentForPeriod(cmd.Context(), period)
			var nf *billing.NotFoundError
			if errors.As(err, &nf) && nf.Resource == "tenants" {
				fmt.Fprintln(out, "No tenants found.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Generated %d rent charge(s) for %s\n", n, period)
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Month to charge (YYYY-MM), defaults to the current month")

	return cmd
}

func RentListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rent charges by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			rows, err := engine.ListRentCharges(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No rent charges found.")
				return nil
			}
			symbol := env.currencySymbol(cmd.Context())
			fmt.Fprintf(out, "%-7s  %-24s  %-10s  %14s\n", "Month", "Tenant", "Due", "Amount")
			for _, r := range rows {
				fmt.Fprintf(out, "%-7s  %-24s  %-10s  %14s\n",
					billing.PeriodOf(r.ChargeMonth), r.TenantName, day(r.DueDate), money(symbol, r.Amount))
			}
			return nil
		},
	}
}

func UtilityCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utility",
		Short: "Record and list utility charges",
	}
	cmd.AddCommand(UtilityAddCmd(env), UtilityListCmd(env))
	return cmd
}

func UtilityAddCmd(env *Env) *cobra.Command {
	var (
		tenantID    uint
		utilityType string
		date        string
		amount      string
		notes       string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a utility charge",
		RunE: func(cmd *cobra.Command, args []string) error {
			chargeDate, err := billing.ParseDate("charge_date", date)
			if err != nil {
				return err
			}
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			charge, err := engine.RecordUtilityCharge(cmd.Context(), billing.UtilityChargeInput{
				TenantID:    tenantID,
				UtilityType: models.UtilityType(utilityType),
				ChargeDate:  chargeDate,
				Amount:      amt,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s charge %d for tenant %d\n", charge.UtilityType, charge.ID, charge.TenantID)
			return nil
		},
	}

	cmd.Flags().UintVar(&tenantID, "tenant", 0, "Tenant ID")
	cmd.Flags().StringVar(&utilityType, "type", "", "Electricity, Water, Internet, Gas or Trash")
	cmd.Flags().StringVar(&date, "date", "", "Charge date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount charged")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func UtilityListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List utility charges, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			rows, err := engine.ListUtilityCharges(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No utility charges found.")
				return nil
			}
			symbol := env.currencySymbol(cmd.Context())
			fmt.Fprintf(out, "%-10s  %-24s  %-12s  %14s  %s\n", "Date", "Tenant", "Utility", "Amount", "Notes")
			for _, r := range rows {
				fmt.Fprintf(out, "%-10s  %-24s  %-12s  %14s  %s\n",
					day(r.ChargeDate), r.TenantName, r.UtilityType, money(symbol, r.Amount), r.Notes)
			}
			return nil
		},
	}
}

func PaymentCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record payments",
	}
	cmd.AddCommand(PaymentAddCmd(env))
	return cmd
}

func PaymentAddCmd(env *Env) *cobra.Command {
	var (
		tenantID uint
		date     string
		amount   string
		notes    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment received from a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentDate, err := billing.ParseDate("payment_date", date)
			if err != nil {
				return err
			}
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			entry, err := engine.RecordPayment(cmd.Context(), billing.PaymentInput{
				TenantID:    tenantID,
				Amount:      amt,
				PaymentDate: paymentDate,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded payment %d for tenant %d\n", entry.ID, entry.TenantID)
			return nil
		},
	}

	cmd.Flags().UintVar(&tenantID, "tenant", 0, "Tenant ID")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount received")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func LedgerCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show ledgers and balances",
	}
	cmd.AddCommand(LedgerShowCmd(env))
	return cmd
}

func LedgerShowCmd(env *Env) *cobra.Command {
	var tenantID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one tenant's statement, or every entry when --tenant is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			symbol := env.currencySymbol(cmd.Context())

			if tenantID == 0 {
				rows, err := engine.ListAllEntries(cmd.Context())
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "No ledger entries found.")
					return nil
				}
				fmt.Fprintf(out, "%-10s  %-24s  %-8s  %-12s  %14s  %s\n", "Date", "Tenant", "Type", "Category", "Amount", "Notes")
				for _, r := range rows {
					fmt.Fprintf(out, "%-10s  %-24s  %-8s  %-12s  %14s  %s\n",
						day(r.EntryDate), r.TenantName, r.EntryType, r.Category, money(symbol, r.Amount), r.Notes)
				}
				return nil
			}

			st, err := engine.ComputeStatement(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Statement for %s\n", st.TenantName)
			fmt.Fprintf(out, "%-10s  %-8s  %-12s  %14s  %14s  %s\n", "Date", "Type", "Category", "Amount", "Balance", "Notes")
			for _, l := range st.Lines {
				fmt.Fprintf(out, "%-10s  %-8s  %-12s  %14s  %14s  %s\n",
					day(l.Date), l.EntryType, l.Category, money(symbol, l.Amount), money(symbol, l.RunningBalance), l.Notes)
			}
			fmt.Fprintf(out, "Balance: %s\n", money(symbol, st.Balance))
			return nil
		},
	}

	cmd.Flags().UintVar(&tenantID, "tenant", 0, "Tenant ID")

	return cmd
}

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rentledger/internal/billing"
	"rentledger/internal/models"
)

func TenantCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}
	cmd.AddCommand(
		TenantListCmd(env),
		TenantAddCmd(env),
		TenantEditCmd(env),
		TenantDeleteCmd(env),
	)
	return cmd
}

type tenantFlags struct {
	name      string
	rent      string
	dueDay    int
	status    string
	movedOut  string
	left      string
	utilities []string
}

func (f *tenantFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Tenant name")
	fs.StringVar(&f.rent, "rent", "", "Monthly rent")
	fs.IntVar(&f.dueDay, "due-day", 0, "Day of month rent is due (1-31)")
	fs.StringVar(&f.status, "status", "", "Active, Moved Out or Left Without Notice")
	fs.StringVar(&f.movedOut, "moved-out", "", "Moved out date (YYYY-MM-DD)")
	fs.StringVar(&f.left, "left-date", "", "Left without notice date (YYYY-MM-DD)")
	fs.StringSliceVar(&f.utilities, "utilities", nil, "Subscribed utilities, comma separated")
}

// apply overwrites in with every flag the user set.
func (f *tenantFlags) apply(fs *pflag.FlagSet, in *billing.TenantInput) error {
	if fs.Changed("name") {
		in.TenantName = f.name
	}
	if fs.Changed("rent") {
		rent, err := parseAmount("monthly_rent", f.rent)
		if err != nil {
			return err
		}
		in.MonthlyRent = rent
	}
	if fs.Changed("due-day") {
		in.RentDueDay = f.dueDay
	}
	if fs.Changed("status") {
		in.Status = models.TenantStatus(f.status)
	}
	if fs.Changed("moved-out") {
		d, err := billing.ParseDate("moved_out_date", f.movedOut)
		if err != nil {
			return err
		}
		in.MovedOutDate = &d
	}
	if fs.Changed("left-date") {
		d, err := billing.ParseDate("left_without_notice_date", f.left)
		if err != nil {
			return err
		}
		in.LeftWithoutNoticeDate = &d
	}
	if fs.Changed("utilities") {
		in.Utilities = in.Utilities[:0]
		for _, u := range f.utilities {
			in.Utilities = append(in.Utilities, models.UtilityType(strings.TrimSpace(u)))
		}
	}
	return nil
}

func TenantListCmd(env *Env) *cobra.Command {
	var status, order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			tenants, err := engine.ListTenants(cmd.Context(), billing.TenantFilter{
				Status:  models.TenantStatus(status),
				OrderBy: billing.TenantOrder(order),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tenants) == 0 {
				fmt.Fprintln(out, "No tenants found.")
				return nil
			}
			symbol := env.currencySymbol(cmd.Context())
			fmt.Fprintf(out, "%-6s  %-24s  %14s  %-7s  %-20s  %-10s  %s\n",
				"ID", "Name", "Rent", "Due Day", "Status", "Since", "Utilities")
			for _, t := range tenants {
				since := "-"
				switch t.Status {
				case models.TenantStatusMovedOut:
					since = optionalDay(t.MovedOutDate)
				case models.TenantStatusLeftWithoutNotice:
					since = optionalDay(t.LeftWithoutNoticeDate)
				}
				fmt.Fprintf(out, "%-6d  %-24s  %14s  %-7d  %-20s  %-10s  %s\n",
					t.ID, t.TenantName, money(symbol, t.MonthlyRent), t.RentDueDay, t.Status, since,
					strings.Join(t.Utilities, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tenants with this status")
	cmd.Flags().StringVar(&order, "order", string(billing.OrderByCreated), "Sort by created or name")

	return cmd
}

func TenantAddCmd(env *Env) *cobra.Command {
	var flags tenantFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in billing.TenantInput
			if err := flags.apply(cmd.Flags(), &in); err != nil {
				return err
			}
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			tenant, err := engine.CreateTenant(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tenant %d: %s\n", tenant.ID, tenant.TenantName)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func TenantEditCmd(env *Env) *cobra.Command {
	var flags tenantFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a tenant's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			current, err := engine.GetTenant(cmd.Context(), id)
			if err != nil {
				return err
			}

			in := inputOf(current)
			if err := flags.apply(cmd.Flags(), &in); err != nil {
				return err
			}
			tenant, err := engine.UpdateTenant(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tenant %d: %s (%s)\n", tenant.ID, tenant.TenantName, tenant.Status)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func inputOf(t *models.Tenant) billing.TenantInput {
	in := billing.TenantInput{
		TenantName:            t.TenantName,
		MonthlyRent:           t.MonthlyRent,
		RentDueDay:            t.RentDueDay,
		Status:                t.Status,
		MovedOutDate:          copyDate(t.MovedOutDate),
		LeftWithoutNoticeDate: copyDate(t.LeftWithoutNoticeDate),
	}
	for _, u := range t.Utilities {
		in.Utilities = append(in.Utilities, models.UtilityType(u))
	}
	return in
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}

func TenantDeleteCmd(env *Env) *cobra.Command {
	var yes, cascade bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tenant permanently",
		Long:  "Deletes a tenant. Rent, utility and ledger history is kept unless --cascade is given. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete tenant %d without --yes", id)
			}
			engine, err := env.Engine()
			if err != nil {
				return err
			}
			if err := engine.DeleteTenant(cmd.Context(), id, billing.DeleteOptions{Cascade: cascade}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tenant %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete the tenant's charges and ledger entries")

	return cmd
}

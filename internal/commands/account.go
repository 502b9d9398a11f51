package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/banking"
	"github.com/tellerkit/teller/internal/ledger"
	"github.com/tellerkit/teller/internal/model"
)

// credentials are the --account/--pin pair every gated command takes.
type credentials struct {
	account string
	pin     string
}

func (c *credentials) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.account, "account", "", "account number (required)")
	cmd.Flags().StringVar(&c.pin, "pin", "", "4-digit PIN (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("pin")
}

func newCreateCommand(opts *globalOptions) *cobra.Command {
	var params banking.CreateParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			acct, err := rt.accounts.Create(params)
			if errors.Is(err, banking.ErrPersistence) {
				fmt.Fprintf(cmd.OutOrStdout(), "Account created locally but not saved. Account number: %s\n", acct.AccountNumber)
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Account created successfully.")
			fmt.Fprintf(out, "Account number: %s\n", acct.AccountNumber)
			fmt.Fprintln(out, "Please save this for future transactions.")
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&params.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&params.Phone, "phone", "", "10-digit phone number (required)")
	cmd.Flags().StringVar(&params.PIN, "pin", "", "4-digit PIN (required)")
	for _, name := range []string{"name", "email", "phone", "pin"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newDetailsCommand(opts *globalOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show account details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			acct, err := rt.accounts.Details(creds.account, creds.pin)
			if err != nil {
				return err
			}
			return printAccount(cmd, acct)
		},
	}
	creds.register(cmd)

	return cmd
}

func newUpdateCommand(opts *globalOptions) *cobra.Command {
	var creds credentials
	var params banking.UpdateParams

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name, email, phone or PIN",
		Long:  "Change account details. Flags left empty keep their current value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			res, err := rt.accounts.Update(creds.account, creds.pin, params)
			if err != nil && !errors.Is(err, banking.ErrPersistence) {
				return err
			}
			for _, w := range res.Ignored {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Details updated successfully.")
			return printAccount(cmd, res.Account)
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&params.Name, "new-name", "", "new full name")
	cmd.Flags().StringVar(&params.Email, "new-email", "", "new email address")
	cmd.Flags().StringVar(&params.Phone, "new-phone", "", "new 10-digit phone number")
	cmd.Flags().StringVar(&params.PIN, "new-pin", "", "new 4-digit PIN")

	return cmd
}

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	var creds credentials
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("deleting an account is permanent; pass --yes to confirm")
			}

			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			if err := rt.accounts.Delete(creds.account, creds.pin); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted successfully.")
			return nil
		},
	}
	creds.register(cmd)
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm permanent deletion")

	return cmd
}

func newStatusCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ledger location and account count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ledger: %s\n", rt.store.Path())
			fmt.Fprintf(out, "Total accounts: %d\n", rt.accounts.Count())
			fmt.Fprintf(out, "Limits: deposit %d, withdrawal %d per transaction\n",
				rt.cfg.Limits.MaxDeposit, rt.cfg.Limits.MaxWithdrawal)

			problems := ledger.Validate(rt.store.All())
			if len(problems) == 0 {
				fmt.Fprintln(out, "Integrity: ok")
				return nil
			}
			fmt.Fprintf(out, "Integrity: %d problem(s)\n", len(problems))
			for _, p := range problems {
				fmt.Fprintf(out, "  %v\n", p)
			}
			return nil
		},
	}
}

func printAccount(cmd *cobra.Command, acct model.Account) error {
	data, err := ledger.MarshalAccount(acct)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

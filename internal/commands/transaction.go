package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/banking"
)

func newDepositCommand(opts *globalOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit money into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := banking.ParseAmount(args[0])
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			balance, err := rt.accounts.Deposit(creds.account, creds.pin, amount)
			return reportBalance(cmd, "credited", amount, balance, err)
		},
	}
	creds.register(cmd)

	return cmd
}

func newWithdrawCommand(opts *globalOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := banking.ParseAmount(args[0])
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}

			balance, err := rt.accounts.Withdraw(creds.account, creds.pin, amount)
			return reportBalance(cmd, "debited", amount, balance, err)
		},
	}
	creds.register(cmd)

	return cmd
}

func reportBalance(cmd *cobra.Command, verb string, amount, balance int64, err error) error {
	out := cmd.OutOrStdout()
	switch {
	case errors.Is(err, banking.ErrPersistence):
		fmt.Fprintf(out, "%d %s locally but not saved. Balance: %d\n", amount, verb, balance)
		return err
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "%d %s successfully.\n", amount, verb)
	fmt.Fprintf(out, "Balance: %d\n", balance)
	return nil
}

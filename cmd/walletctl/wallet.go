package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "add cash to an account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
		&cli.StringFlag{Name: "amount", Usage: "positive decimal amount", Required: true},
	},
	Action: withEnv(depositAction),
}

func depositAction(c *cli.Context, e *env) error {
	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return err
	}

	balance, err := e.wallet.AddCash(c.Context, c.String("username"), amount)
	if err != nil {
		return err
	}

	fmt.Printf("new balance: %s\n", balance)
	return nil
}

var transfer = cli.Command{
	Name:  "transfer",
	Usage: "move money between two accounts",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "sender username", Required: true},
		&cli.StringFlag{Name: "to", Usage: "recipient username", Required: true},
		&cli.StringFlag{Name: "amount", Usage: "positive decimal amount", Required: true},
	},
	Action: withEnv(transferAction),
}

func transferAction(c *cli.Context, e *env) error {
	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return err
	}

	result, err := e.wallet.Transfer(c.Context, c.String("from"), c.String("to"), amount)
	if err != nil {
		return err
	}

	fmt.Printf("sender balance: %s\nrecipient balance: %s\n",
		result.SenderBalance, result.ReceiverBalance)
	return nil
}

var payBill = cli.Command{
	Name:  "paybill",
	Usage: "pay a bill from an account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
		&cli.StringFlag{Name: "category", Usage: "bill category, e.g. electricity", Required: true},
		&cli.StringFlag{Name: "amount", Usage: "positive decimal amount", Required: true},
	},
	Action: withEnv(payBillAction),
}

func payBillAction(c *cli.Context, e *env) error {
	amount, err := parseAmount(c.String("amount"))
	if err != nil {
		return err
	}

	balance, err := e.wallet.PayBill(c.Context, c.String("username"), c.String("category"), amount)
	if err != nil {
		return err
	}

	fmt.Printf("new balance: %s\n", balance)
	return nil
}

var history = cli.Command{
	Name:  "history",
	Usage: "print an account's transactions in ascending amount order",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
	},
	Action: withEnv(historyAction),
}

func historyAction(c *cli.Context, e *env) error {
	entries, err := e.wallet.History(c.Context, c.String("username"))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %-12s  %10s  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Kind, entry.Amount, entry.Counterparty)
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

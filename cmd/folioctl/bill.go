package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/pkg/utils"

	"github.com/spf13/cobra"
)

func newBillCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "bill <stay-bill.json | ->",
		Short: "Reconcile a stay bill and print its totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := readStayBill(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			if err := utils.ValidateStayBill(bill); err != nil {
				return err
			}

			totals := utils.CalculateBill(bill)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(totals)
			}

			printTotals(out, totals)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print totals as JSON")
	return cmd
}

func readStayBill(stdin io.Reader, path string) (domain.StayBill, error) {
	var bill domain.StayBill

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return bill, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&bill); err != nil {
		return bill, fmt.Errorf("decode stay bill: %w", err)
	}
	return bill, nil
}

func printTotals(w io.Writer, t domain.BillTotals) {
	rows := []struct {
		label string
		value string
	}{
		{"Room charges", t.RoomCharges.StringFixed(2)},
		{"Additional charges", t.AdditionalChargesTotal.StringFixed(2)},
		{"Discounts", t.TotalDiscounts.Neg().StringFixed(2)},
		{"Subtotal", t.Subtotal.StringFixed(2)},
		{"Tax", t.TaxAmount.StringFixed(2)},
		{"Total", t.TotalAmount.StringFixed(2)},
		{"Paid", t.TotalPaid.StringFixed(2)},
		{"Balance due", t.BalanceDue.StringFixed(2)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-20s %12s\n", row.label, row.value)
	}
}

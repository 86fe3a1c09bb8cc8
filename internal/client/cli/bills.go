package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/billed/internal/client/view"
)

// List fetches the bills and prints them most recent first. The listing is
// kept so that Show can refer to its rows.
func (a *App) List(ctx context.Context) error {
	bills, err := a.bills.GetBills(ctx)
	if err != nil {
		a.log.Error(ctx, "cannot load bills", "error", err)
		fmt.Fprintf(a.out, "Erreur: %v\n", err)
		return err
	}

	a.lastList = view.SortByDateDesc(bills)
	if len(a.lastList) == 0 {
		fmt.Fprintln(a.out, "No bills yet")
		return nil
	}
	return view.WriteTable(a.out, a.lastList, a.config.Locale)
}

// Show prints the receipt URL of row args[0] of the last listing.
func (a *App) Show(ctx context.Context, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastList) {
		err = fmt.Errorf("no bill #%s in the last listing", args[0])
		fmt.Fprintln(a.out, err)
		return err
	}

	b := a.lastList[n-1]
	if b.FileURL == nil || *b.FileURL == "" {
		fmt.Fprintf(a.out, "%s: no receipt\n", b.Name)
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s\n", b.Name, *b.FileURL)
	return nil
}

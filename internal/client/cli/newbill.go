package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/filex"
)

const maxReceiptSize = 10 << 20

// ExpenseTypes are the categories offered by the new-bill form.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

var errNotEmployee = errors.New("only employees can create bills")

// NewBill walks the user through the new-bill page: optional receipt
// upload, then the form, then submission.
func (a *App) NewBill(ctx context.Context) error {
	if a.session == nil || a.session.Type != models.UserTypeEmployee {
		fmt.Fprintln(a.out, errNotEmployee)
		return errNotEmployee
	}
	a.Navigate(services.RouteNewBill)

	if err := a.attachReceipt(ctx); err != nil {
		return err
	}

	form, err := a.readBillForm()
	if err != nil {
		return err
	}

	if err := a.newBill.HandleSubmit(ctx, form); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintln(a.out, err)
		} else {
			a.log.Error(ctx, "bill submission failed", "error", err)
			fmt.Fprintf(a.out, "Erreur: %v\n", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Bill submitted")
	return nil
}

func (a *App) attachReceipt(ctx context.Context) error {
	for {
		path, err := getSimpleText(a.reader, "Receipt file, png or jpeg (empty to skip)", a.out)
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}

		name, data, err := filex.ReadLimited(path, maxReceiptSize)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}

		err = a.newBill.HandleFileChange(ctx, models.FileInput{Files: []models.File{{Name: name, Content: data}}})
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintln(a.out, err)
			continue
		}
		if err != nil {
			return err
		}

		if att, ok := a.newBill.Attachment(); ok {
			fmt.Fprintf(a.out, "Attached %s\n", att.FileName)
		} else {
			fmt.Fprintln(a.out, "Receipt could not be uploaded, continuing without it")
		}
		return nil
	}
}

func (a *App) readBillForm() (services.NewBillForm, error) {
	var form services.NewBillForm

	fmt.Fprintln(a.out, "Expense types:")
	for i, t := range ExpenseTypes {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, t)
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Type (number or name)", &form.Type},
		{"Name", &form.Name},
		{"Date (YYYY-MM-DD)", &form.Date},
		{"Amount (TTC)", &form.Amount},
		{"VAT", &form.VAT},
		{"Pct (default 20)", &form.Pct},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return form, err
		}
		*f.dst = v
	}
	form.Type = expenseType(form.Type)

	c, err := getMultiline(a.reader, "Commentary", a.out)
	if err != nil {
		return form, err
	}
	form.Commentary = c
	return form, nil
}

// expenseType resolves a menu number to its category. Anything else is kept
// as typed.
func expenseType(v string) string {
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(ExpenseTypes) {
		return ExpenseTypes[n-1]
	}
	return v
}

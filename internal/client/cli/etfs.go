package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
)

func printEtfTable(etfs []*models.Etf) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTICKER\tASSET CLASS\tEXPENSE\tPUBLIC\tDESCRIPTION")
	for _, etf := range etfs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f%%\t%v\t%s\n",
			etf.ID, etf.Ticker, etf.AssetClass, etf.ExpenseRatio, etf.IsPublic, etf.Description)
	}
	w.Flush()
}

// ListEtfs shows the instruments visible to the caller. Search and sort are
// prompted so the command stays a single word in the REPL.
func (a *App) ListEtfs(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	etfs, err := a.api.ListEtfs(ctx, search, "", "")
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printEtfTable(etfs)
	return nil
}

func (a *App) ShowEtf(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Instrument id", os.Stdout)
	if err != nil {
		return err
	}

	etf, err := a.api.GetEtf(ctx, id)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printEtfTable([]*models.Etf{etf})
	return nil
}

// inputEtf collects the instrument fields shared by add and edit.
func (a *App) inputEtf() (*models.Etf, error) {
	ticker, err := getSimpleText(a.reader, "Ticker", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}
	assetClass, err := getSimpleText(a.reader, "Asset class", os.Stdout)
	if err != nil {
		return nil, err
	}
	expenseRatio, err := GetFloat(a.reader, "Expense ratio (percent)", os.Stdout)
	if err != nil {
		return nil, err
	}
	isPublic, err := GetBool(a.reader, "Public", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &models.Etf{
		Ticker:       ticker,
		Description:  description,
		AssetClass:   assetClass,
		ExpenseRatio: expenseRatio,
		IsPublic:     isPublic,
	}, nil
}

func (a *App) AddEtf(ctx context.Context) error {
	etf, err := a.inputEtf()
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	created, err := a.api.CreateEtf(ctx, etf)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Created instrument %d (%s)\n", created.ID, created.Ticker)
	return nil
}

func (a *App) EditEtf(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Instrument id", os.Stdout)
	if err != nil {
		return err
	}

	etf, err := a.inputEtf()
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	updated, err := a.api.UpdateEtf(ctx, id, etf)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Updated instrument %d (%s)\n", updated.ID, updated.Ticker)
	return nil
}

func (a *App) DeleteEtf(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Instrument id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteEtf(ctx, id); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
)

func printPortfolioTable(portfolios []*models.Portfolio) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOWNER\tPUBLIC")
	for _, p := range portfolios {
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\n", p.ID, p.Name, p.UserID, p.IsPublic)
	}
	w.Flush()
}

func (a *App) ListPortfolios(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	portfolios, err := a.api.ListPortfolios(ctx, search, "", "")
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printPortfolioTable(portfolios)
	return nil
}

func (a *App) ShowPortfolio(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}

	portfolio, err := a.api.GetPortfolio(ctx, id)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printPortfolioTable([]*models.Portfolio{portfolio})
	return nil
}

func (a *App) inputPortfolio() (*models.Portfolio, error) {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return nil, err
	}
	isPublic, err := GetBool(a.reader, "Public", os.Stdout)
	if err != nil {
		return nil, err
	}
	return &models.Portfolio{Name: name, IsPublic: isPublic}, nil
}

func (a *App) AddPortfolio(ctx context.Context) error {
	portfolio, err := a.inputPortfolio()
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	created, err := a.api.CreatePortfolio(ctx, portfolio)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Created portfolio %d (%s)\n", created.ID, created.Name)
	return nil
}

func (a *App) EditPortfolio(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}

	portfolio, err := a.inputPortfolio()
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	updated, err := a.api.UpdatePortfolio(ctx, id, portfolio)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Updated portfolio %d (%s)\n", updated.ID, updated.Name)
	return nil
}

func (a *App) DeletePortfolio(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeletePortfolio(ctx, id); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}

// PortfolioEtfs lists the instruments inside a portfolio.
func (a *App) PortfolioEtfs(ctx context.Context) error {
	id, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}

	etfs, err := a.api.ListPortfolioEtfs(ctx, id)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printEtfTable(etfs)
	return nil
}

func (a *App) AttachEtf(ctx context.Context) error {
	portfolioID, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}
	etfID, err := GetInt64(a.reader, "Instrument id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.AddPortfolioEtf(ctx, portfolioID, etfID); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Println("Added")
	return nil
}

func (a *App) DetachEtf(ctx context.Context) error {
	portfolioID, err := GetInt64(a.reader, "Portfolio id", os.Stdout)
	if err != nil {
		return err
	}
	etfID, err := GetInt64(a.reader, "Instrument id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.RemovePortfolioEtf(ctx, portfolioID, etfID); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Println("Removed")
	return nil
}

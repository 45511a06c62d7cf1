package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"goldbook/internal/client"
	"goldbook/internal/config"
	"goldbook/internal/identity"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/services"
	"goldbook/internal/validator"
)

var commands = []subcommands.Command{
	&loginCmd{},
	&logoutCmd{},
	&recordCmd{},
	&historyCmd{},
	&portfolioCmd{},
}

var stdout io.Writer = os.Stdout

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "goldctl:", describeError(err))
	return subcommands.ExitFailure
}

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in to the goldbook server and save the session" }
func (*loginCmd) Usage() string {
	return `goldctl login -email <email> [-password <password>]

  Signs in against REMOTE_API_URL and stores the token in TOKEN_FILE.
  The password may also be given through GOLDBOOK_PASSWORD.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email.")
	f.StringVar(&c.password, "password", "", "Account password.")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprintln(os.Stderr, "goldctl: -email is required")
		return subcommands.ExitUsageError
	}
	password := c.password
	if password == "" {
		password = os.Getenv("GOLDBOOK_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	saved, err := login(ctx, cfg, client.New(cfg.RemoteAPIURL, &http.Client{Timeout: cfg.RemoteTimeout}), c.email, password)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Signed in as %s\n", saved.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "forget the saved session" }
func (*logoutCmd) Usage() string            { return "goldctl logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	if err := identity.ClearSession(cfg.TokenFile); err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, "Signed out")
	return subcommands.ExitSuccess
}

type recordCmd struct {
	mode        string
	txType      string
	asset       string
	weight      float64
	price       string
	date        string
	purity      float64
	notes       string
	description string
	location    string
	certificate string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a gold purchase or sale" }
func (*recordCmd) Usage() string {
	return `goldctl record -type <buy|sell> -asset <asset type> -weight <grams> -price <price per gram> [-date YYYY-MM-DD]

  Appends a transaction to the ledger. Sells larger than the weight held
  on their date are refused.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "", "Storage mode (local, remote, hybrid). Defaults to STORAGE_MODE.")
	f.StringVar(&c.txType, "type", "buy", "Transaction type: buy or sell.")
	f.StringVar(&c.asset, "asset", "", "Asset type, for example \"Gold Bar\".")
	f.Float64Var(&c.weight, "weight", 0, "Weight in grams.")
	f.StringVar(&c.price, "price", "", "Price per gram in major currency units, for example 62.50.")
	f.StringVar(&c.date, "date", "", "Trade date (defaults to today).")
	f.Float64Var(&c.purity, "purity", 0, "Fineness between 0 and 1. Buys default to 0.999.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
	f.StringVar(&c.description, "description", "", "Short description.")
	f.StringVar(&c.location, "location", "", "Where the gold is stored.")
	f.StringVar(&c.certificate, "certificate", "", "Assay certificate number.")
}

func (c *recordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	txType, ok := models.ParseTransactionType(c.txType)
	if !ok {
		fmt.Fprintf(os.Stderr, "goldctl: invalid -type %q, use buy or sell\n", c.txType)
		return subcommands.ExitUsageError
	}
	price, err := parseAmount(c.price, cfg.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "goldctl: -price:", err)
		return subcommands.ExitUsageError
	}
	date := time.Now()
	if c.date != "" {
		if date, err = validator.ParseCalendarDate(c.date); err != nil {
			fmt.Fprintln(os.Stderr, "goldctl: -date:", err)
			return subcommands.ExitUsageError
		}
	}
	in := services.RecordInput{
		Type:              txType,
		AssetType:         c.asset,
		Weight:            c.weight,
		PricePerUnit:      price,
		Date:              date,
		Notes:             c.notes,
		Description:       c.description,
		StorageLocation:   c.location,
		CertificateNumber: c.certificate,
	}
	if c.purity != 0 {
		in.Purity = &c.purity
	}

	e, err := openEnv(cfg, c.mode, nil)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	res, err := e.ledger.RecordTransaction(ctx, e.session, in)
	if err != nil {
		return fail(err)
	}

	tx := res.Transaction
	fmt.Fprintf(stdout, "Recorded %s of %sg %s at %s/g (total %s) as %s in the %s ledger\n",
		tx.Type, formatWeight(tx.Weight), tx.AssetType,
		formatAmount(tx.PricePerUnit, cfg.Currency), formatAmount(tx.TotalValue, cfg.Currency),
		tx.ID, res.Source)
	if res.Fallback {
		fmt.Fprintln(stdout, "Warning: the server was unreachable; the transaction is stored locally only.")
	}
	return subcommands.ExitSuccess
}

type historyCmd struct {
	mode     string
	page     int
	pageSize int
	txType   string
	asset    string
	from     string
	to       string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded transactions, most recent first" }
func (*historyCmd) Usage() string {
	return `goldctl history [-type buy|sell] [-asset <asset type>] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-page N]
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "", "Storage mode (local, remote, hybrid). Defaults to STORAGE_MODE.")
	f.IntVar(&c.page, "page", 1, "Page number.")
	f.IntVar(&c.pageSize, "page-size", 20, "Transactions per page (max 100).")
	f.StringVar(&c.txType, "type", "", "Only show buys or sells.")
	f.StringVar(&c.asset, "asset", "", "Only show this asset type.")
	f.StringVar(&c.from, "from", "", "Earliest trade date.")
	f.StringVar(&c.to, "to", "", "Latest trade date.")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := services.HistoryFilter{AssetType: c.asset}
	if c.txType != "" {
		txType, ok := models.ParseTransactionType(c.txType)
		if !ok {
			fmt.Fprintf(os.Stderr, "goldctl: invalid -type %q, use buy or sell\n", c.txType)
			return subcommands.ExitUsageError
		}
		filter.Type = &txType
	}
	for _, bound := range []struct {
		raw string
		dst **time.Time
	}{{c.from, &filter.FromDate}, {c.to, &filter.ToDate}} {
		if bound.raw == "" {
			continue
		}
		d, err := validator.ParseCalendarDate(bound.raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goldctl:", err)
			return subcommands.ExitUsageError
		}
		*bound.dst = &d
	}
	if c.pageSize < 1 || c.pageSize > 100 || c.page < 1 {
		fmt.Fprintln(os.Stderr, "goldctl: -page must be positive and -page-size between 1 and 100")
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	e, err := openEnv(cfg, c.mode, nil)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	history, err := e.ledger.GetTransactionHistory(ctx, e.session, filter, pagination.PageRequest{Page: c.page, PageSize: c.pageSize})
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tASSET\tWEIGHT (g)\tPRICE/g\tTOTAL\tID")
	for _, tx := range history.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format(time.DateOnly), tx.Type, tx.AssetType, formatWeight(tx.Weight),
			formatAmount(tx.PricePerUnit, cfg.Currency), formatAmount(tx.TotalValue, cfg.Currency), tx.ID)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Page %d of %d (%d transactions, %s ledger)\n",
		history.Page, history.TotalPages, history.TotalItems, history.Source)
	printProvenance(history.Fallback, history.CorruptRecords)
	return subcommands.ExitSuccess
}

type portfolioCmd struct {
	mode  string
	price string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show holdings valued at the current gold price" }
func (*portfolioCmd) Usage() string {
	return `goldctl portfolio [-price <price per gram>]

  Aggregates every transaction into positions using weighted-average cost
  and values them at -price, the server's latest price, or GOLD_PRICE_PER_GRAM.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "", "Storage mode (local, remote, hybrid). Defaults to STORAGE_MODE.")
	f.StringVar(&c.price, "price", "", "Value holdings at this price per gram instead of the feed.")
}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	var override *int64
	if c.price != "" {
		price, err := parseAmount(c.price, cfg.Currency)
		if err != nil || price < 0 {
			fmt.Fprintln(os.Stderr, "goldctl: -price must be an amount of zero or more")
			return subcommands.ExitUsageError
		}
		override = &price
	}

	e, err := openEnv(cfg, c.mode, override)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	report, err := e.ledger.GetPortfolio(ctx, e.session)
	if err != nil {
		return fail(err)
	}
	printPortfolio(stdout, report)
	printProvenance(report.Fallback, report.CorruptRecords)
	return subcommands.ExitSuccess
}

func printPortfolio(out io.Writer, r *services.PortfolioReport) {
	cur := r.Currency
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tWEIGHT (g)\tAVG COST/g\tCOST BASIS\tVALUE\tP/L\tP/L %")
	for _, h := range r.Holdings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.AssetType, formatWeight(h.Weight), formatAmount(int64(h.AvgCostPerUnit+0.5), cur),
			formatAmount(h.CostBasis, cur), formatAmount(h.CurrentValue, cur),
			formatAmount(h.ProfitLoss, cur), formatPercent(h.ProfitLossPercentage))
	}
	fmt.Fprintf(w, "TOTAL\t%s\t\t%s\t%s\t%s\t%s\n",
		formatWeight(r.TotalWeight), formatAmount(r.TotalCostBasis, cur), formatAmount(r.CurrentValue, cur),
		formatAmount(r.ProfitLoss, cur), formatPercent(r.ProfitLossPercentage))
	_ = w.Flush()

	if r.PriceAvailable {
		fmt.Fprintf(out, "Gold price: %s/g (%s)\n", formatAmount(r.CurrentPricePerUnit, cur), r.PriceSource)
	}
	fmt.Fprintf(out, "Invested: %s  Realized profit: %s\n",
		formatAmount(r.TotalInvested, cur), formatAmount(r.RealizedProfit, cur))
	for _, warning := range r.Warnings {
		fmt.Fprintln(out, "Warning:", warning)
	}
}

func printProvenance(fallback bool, corrupt int) {
	if fallback {
		fmt.Fprintln(stdout, "Warning: the server was unreachable; showing locally stored transactions.")
	}
	if corrupt > 0 {
		fmt.Fprintf(stdout, "Warning: %d stored transaction(s) could not be read.\n", corrupt)
	}
}

func formatWeight(g float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", g), "0"), ".")
}

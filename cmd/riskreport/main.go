package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/pkg/errors"

	"stockRisk/internal/config"
	"stockRisk/internal/finance"
	"stockRisk/internal/openai"
	"stockRisk/internal/prompt"
	"stockRisk/internal/report"
	"stockRisk/internal/storage"
	"stockRisk/internal/telegram"
)

type flags struct {
	config    string
	stock     string
	benchmark string
	start     string
	end       string
	rf        float64
	rfSet     bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", config.DefaultPath, "path to the YAML config file")
	flag.StringVar(&f.stock, "stock", "", "stock ticker, e.g. AAPL")
	flag.StringVar(&f.benchmark, "benchmark", "", "benchmark ticker, e.g. SPY")
	flag.StringVar(&f.start, "start", "", "start date YYYY-MM-DD (inclusive)")
	flag.StringVar(&f.end, "end", "", "end date YYYY-MM-DD (exclusive)")
	flag.Float64Var(&f.rf, "rf", 0, "annual risk-free rate as a decimal, e.g. 0.02")
	flag.Parse()
	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == "rf" {
			f.rfSet = true
		}
	})
	return f
}

func main() {
	log.DefaultLogger = log.Logger{Level: log.InfoLevel, Writer: &log.ConsoleWriter{Writer: os.Stderr}}

	f := parseFlags()
	cfg, err := config.Load(f.config)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.DefaultLogger.SetLevel(log.ParseLevel(cfg.LogLevel))

	req, err := collectRequest(f, cfg, prompt.New(os.Stdin, os.Stdout))
	if err != nil {
		log.Fatal().Err(err).Msg("input")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider, closeStore, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("provider")
	}
	defer closeStore()

	a, err := finance.Analyze(ctx, provider, req)
	if errors.Is(err, finance.ErrNoData) {
		fmt.Fprintf(os.Stderr, "No price data: %v\n", err)
		closeStore()
		os.Exit(1)
	}
	if err != nil {
		closeStore()
		log.Fatal().Err(err).Msg("analysis failed")
	}

	text := report.Text(a)
	fmt.Print("\n" + text)

	charts := writeCharts(cfg, a)

	if cfg.CommentaryEnabled() {
		cctx, cancel := context.WithTimeout(ctx, 45*time.Second)
		comment, err := openai.NewCommentator(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
			openai.WithBaseURL(cfg.OpenAI.BaseURL, nil)).Comment(cctx, text)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("commentary unavailable")
		} else {
			text += "\nCommentary\n" + comment + "\n"
			fmt.Print("\nCommentary\n" + comment + "\n")
		}
	}

	if cfg.TelegramEnabled() {
		if err := deliver(cfg, text, charts); err != nil {
			log.Error().Err(err).Msg("telegram delivery failed")
		}
	}
}

func collectRequest(f flags, cfg *config.Config, p *prompt.Prompter) (finance.Request, error) {
	var req finance.Request
	var err error

	if req.Stock = strings.ToUpper(strings.TrimSpace(f.stock)); req.Stock == "" {
		if req.Stock, err = p.Symbol("Stock ticker"); err != nil {
			return req, err
		}
	}
	if req.Benchmark = strings.ToUpper(strings.TrimSpace(f.benchmark)); req.Benchmark == "" {
		if req.Benchmark, err = p.Symbol("Benchmark ticker"); err != nil {
			return req, err
		}
	}
	if req.Start, err = dateFlagOrPrompt(f.start, "Start date", p); err != nil {
		return req, err
	}
	if req.End, err = dateFlagOrPrompt(f.end, "End date", p); err != nil {
		return req, err
	}

	switch {
	case f.rfSet:
		req.RiskFreeRate = f.rf
	case cfg.RiskFreeRate != nil:
		req.RiskFreeRate = *cfg.RiskFreeRate
	default:
		if req.RiskFreeRate, err = p.RiskFreeRate("Risk-free rate"); err != nil {
			return req, err
		}
	}
	return req, req.Validate()
}

func dateFlagOrPrompt(value, label string, p *prompt.Prompter) (time.Time, error) {
	if value == "" {
		return p.Date(label)
	}
	d, err := finance.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.Errorf("%s %q is not a YYYY-MM-DD date", strings.ToLower(label), value)
	}
	return d, nil
}

// newProvider returns the configured price source and a func releasing the store, if any.
func newProvider(ctx context.Context, cfg *config.Config) (finance.Provider, func(), error) {
	yahoo := finance.NewYahooProvider(finance.WithTimeout(cfg.Yahoo.Timeout), finance.WithHosts(cfg.Yahoo.Hosts...))
	if cfg.Provider == "yahoo" && !cfg.Database.SavePrices {
		return yahoo, func() {}, nil
	}

	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.Database.SQLitePath + "?_fk=1")
	if err != nil {
		return nil, nil, err
	}
	if err := storage.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info().Str("path", cfg.Database.SQLitePath).Msg("db: opened sqlite price store")
	store := storage.NewStore(db)
	closeDB := func() { db.Close() }

	if cfg.Provider == "sqlite" {
		return store, closeDB, nil
	}
	return store.Recording(yahoo), closeDB, nil
}

type chartFile struct {
	path    string
	caption string
	png     []byte
}

func writeCharts(cfg *config.Config, a *finance.Analysis) []chartFile {
	if a.Stock.Len() < 2 {
		log.Warn().Int("aligned_days", a.Stock.Len()).Msg("not enough aligned prices to plot")
		return nil
	}
	var out []chartFile
	title := a.Stock.Symbol + " vs " + a.Benchmark.Symbol

	size := finance.ChartSize{Width: cfg.Charts.Width, Height: cfg.Charts.Height}
	if img, err := finance.MakeComparisonChart(a.Stock, a.Benchmark, size); err != nil {
		log.Warn().Err(err).Msg("comparison chart failed")
	} else {
		out = append(out, chartFile{path: cfg.Charts.ComparisonPath, caption: title + " • normalized (log scale)", png: img})
	}
	if img, err := finance.MakeDrawdownChart(a.Stock, a.Benchmark); err != nil {
		log.Warn().Err(err).Msg("drawdown chart failed")
	} else {
		out = append(out, chartFile{path: cfg.Charts.DrawdownPath, caption: title + " • drawdown", png: img})
	}

	written := out[:0]
	for _, c := range out {
		if err := os.WriteFile(c.path, c.png, 0o644); err != nil {
			log.Warn().Err(err).Str("path", c.path).Msg("could not write chart")
			continue
		}
		log.Info().Str("path", c.path).Msg("chart written")
		written = append(written, c)
	}
	return written
}

func deliver(cfg *config.Config, text string, charts []chartFile) error {
	n, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return err
	}
	if err := n.SendReport(text); err != nil {
		return err
	}
	for _, c := range charts {
		if err := n.SendChart(filepath.Base(c.path), c.png, c.caption); err != nil {
			return err
		}
	}
	log.Info().Int64("chat_id", cfg.Telegram.ChatID).Int("charts", len(charts)).Msg("telegram: report delivered")
	return nil
}

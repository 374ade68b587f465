package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kowshik24/email-draft/compose"
	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/discovery"
	"github.com/kowshik24/email-draft/internal/server"
	"github.com/kowshik24/email-draft/internal/telemetry"
	"github.com/kowshik24/email-draft/provider"
	"github.com/kowshik24/email-draft/schedule"
	"github.com/kowshik24/email-draft/tools/web_fetch"
	"github.com/kowshik24/email-draft/tools/web_search"
)

func main() {
	// A .env next to the binary is the documented way to supply API keys.
	_ = godotenv.Load()

	var cfgPath string
	root := &cobra.Command{Use: "outreach", Short: "PhD outreach assistant"}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	var cvPath, university, outPath, model string
	discover := &cobra.Command{
		Use:   "discover",
		Short: "Find matching professors at a university",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cvText, err := readFile(cvPath)
			if err != nil {
				return err
			}
			pipeline, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			result, err := pipeline.WithModel(model).Run(context.Background(), cvText, university)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d professor(s) to %s\n", len(result.Professors), outPath)
			return nil
		},
	}
	discover.Flags().StringVar(&cvPath, "cv", "", "path to the CV text file")
	discover.Flags().StringVar(&university, "university", "", "target university name")
	discover.Flags().StringVarP(&outPath, "out", "o", "", "write the result JSON to this file")
	discover.Flags().StringVar(&model, "model", "", "override the configured LLM model")
	_ = discover.MarkFlagRequired("cv")
	_ = discover.MarkFlagRequired("university")

	var profPath, studentName, signature string
	draft := &cobra.Command{
		Use:   "draft",
		Short: "Draft a cold-outreach email for one professor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cvText, err := readFile(cvPath)
			if err != nil {
				return err
			}
			profInfo, err := readFile(profPath)
			if err != nil {
				return err
			}
			drafter, err := buildDrafter(cfg)
			if err != nil {
				return err
			}
			email, err := drafter.WithModel(model).DraftEmail(context.Background(), cvText, profInfo, studentName, signature)
			if err != nil {
				return err
			}
			fmt.Println(email)
			return nil
		},
	}
	draft.Flags().StringVar(&cvPath, "cv", "", "path to the CV text file")
	draft.Flags().StringVar(&profPath, "professor", "", "path to a file with the professor's info")
	draft.Flags().StringVar(&studentName, "name", "", "student name for the closing")
	draft.Flags().StringVar(&signature, "signature", "", "signature block appended after the closing")
	draft.Flags().StringVar(&model, "model", "", "override the configured LLM model")
	_ = draft.MarkFlagRequired("cv")
	_ = draft.MarkFlagRequired("professor")

	var sopPath string
	sop := &cobra.Command{
		Use:   "sop",
		Short: "Tailor a LaTeX statement of purpose to one professor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cvText, err := readFile(cvPath)
			if err != nil {
				return err
			}
			profInfo, err := readFile(profPath)
			if err != nil {
				return err
			}
			template, err := readFile(sopPath)
			if err != nil {
				return err
			}
			drafter, err := buildDrafter(cfg)
			if err != nil {
				return err
			}
			out, err := drafter.WithModel(model).EditSOP(context.Background(), cvText, profInfo, template, studentName)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	sop.Flags().StringVar(&cvPath, "cv", "", "path to the CV text file")
	sop.Flags().StringVar(&profPath, "professor", "", "path to a file with the professor's info")
	sop.Flags().StringVar(&sopPath, "template", "", "path to the LaTeX SOP template")
	sop.Flags().StringVar(&studentName, "name", "", "student name")
	sop.Flags().StringVar(&model, "model", "", "override the configured LLM model")
	_ = sop.MarkFlagRequired("cv")
	_ = sop.MarkFlagRequired("professor")
	_ = sop.MarkFlagRequired("template")

	var location, zone string
	sched := &cobra.Command{
		Use:   "schedule",
		Short: "Recommend a weekday morning send time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			advisor := schedule.NewAdvisor(cfg.Schedule, nil)
			var rec any
			if zone != "" {
				rec, err = advisor.Recommend(zone)
			} else {
				rec, err = advisor.Advise(location)
			}
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
	sched.Flags().StringVar(&location, "location", "", "free-text location hint, e.g. the university name")
	sched.Flags().StringVar(&zone, "timezone", "", "explicit IANA timezone, skips inference")

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			srv, err := server.New(cfg)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	root.AddCommand(discover, draft, sop, sched, serve)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func buildPipeline(cfg *config.Config) (*discovery.Pipeline, error) {
	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), cfg.LLM)
	if err != nil {
		return nil, err
	}
	searcher, err := web_search.NewSearcher(web_search.Provider(cfg.Search.Provider), searchAPIKey(cfg))
	if err != nil {
		return nil, err
	}
	fetcher, err := web_fetch.NewWebFetcher(web_fetch.ChromedpFetcherType, cfg.Search.FetchTimeout, cfg.Search.FetchMaxSize)
	if err != nil {
		return nil, err
	}
	tele := telemetry.New(prometheus.NewRegistry())
	gateway := discovery.NewGateway(searcher, fetcher, cfg.Search.Provider, cfg.Search, tele,
		log.New(log.Writer(), "[SEARCH] ", log.LstdFlags))
	return discovery.NewPipeline(gateway, llm, cfg, tele,
		log.New(log.Writer(), "[DISCOVERY] ", log.LstdFlags)), nil
}

func buildDrafter(cfg *config.Config) (*compose.Drafter, error) {
	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), cfg.LLM)
	if err != nil {
		return nil, err
	}
	return compose.NewDrafter(llm, provider.OptionsFor(cfg.LLM.Active())), nil
}

func searchAPIKey(cfg *config.Config) string {
	switch cfg.Search.Provider {
	case "serper":
		return cfg.Search.SerperAPIKey
	case "brave":
		return cfg.Search.BraveAPIKey
	default:
		return cfg.Search.TavilyAPIKey
	}
}

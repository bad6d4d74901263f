package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	analystx "github.com/tanpawarit/RetailAnalyst/agent/analyst"
	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	historyx "github.com/tanpawarit/RetailAnalyst/agent/history"
	promptx "github.com/tanpawarit/RetailAnalyst/agent/prompt"
	reportx "github.com/tanpawarit/RetailAnalyst/agent/report"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
	toolx "github.com/tanpawarit/RetailAnalyst/agent/tool"
	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
	configx "github.com/tanpawarit/RetailAnalyst/pkg/config"
	_ "github.com/tanpawarit/RetailAnalyst/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/RetailAnalyst/pkg/openrouter"
)

type AppConfig struct {
	// SessionStore selects transcript persistence: "memory" or "redis".
	SessionStore string `envconfig:"SESSION_STORE" split_words:"true" default:"memory"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")

	backendCfg := configx.MustNew[backendx.Config]("")
	client := backendx.MustNew(*backendCfg)

	health := client.CheckBackendHealth(ctx)
	if status, _ := health["status"].(string); status == "unhealthy" {
		log.Warn().
			Interface("health", health).
			Msg("backend is unreachable; answers will report data as unavailable")
	} else {
		log.Info().Interface("health", health).Msg("backend health check")
	}

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(*openRouterCfg)
	if openRouterClient == nil {
		log.Fatal().Msg("openrouter api key is required")
	}
	if err := openrouterx.VerifyAccess(ctx, openRouterClient); err != nil {
		log.Warn().Err(err).Msg("openrouter credential check failed; model calls may be rejected")
	} else {
		log.Info().Msg("openrouter credentials verified")
	}

	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create chat model")
	}

	formatter := reportx.NewFormatter()
	infos, _ := toolx.BuildCatalog(client, formatter)
	gateway := toolx.NewGateway(client, formatter)

	store := buildSessionStore(appCfg.SessionStore)
	archive, pgArchive := buildArchive(ctx)

	agent, err := analystx.New(chatModel, infos, gateway, store, archive, promptx.LoadPromptSet())
	if err != nil {
		log.Fatal().Err(err).Msg("build analyst")
	}

	runChat(ctx, agent, client, formatter, pgArchive)
}

func buildSessionStore(kind string) sessionx.Store {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "redis":
		cfg := configx.MustNew[sessionx.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := sessionx.NewUpstashRedisStore(*cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build redis session store")
		}
		return store
	default:
		return sessionx.NewMemoryStore()
	}
}

// buildArchive returns the archive the agent records to, plus the concrete
// Postgres archive when configured so the REPL can read history back.
func buildArchive(ctx context.Context) (contractx.ExchangeArchive, *historyx.PostgresArchive) {
	cfg := configx.MustNew[historyx.Config]("HISTORY")
	if !cfg.Enabled() {
		return historyx.NopArchive{}, nil
	}

	archive, err := historyx.NewPostgresArchive(ctx, *cfg)
	if err != nil {
		log.Warn().Err(err).Msg("exchange archive unavailable; continuing without it")
		return historyx.NopArchive{}, nil
	}
	return archive, archive
}

func runChat(ctx context.Context, agent *analystx.Analyst, client *backendx.Client, formatter *reportx.Formatter, pgArchive *historyx.PostgresArchive) {
	sessionID := fmt.Sprintf("cli-%d", time.Now().Unix())

	fmt.Println(promptx.Greeting)
	fmt.Println(`Type "exit" to quit, "/metrics" for a live snapshot, "/history" for recent exchanges.`)

	scanner := bufio.NewScanner(os.Stdin)
	answered := 0
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println(promptx.Thanks)
			return
		}
		if line == "/metrics" {
			printMetricsSnapshot(ctx, client, formatter)
			continue
		}
		if line == "/history" {
			printRecentExchanges(ctx, pgArchive, sessionID)
			continue
		}

		answer, err := agent.Answer(ctx, sessionID, line)
		if err != nil {
			log.Error().Err(err).Msg("answer failed")
			fmt.Println(promptx.BackendTrouble)
			continue
		}

		fmt.Println()
		fmt.Println(answer.Response)
		if len(answer.Sources) > 0 {
			fmt.Printf("\n_sources: %s | confidence: %.0f%%_\n", strings.Join(answer.Sources, ", "), answer.Confidence*100)
		}
		fmt.Println()
		fmt.Println(promptx.FollowUp(answered))
		answered++
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read stdin")
	}
}

// printRecentExchanges reads the latest archived exchanges for this session
// from Postgres.
func printRecentExchanges(ctx context.Context, archive *historyx.PostgresArchive, sessionID string) {
	if archive == nil {
		fmt.Println("History is not configured. Set HISTORY_DSN to enable it.")
		return
	}

	records, err := archive.RecentForSession(ctx, sessionID, 5)
	if err != nil {
		log.Error().Err(err).Msg("read exchange history")
		fmt.Println(promptx.BackendTrouble)
		return
	}
	if len(records) == 0 {
		fmt.Println(promptx.NoData)
		return
	}

	fmt.Println()
	for i, rec := range records {
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, rec.AskedAt.Format(time.RFC822), rec.Query, rec.Response)
	}
	fmt.Println()
}

// printMetricsSnapshot renders the live dashboard from one concurrent batch
// fetch, without going through the model.
func printMetricsSnapshot(ctx context.Context, client *backendx.Client, formatter *reportx.Formatter) {
	metrics := client.GetMultipleMetrics(ctx)

	fmt.Println()
	fmt.Println(formatter.VisitorStatus(metrics.Visitors))
	fmt.Println()
	fmt.Println(formatter.CashierStatus(metrics.Cashier))
	fmt.Println()
	fmt.Println(formatter.Heatmap(metrics.Heatmap))
	fmt.Println()
}

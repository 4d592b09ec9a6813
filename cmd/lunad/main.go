package main

// #region imports
import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/config"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/graph"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/hints"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/livedata"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/provider"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/router"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/storage"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/turnlog"
)

// #endregion

// #region main

func main() {
	configPath := flag.String("config", "luna.toml", "config file path")
	userID := flag.String("user", "local-user", "user ID for hint persistence")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	hintSvc, err := hints.NewService(db, cfg.HintServiceConfig())
	if err != nil {
		log.Fatalf("failed to init hint service: %v", err)
	}
	logStore, err := turnlog.NewStore(db)
	if err != nil {
		log.Fatalf("failed to init turn log store: %v", err)
	}

	sel, closeProviders, err := buildProviders(cfg.Providers)
	if err != nil {
		log.Fatalf("failed to wire providers: %v", err)
	}
	defer closeProviders()

	rt := router.New(cfg.Router)
	exec := graph.NewExecutor(sel, cfg.Router.MaxAttempts)
	fetcher := livedata.NewFetcher(cfg.LiveDataFetcherConfig())

	sessionID := uuid.New().String()
	fmt.Println("Luna controller ready.")
	fmt.Printf("  DB: %s | Runtime: %s | Session: %s\n", cfg.Storage.DBPath, cfg.Providers.RuntimeAddr, sessionID)
	fmt.Println("Type a message (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	var priorTurns []string

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "quit" || message == "exit" {
			break
		}

		runTurn(cfg, rt, exec, hintSvc, logStore, fetcher, sessionID, *userID, message, priorTurns)
		priorTurns = append([]string{message}, priorTurns...)
	}

	if err := hintSvc.ClearSession(sessionID); err != nil {
		log.Printf("session hint cleanup failed: %v", err)
	}
}

// #endregion

// #region run-turn

func runTurn(
	cfg config.Config,
	rt *router.Router,
	exec *graph.Executor,
	hintSvc *hints.Service,
	logStore *turnlog.Store,
	fetcher *livedata.Fetcher,
	sessionID, userID, message string,
	priorTurns []string,
) {
	rc := router.Context{Message: message, PriorTurns: priorTurns, SessionID: sessionID}

	decision, err := routeTurn(rt, rc)
	if err != nil {
		// Invalid decisions are fatal for the turn, never coerced.
		fmt.Println("(routing failed for this message)")
		return
	}

	// A dead hint store is non-fatal; the turn proceeds without hints.
	var injected *string
	if active, err := hintSvc.ActiveHints(sessionID, userID); err != nil {
		log.Printf("[HINTS] unavailable, proceeding without: %v", err)
	} else {
		injected = hints.FormatForPrompt(active, hintSvc.Config())
	}

	agentView := fetchLiveContext(cfg, fetcher, decision, message)

	state, err := graph.NewInitialState(
		graph.TurnInput{
			SessionID: sessionID,
			TurnID:    uuid.New().String(),
			UserInput: message,
			Mode:      graph.ModeAssistant,
		},
		"You are Luna, a personal assistant. Be direct and useful.",
		agentView,
		decision,
		graph.Options{UserID: userID, InjectedHints: injected},
	)
	if err != nil {
		log.Printf("state init failed: %v", err)
		return
	}

	// Wall-clock budget per turn; maxAttempts is only a logical bound.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Turn.BudgetSecs)*time.Second)
	tl, err := exec.Run(ctx, state)
	cancel()

	if err != nil {
		fmt.Println("(could not generate a response)")
	} else {
		fmt.Printf("\n%s\n\n", tl.FinalOutput)
		fmt.Printf("[%s] route=%s attempts=%d critique_passed=%v duration=%s\n",
			tl.TurnID, tl.Route, tl.Attempts, tl.CritiquePassed, tl.Duration.Round(time.Millisecond))
	}

	if err := logStore.Record(tl); err != nil {
		log.Printf("turn log write failed: %v", err)
	}
	graph.RecordCorrections(hintSvc, state)
}

func routeTurn(rt *router.Router, rc router.Context) (router.Decision, error) {
	if quick := rt.QuickRouteCheck(rc); quick != nil {
		return *quick, nil
	}
	return rt.Route(rc)
}

// fetchLiveContext pulls current-information snippets when the route
// permits data access and the message obviously needs it. Best effort:
// a failed fetch degrades the turn to model knowledge.
func fetchLiveContext(cfg config.Config, fetcher *livedata.Fetcher, decision router.Decision, message string) string {
	if !fetcher.Enabled() {
		return ""
	}
	if decision.Route != router.TierTool && decision.Route != router.TierMax {
		return ""
	}
	if !router.ObviouslyNeedsLiveData(message) {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.LiveData.TimeoutSecs)*time.Second)
	defer cancel()
	snippets, err := fetcher.Fetch(ctx, message)
	if err != nil {
		log.Printf("[LIVEDATA] fetch failed, proceeding without: %v", err)
		return ""
	}
	return livedata.FormatForContext(snippets)
}

// #endregion

// #region providers

func buildProviders(pc config.ProvidersConfig) (*provider.Selector, func(), error) {
	runtime, err := provider.NewRuntimeClient("runtime", pc.RuntimeAddr)
	if err != nil {
		return nil, nil, err
	}

	apiKey := os.Getenv(pc.CloudKeyEnv)
	cloud := func(name, model string) *provider.CloudClient {
		return provider.NewCloudClient(provider.CloudConfig{
			Name:       name,
			APIKey:     apiKey,
			BaseURL:    pc.CloudBase,
			Model:      model,
			MaxRetries: 2,
			RatePerSec: pc.RatePerSec,
		})
	}
	light := cloud("cloud-light", pc.LightModel)
	mid := cloud("cloud-mid", pc.MidModel)
	tool := cloud("cloud-tool", pc.ToolModel)
	max := cloud("cloud-max", pc.MaxModel)

	sel, err := provider.NewSelector(map[router.Tier][]provider.Provider{
		router.TierLight:    {runtime, light},
		router.TierStandard: {mid, runtime},
		router.TierTool:     {tool, mid},
		router.TierMax:      {max, tool},
	}, mid)
	if err != nil {
		return nil, nil, err
	}

	return sel, func() { runtime.Close() }, nil
}

// #endregion

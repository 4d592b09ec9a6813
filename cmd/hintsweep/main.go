package main

// #region imports
import (
	"flag"
	"fmt"
	"log"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/config"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/hints"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/storage"
)

// #endregion

// #region main

// hintsweep runs the scheduled user-hint weight decay. Meant for cron;
// never part of the per-turn path.
func main() {
	configPath := flag.String("config", "luna.toml", "config file path")
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

	svc, err := hints.NewService(db, cfg.HintServiceConfig())
	if err != nil {
		log.Fatalf("failed to init hint service: %v", err)
	}

	decayed, err := svc.DecayUserHints(cfg.Router.HintDecayDays)
	if err != nil {
		log.Fatalf("decay sweep failed: %v", err)
	}
	fmt.Printf("decayed %d user hints (window: %d days)\n", decayed, cfg.Router.HintDecayDays)
}

// #endregion

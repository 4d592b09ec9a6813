package main

// #region imports
import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/config"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/storage"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/turnlog"
)

// #endregion

// #region main

// turnlogs dumps the most recent turn logs for inspection.
func main() {
	configPath := flag.String("config", "luna.toml", "config file path")
	limit := flag.Int("n", 20, "number of logs to show")
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

	store, err := turnlog.NewStore(db)
	if err != nil {
		log.Fatalf("failed to init turn log store: %v", err)
	}

	logs, err := store.Recent(*limit)
	if err != nil {
		log.Fatalf("failed to read turn logs: %v", err)
	}
	if len(logs) == 0 {
		fmt.Println("no turn logs")
		return
	}

	for _, tl := range logs {
		status := "passed"
		if !tl.CritiquePassed {
			status = "forced"
		}
		if tl.FinalOutput == "" {
			status = "failed"
		}
		fmt.Printf("%s  %s/%s  route=%-8s attempts=%d  %s  %s\n",
			tl.CreatedAt.Format(time.RFC3339), shorten(tl.SessionID), shorten(tl.TurnID),
			tl.Route, tl.Attempts, status, tl.Duration.Round(time.Millisecond))
		if len(tl.Issues) > 0 {
			fmt.Printf("    issues: %s\n", strings.Join(tl.Issues, "; "))
		}
	}
}

func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion

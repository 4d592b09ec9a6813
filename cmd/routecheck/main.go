package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/config"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/router"
)

// #endregion

// #region main

// routecheck classifies one message and prints the route decision as
// JSON. Handy for tuning the rule tables.
func main() {
	configPath := flag.String("config", "luna.toml", "config file path")
	quick := flag.Bool("quick", false, "use the fast path only (may print nothing)")
	flag.Parse()

	message := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if message == "" {
		fmt.Fprintln(os.Stderr, "usage: routecheck [-quick] <message>")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	rt := router.New(cfg.Router)
	rc := router.Context{Message: message}

	var decision router.Decision
	if *quick {
		d := rt.QuickRouteCheck(rc)
		if d == nil {
			fmt.Println("fast path deferred; run without -quick")
			return
		}
		decision = *d
	} else {
		decision, err = rt.Route(rc)
		if err != nil {
			log.Fatalf("routing failed: %v", err)
		}
	}

	out, _ := json.MarshalIndent(decision, "", "  ")
	fmt.Println(string(out))
}

// #endregion

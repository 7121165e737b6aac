package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"InkSynth/internal/config"
	"InkSynth/internal/net"
	"InkSynth/internal/studio"
	"InkSynth/internal/ui"
)

const browseTimeout = 3 * time.Second

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "watch" {
		if err := runWatcher(args[1:]); err != nil {
			log.Fatalf("[WATCH] %v", err)
		}
		return
	}
	runStudio(args)
}

func runStudio(args []string) {
	fs := flag.NewFlagSet("inksynth", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a TOML config file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  inksynth [-config file]\n  inksynth watch [host:port]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[STUDIO] %v", err)
	}
	log.Printf("[STUDIO] Sending shapes to %s:%d%s", cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.Address)

	emitter := net.NewEmitter(cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.Address)
	st := studio.New(cfg, emitter)

	subtitle := ""
	if cfg.Feed.Listen != "" {
		feed := net.NewFeed()
		port, err := feed.Start(cfg.Feed.Listen)
		if err != nil {
			log.Fatalf("[FEED] %v", err)
		}
		defer feed.Close()
		st.SetFeed(feed)

		url := net.FeedURL(net.GetOutgoingIP(), port)
		subtitle = "Live feed at " + url
		log.Printf("[FEED] Viewers can watch %s", url)

		if cfg.Feed.Advertise {
			server, err := net.Advertise(port)
			if err != nil {
				log.Printf("[FEED] mDNS advertising disabled: %v", err)
			} else {
				defer server.Shutdown()
			}
		}
	}

	ui.RunApp(st, cfg, subtitle)
}

// runWatcher prints every event of a live feed. Without an address it
// looks for one on the local network.
func runWatcher(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ""
	if len(args) > 0 {
		addr = args[0]
	} else {
		found := make(chan string, 1)
		err := net.Browse(browseTimeout, func(a string) {
			select {
			case found <- a:
			default:
			}
		})
		if err != nil {
			return err
		}
		select {
		case addr = <-found:
		default:
			return fmt.Errorf("no feed found on the local network")
		}
	}

	url := addr
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		url = "ws://" + strings.TrimSuffix(addr, "/") + net.FeedPath
	}
	log.Printf("[WATCH] Connecting to %s", url)

	return net.Watch(ctx, url, func(m net.FeedMessage) {
		if m.Shape == nil {
			fmt.Printf("%s from %s\n", m.Type, m.Site)
			return
		}
		fmt.Printf("%s from %s: %s\n", m.Type, m.Site, m.Shape)
	})
}

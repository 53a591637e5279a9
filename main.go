package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"MisPaint/internal/config"
	"MisPaint/internal/engine"
	mpnet "MisPaint/internal/net"
	"MisPaint/internal/state"
	"MisPaint/internal/ui"

	"fyne.io/fyne/v2"
)

const browseTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	share := flag.Bool("share", false, "mirror the canvas to viewers on the local network")
	port := flag.Int("port", 0, "port to share on (overrides share.port)")
	join := flag.String("join", "", "view a shared canvas, given its mispaint:// link or host:port")
	browse := flag.Bool("browse", false, "view the first shared canvas found on the local network")
	verbose := flag.Bool("v", false, "log engine activity")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	if *port != 0 {
		cfg.Share.Port = *port
	}
	if *verbose || cfg.Debug() {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	styles, err := cfg.Styles()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	// The OS hands registered share links over as the first argument.
	link := *join
	if args := flag.Args(); link == "" && len(args) > 0 && strings.HasPrefix(args[0], mpnet.LinkScheme) {
		link = args[0]
	}

	eng := engine.New(engine.WithStyles(styles))
	switch {
	case link != "" || *browse:
		runViewer(cfg, eng, link)
	case *share:
		runHost(cfg, eng)
	default:
		log.Println("Starting local canvas")
		ui.NewApp(eng, options(cfg, "MisPaint")).Run()
	}
}

func options(cfg *config.Config, title string) ui.Options {
	return ui.Options{
		Title:  title,
		Width:  float32(cfg.Canvas.Width),
		Height: float32(cfg.Canvas.Height),
	}
}

func runHost(cfg *config.Config, eng *engine.Engine) {
	log.Println("Starting as HOST")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port := cfg.Share.Port
	link := mpnet.Link(mpnet.OutgoingIP(), port)

	opts := options(cfg, "MisPaint (sharing)")
	opts.ShareLink = link
	a := ui.NewApp(eng, opts)

	hub := mpnet.NewHub(eng.Snapshot, fyne.DoAndWait)
	hub.OnPeers = func(n int) {
		fyne.Do(func() {
			a.SetInfo(fmt.Sprintf("Share: %s · %d viewer(s)", link, n))
		})
	}
	eng.OnOp = hub.Broadcast
	if _, err := hub.Start(ctx, port); err != nil {
		log.Fatalf("[HOST] %v", err)
	}

	if cfg.Share.Advertise {
		server, err := mpnet.Advertise(port)
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	log.Printf("[HOST] Share link: %s", link)
	a.Run()
}

func runViewer(cfg *config.Config, eng *engine.Engine, link string) {
	log.Println("Starting as VIEWER")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := options(cfg, "MisPaint (viewing)")
	opts.ReadOnly = true
	a := ui.NewApp(eng, opts)
	status := func(text string) {
		fyne.Do(func() { a.SetStatus(text) })
	}

	go func() {
		addr := link
		if addr == "" {
			status("Looking for a shared canvas...")
			found, err := mpnet.Browse(ctx, browseTimeout)
			if err != nil {
				log.Printf("[VIEW] %v", err)
				status(err.Error())
				return
			}
			addr = found
		}

		c, err := mpnet.Dial(ctx, addr)
		if err != nil {
			log.Printf("[VIEW] %v", err)
			status(fmt.Sprintf("Connection failed: %v", err))
			return
		}
		defer c.Close()
		status("Connected to " + c.Addr())

		err = c.Run(func(op state.Op) {
			fyne.DoAndWait(func() {
				if err := eng.Apply(op); err != nil {
					log.Printf("[VIEW] %v", err)
				}
				a.Sync()
			})
		})
		if err != nil {
			log.Printf("[VIEW] %v", err)
			status(err.Error())
			return
		}
		status("Host closed the canvas")
	}()

	a.Run()
}

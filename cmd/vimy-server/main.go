// Command vimy-server is the authoritative simulation process: it loads a
// map and a deployment, runs the tick scheduler on a fixed-rate ticker, and
// serves the REQ/REP command channel and PUB/SUB broadcast channel over
// TCP (§6 CLI).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/deployment"
	"github.com/nstehr/vimy/vimy-core/ipc"
	"github.com/nstehr/vimy/vimy-core/replication"
	"github.com/nstehr/vimy/vimy-core/scheduler"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝
██║   ██║██║██╔████╔██║ ╚████╔╝
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝

Tactical infantry simulation server`

type options struct {
	ServerRepAddress string   `long:"server-rep-address" description:"REQ/REP command channel address" default:"tcp://0.0.0.0:4255"`
	ServerPubAddress string   `long:"server-pub-address" description:"PUB/SUB broadcast channel address" default:"tcp://0.0.0.0:4256"`
	SideAControl     []string `long:"side-a-control" description:"spawn zone name side A may deploy/contest (repeatable)"`
	SideBControl     []string `long:"side-b-control" description:"spawn zone name side B may deploy/contest (repeatable)"`

	Args struct {
		MapName        string `positional-arg-name:"MAP_NAME" description:"path to the map file"`
		DeploymentFile string `positional-arg-name:"DEPLOYMENT_FILE" description:"path to the deployment file"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "vimy-server"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	mapFile, err := os.Open(opts.Args.MapName)
	if err != nil {
		return fmt.Errorf("open map file: %w", err)
	}
	defer mapFile.Close()
	m, err := worldmap.Decode(mapFile)
	if err != nil {
		return fmt.Errorf("load map %q: %w", opts.Args.MapName, err)
	}

	deployFile, err := os.Open(opts.Args.DeploymentFile)
	if err != nil {
		return fmt.Errorf("open deployment file: %w", err)
	}
	defer deployFile.Close()
	depl, err := deployment.Decode(deployFile)
	if err != nil {
		return fmt.Errorf("decode deployment %q: %w", opts.Args.DeploymentFile, err)
	}
	state, err := deployment.Load(depl)
	if err != nil {
		return fmt.Errorf("load deployment %q: %w", opts.Args.DeploymentFile, err)
	}

	cfg := config.Default()
	engine, err := scheduler.NewEngine(m, cfg)
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	broadcaster := ipc.NewBroadcaster()
	srv := replication.NewServer(state, cfg, engine, broadcaster)

	aZones := make([]worldmap.SpawnZoneName, len(opts.SideAControl))
	for i, z := range opts.SideAControl {
		aZones[i] = worldmap.SpawnZoneName(z)
	}
	bZones := make([]worldmap.SpawnZoneName, len(opts.SideBControl))
	for i, z := range opts.SideBControl {
		bZones[i] = worldmap.SpawnZoneName(z)
	}
	srv.SetControl(replication.LoadControl{ASpawnZones: aZones, BSpawnZones: bZones})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repListener, err := net.Listen("tcp", stripScheme(opts.ServerRepAddress))
	if err != nil {
		return fmt.Errorf("listen on rep address %q: %w", opts.ServerRepAddress, err)
	}
	defer repListener.Close()
	slog.Info("listening for commands", "address", opts.ServerRepAddress)

	pubListener, err := net.Listen("tcp", stripScheme(opts.ServerPubAddress))
	if err != nil {
		return fmt.Errorf("listen on pub address %q: %w", opts.ServerPubAddress, err)
	}
	defer pubListener.Close()
	slog.Info("listening for subscribers", "address", opts.ServerPubAddress)

	go replication.ServeCommands(ctx, repListener, srv)
	go broadcaster.AcceptSubscribers(ctx, pubListener)

	srv.State.AConnected = false
	srv.State.BConnected = false

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TargetFPS))
	defer ticker.Stop()

	slog.Info("simulation started", "target_fps", cfg.TargetFPS)
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return nil
		case <-ticker.C:
			srv.Tick(false)
		}
	}
}

// stripScheme removes the "tcp://" scheme §6's address flags carry so the
// result can be passed straight to net.Listen/net.Dial.
func stripScheme(addr string) string {
	return strings.TrimPrefix(addr, "tcp://")
}

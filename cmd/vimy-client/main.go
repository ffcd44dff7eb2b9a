// Command vimy-client is the headless reference client (§6 CLI): it dials a
// running vimy-server's REQ/REP and PUB/SUB addresses (or embeds a server
// in-process for --embedded-server), keeps a Mirror in lockstep with the
// broadcast channel, and issues the startup inputs the CLI flags describe.
// It stands in for the real GUI client the original game ships, the way the
// teacher's own cmd tools are thin CLI shells around a library package.
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

	"github.com/nstehr/vimy/vimy-core/battle"
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

Tactical infantry simulation client`

type options struct {
	EmbeddedServer   bool     `long:"embedded-server" description:"run the authoritative server in-process instead of dialing one"`
	ServerRepAddress string   `long:"server-rep-address" description:"REQ/REP command channel address" default:"tcp://0.0.0.0:4255"`
	ServerPubAddress string   `long:"server-pub-address" description:"PUB/SUB broadcast channel address" default:"tcp://0.0.0.0:4256"`
	Side             string   `long:"side" description:"which side this client plays (A or B)"`
	SideAControl     []string `long:"side-a-control" description:"spawn zone name side A may deploy/contest (repeatable)"`
	SideBControl     []string `long:"side-b-control" description:"spawn zone name side B may deploy/contest (repeatable)"`
	InitSync         bool     `long:"init-sync" description:"request a full resync immediately after connecting"`

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
	parser.Name = "vimy-client"
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
	side, err := parseSide(opts.Side)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repAddr := stripScheme(opts.ServerRepAddress)
	pubAddr := stripScheme(opts.ServerPubAddress)

	if opts.EmbeddedServer {
		stopServer, err := startEmbeddedServer(ctx, opts, repAddr, pubAddr)
		if err != nil {
			return fmt.Errorf("start embedded server: %w", err)
		}
		defer stopServer()
		// give the accept loops a moment to come up before dialing them.
		time.Sleep(50 * time.Millisecond)
	}

	repConn, err := net.Dial("tcp", repAddr)
	if err != nil {
		return fmt.Errorf("dial rep address %q: %w", opts.ServerRepAddress, err)
	}
	defer repConn.Close()

	pubConn, err := net.Dial("tcp", pubAddr)
	if err != nil {
		return fmt.Errorf("dial pub address %q: %w", opts.ServerPubAddress, err)
	}
	defer pubConn.Close()

	cfg := config.Default()
	mirror := replication.NewMirror(cfg)

	if len(opts.SideAControl) > 0 || len(opts.SideBControl) > 0 {
		control := replication.LoadControl{
			ASpawnZones: zoneNames(opts.SideAControl),
			BSpawnZones: zoneNames(opts.SideBControl),
		}
		if err := replication.SendInput(repConn, replication.InputMessage{Kind: replication.InLoadControl, Control: &control}); err != nil {
			return fmt.Errorf("send load control: %w", err)
		}
	}

	if opts.InitSync {
		if err := replication.SendInput(repConn, replication.RequireCompleteSyncMessage()); err != nil {
			return fmt.Errorf("send init sync: %w", err)
		}
	}

	slog.Info("client connected", "side", side, "rep", opts.ServerRepAddress, "pub", opts.ServerPubAddress)

	return replication.SubscribeLoop(ctx, pubConn, mirror)
}

// startEmbeddedServer loads the map and deployment named on the command
// line and runs an authoritative server loop in background goroutines,
// exactly the way cmd/vimy-server's run does, so --embedded-server gives a
// single process both roles for local testing.
func startEmbeddedServer(ctx context.Context, opts options, repAddr, pubAddr string) (func(), error) {
	mapFile, err := os.Open(opts.Args.MapName)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer mapFile.Close()
	m, err := worldmap.Decode(mapFile)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", opts.Args.MapName, err)
	}

	deployFile, err := os.Open(opts.Args.DeploymentFile)
	if err != nil {
		return nil, fmt.Errorf("open deployment file: %w", err)
	}
	defer deployFile.Close()
	depl, err := deployment.Decode(deployFile)
	if err != nil {
		return nil, fmt.Errorf("decode deployment %q: %w", opts.Args.DeploymentFile, err)
	}
	state, err := deployment.Load(depl)
	if err != nil {
		return nil, fmt.Errorf("load deployment %q: %w", opts.Args.DeploymentFile, err)
	}

	cfg := config.Default()
	engine, err := scheduler.NewEngine(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	broadcaster := ipc.NewBroadcaster()
	srv := replication.NewServer(state, cfg, engine, broadcaster)
	srv.SetControl(replication.LoadControl{
		ASpawnZones: zoneNames(opts.SideAControl),
		BSpawnZones: zoneNames(opts.SideBControl),
	})

	repListener, err := net.Listen("tcp", repAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on rep address %q: %w", repAddr, err)
	}
	pubListener, err := net.Listen("tcp", pubAddr)
	if err != nil {
		repListener.Close()
		return nil, fmt.Errorf("listen on pub address %q: %w", pubAddr, err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	go replication.ServeCommands(serverCtx, repListener, srv)
	go broadcaster.AcceptSubscribers(serverCtx, pubListener)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TargetFPS))
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-serverCtx.Done():
				return
			case <-ticker.C:
				srv.Tick(false)
			}
		}
	}()

	return func() {
		cancel()
		repListener.Close()
		pubListener.Close()
	}, nil
}

func zoneNames(names []string) []worldmap.SpawnZoneName {
	zones := make([]worldmap.SpawnZoneName, len(names))
	for i, n := range names {
		zones[i] = worldmap.SpawnZoneName(n)
	}
	return zones
}

func parseSide(s string) (string, error) {
	switch strings.ToUpper(s) {
	case "A", "B":
		return strings.ToUpper(s), nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("unknown --side %q: expected A or B", s)
	}
}

// stripScheme removes the "tcp://" scheme §6's address flags carry so the
// result can be passed straight to net.Listen/net.Dial.
func stripScheme(addr string) string {
	return strings.TrimPrefix(addr, "tcp://")
}

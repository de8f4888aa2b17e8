package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbehnke/crsfbridge/internal/bridge"
	"github.com/dbehnke/crsfbridge/internal/config"
	"github.com/dbehnke/crsfbridge/internal/database"
	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
	"github.com/dbehnke/crsfbridge/internal/rc"
	"github.com/dbehnke/crsfbridge/internal/registry"
	"github.com/dbehnke/crsfbridge/internal/timing"
	"github.com/dbehnke/crsfbridge/internal/transport"
)

const VERSION = "1.0.0-go"

// Bridge owns everything with a lifetime: the two serial links, the
// optional device database, and the polling gateway that drives them.
type Bridge struct {
	config     *config.Config
	hostLink   *transport.HostLink
	modulePort *transport.ModulePort
	gateway    *bridge.Gateway

	db *database.DB
}

// NewBridge loads the configuration and wires the full frame path:
// commanding link -> channel store / pass-through queue -> scheduler ->
// module link, and module link -> telemetry forwarder -> commanding link.
func NewBridge(configFile string) (*Bridge, error) {
	cfg := config.NewConfig(configFile)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	profile, err := rc.ParseProfile(cfg.GetChannelProfile())
	if err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	hostLink, err := transport.OpenHostLink(cfg.GetHostPort(), int(cfg.GetHostBaud()), cfg.GetDebug())
	if err != nil {
		return nil, err
	}

	modulePort, err := transport.OpenModulePort(cfg.GetModulePort(), int(cfg.GetModuleBaud()), cfg.GetDebug())
	if err != nil {
		hostLink.Close()
		return nil, err
	}

	// Optional device registry database
	db, deviceRegistry := initializeRegistry(cfg)

	clock := bridge.MicrosClock()
	channels := rc.NewChannels(profile)
	failsafe := rc.NewFailsafe(cfg.GetFailsafeTimeoutUs())
	moduleSync := timing.NewModuleSync(cfg.GetDefaultPeriodUs(), cfg.GetMinPeriodUs(), cfg.GetMaxPeriodUs())
	queue := &bridge.OutputQueue{}

	moduleDispatch := bridge.NewModuleDispatch(moduleSync, hostLink, deviceRegistry, clock, cfg.GetDebug())
	hostDispatch := bridge.NewHostDispatch(channels, failsafe, queue, clock, cfg.GetDebug())

	moduleAsm := crsf.NewAssembler(moduleDispatch)
	hostAsm := crsf.NewAssembler(hostDispatch)

	task := bridge.NewTask(modulePort, moduleAsm, moduleSync, channels, failsafe, queue, clock)

	gateway := bridge.NewGateway(hostLink, hostAsm, moduleAsm, task,
		moduleDispatch, hostDispatch,
		time.Duration(cfg.GetStatsInterval())*time.Second)

	return &Bridge{
		config:     cfg,
		hostLink:   hostLink,
		modulePort: modulePort,
		gateway:    gateway,
		db:         db,
	}, nil
}

// Run drives the gateway until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	log.Printf("CRSF Bridge v%s starting", VERSION)
	log.Printf("Host: %s @ %d baud", b.config.GetHostPort(), b.config.GetHostBaud())
	log.Printf("Module: %s @ %d baud", b.config.GetModulePort(), b.config.GetModuleBaud())
	log.Printf("Channels: %s profile, failsafe %dus",
		b.config.GetChannelProfile(), b.config.GetFailsafeTimeoutUs())

	defer func() {
		b.modulePort.Close()
		b.hostLink.Close()
		if b.db != nil {
			b.db.Close()
		}
	}()

	log.Printf("Bridge running - press Ctrl+C to stop")
	return b.gateway.Run(ctx)
}

// initializeRegistry creates the device registry, backed by SQLite when the
// database is enabled. A database failure degrades to a memory-only
// registry rather than aborting the bridge.
func initializeRegistry(cfg *config.Config) (*database.DB, *registry.Registry) {
	if !cfg.GetDatabaseEnabled() {
		return nil, registry.New(nil, cfg.GetDebug())
	}

	dbConfig := database.Config{
		Path: cfg.GetDatabasePath(),
	}

	db, err := database.NewDB(dbConfig, log.New(os.Stdout, "[DB] ", log.LstdFlags))
	if err != nil {
		log.Printf("Failed to initialize device database: %v", err)
		log.Printf("Continuing with memory-only device registry...")
		return nil, registry.New(nil, cfg.GetDebug())
	}

	repo := database.NewDeviceRepository(db.GetDB())
	return db, registry.New(repo, cfg.GetDebug())
}

func main() {
	var (
		configFile = flag.String("config", getDefaultConfig(), "Configuration file path")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("CRSF Bridge v%s\n", VERSION)
		return
	}

	// Handle non-flag arguments (config file)
	if flag.NArg() > 0 {
		*configFile = flag.Arg(0)
	}

	log.SetFlags(log.LstdFlags)
	log.Printf("CRSF Bridge v%s starting with config: %s", VERSION, *configFile)

	b, err := NewBridge(*configFile)
	if err != nil {
		log.Fatalf("Failed to create bridge: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := b.Run(ctx); err != nil {
		log.Fatalf("Bridge error: %v", err)
	}

	log.Printf("CRSF Bridge stopped")
}

// getDefaultConfig returns the default configuration file path
func getDefaultConfig() string {
	if _, err := os.Stat("crsfbridge.ini"); err == nil {
		return "crsfbridge.ini"
	}

	systemConfig := "/etc/crsfbridge.ini"
	if _, err := os.Stat(systemConfig); err == nil {
		return systemConfig
	}

	return "crsfbridge.ini"
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilecore/internal/config"
	"github.com/1broseidon/tilecore/internal/daemon"
	"github.com/1broseidon/tilecore/internal/ipc"
	"github.com/1broseidon/tilecore/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "exec":
		os.Exit(runExec(os.Args[2:]))
	case "replay":
		os.Exit(runReplay(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tilecore <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the tilecore daemon (foreground)")
	fmt.Fprintln(w, "  status              Show the window manager state")
	fmt.Fprintln(w, "  layout              Show the visible windows and their geometry")
	fmt.Fprintln(w, "  exec <op>           Run one engine operation on the daemon")
	fmt.Fprintln(w, "  replay <script>     Replay a YAML command script")
	fmt.Fprintln(w, "  reload              Ask the daemon to re-read its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tilecore <command> --help' for command-specific options.")
}

// parseFlags parses args and maps the outcome to an exit code; ok is false
// when the caller should return code.
func parseFlags(fs *pflag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func newFlagSet(name string, usage ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		for _, line := range usage {
			fmt.Fprintln(os.Stderr, line)
		}
		if fs.HasFlags() {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Options:")
			fs.PrintDefaults()
		}
	}
	return fs
}

func newClient(socket string) *ipc.Client {
	if socket == "" {
		return ipc.NewClient()
	}
	return ipc.NewClientWithSocket(socket)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon",
		"Usage: tilecore daemon [options]",
		"",
		"Run the engine in the foreground, serve IPC requests and, when x11.enabled",
		"is set, apply layouts to the X11 display. SIGHUP reloads the config.")
	configPath := fs.StringP("config", "c", "", "Config file path (default: ~/.config/tilecore/config.yaml)")
	socket := fs.String("socket", "", "IPC socket path (default: $XDG_RUNTIME_DIR/tilecore.sock)")
	watch := fs.Bool("watch", true, "Reload the config when the file changes")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Sync()

	d, err := daemon.New(cfg, daemon.Options{
		ConfigPath: *configPath,
		SocketPath: *socket,
		Watch:      *watch,
	}, logger)
	if err != nil {
		logger.Error("failed to start daemon", zap.Error(err))
		return 1
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := d.Reload(); err != nil {
					logger.Error("reload failed", zap.Error(err))
				} else {
					logger.Info("configuration reloaded")
				}
			}
		}
	}()

	if err := d.Run(ctx); err != nil {
		logger.Error("daemon stopped", zap.Error(err))
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := newFlagSet("status",
		"Usage: tilecore status [--json] [--socket PATH]",
		"",
		"Show the daemon's window manager state via IPC.")
	asJSON := fs.Bool("json", false, "Print JSON even on a terminal")
	socket := fs.String("socket", "", "IPC socket path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	st, err := newClient(*socket).Status(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := newPrinter(os.Stdout, *asJSON).status(st); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	fs := newFlagSet("layout",
		"Usage: tilecore layout [--json] [--socket PATH]",
		"",
		"Show the visible windows back to front with their geometry.")
	asJSON := fs.Bool("json", false, "Print JSON even on a terminal")
	socket := fs.String("socket", "", "IPC socket path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "layout takes no arguments")
		fs.Usage()
		return 2
	}

	layout, err := newClient(*socket).Layout(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := newPrinter(os.Stdout, *asJSON).layout(*layout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload",
		"Usage: tilecore reload [--socket PATH]",
		"",
		"Ask the daemon to re-read its config file.")
	socket := fs.String("socket", "", "IPC socket path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if err := newClient(*socket).Reload(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  tilecore config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  tilecore config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := newFlagSet("validate", "Usage: tilecore config validate [--path PATH]")
		path := fs.String("path", "", "Config file path (default: ~/.config/tilecore/config.yaml)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := newFlagSet("print", "Usage: tilecore config print [--path PATH] [--defaults]")
		path := fs.String("path", "", "Config file path (default: ~/.config/tilecore/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			var err error
			if cfg, err = loadConfig(*path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

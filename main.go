// Command zxdeck runs the ZX-calculus optimization pass over OpenQASM
// circuits, either interactively or as a one-shot report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/markkurossi/tabulate"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"zxdeck/config"
	"zxdeck/passmanager"
	"zxdeck/zxpass"
)

var (
	configPath = flag.String(
		"config",
		"",
		"path to a YAML config file",
	)
	reportMode = flag.Bool(
		"report",
		false,
		"print the pass report and the optimized circuit instead of starting the UI",
	)
	jsonOut = flag.Bool(
		"json",
		false,
		"with -report, print the report as JSON",
	)
	outPath = flag.String(
		"o",
		"",
		"with -report, write the optimized circuit to this file",
	)
	watch = flag.Bool(
		"watch",
		false,
		"re-run the pass whenever the input file changes",
	)
	debug = flag.Bool(
		"debug",
		false,
		"enable debug logging",
	)
	listPlugins = flag.Bool(
		"plugins",
		false,
		"list registered optimization plugins and exit",
	)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [circuit.qasm]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "zxdeck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so its logs go to a file.
	logger, closer, err := cfg.CreateLogger(*debug, !*reportMode && !*listPlugins)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer logger.Sync()

	if *listPlugins {
		printPlugins(os.Stdout, passmanager.Default)
		return nil
	}

	if cfg.Metrics.ListenAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Error("metrics server stopped", zap.Error(http.ListenAndServe(cfg.Metrics.ListenAddr, mux)))
		}()
	}

	a, err := newAnalyzer(cfg.Optimizer, passmanager.Default, cfg.UI.MaxSimQubits, logger)
	if err != nil {
		return err
	}

	path := flag.Arg(0)
	src, err := readSource(path, *reportMode)
	if err != nil {
		return err
	}
	if *watch && (path == "" || path == "-") {
		return errors.New("-watch needs an input file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *reportMode {
		return runReport(ctx, a, src, path, logger)
	}

	p := tea.NewProgram(
		initialModel(a, src, path, cfg.UI.ShowProbabilities),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if *watch {
		err := watchFile(ctx, path, logger,
			func(s string) { p.Send(sourceChangedMsg{src: s}) },
			func(err error) { p.Send(watchErrMsg{err: err}) },
		)
		if err != nil {
			return err
		}
	}
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// readSource reads the circuit from path, or from stdin for "-" (and, in
// report mode, when no path is given).
func readSource(path string, report bool) (string, error) {
	switch {
	case path == "-" || (path == "" && report):
		data, err := io.ReadAll(os.Stdin)
		return string(data), errors.Wrap(err, "read stdin")
	case path == "":
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read circuit")
	}
	return string(data), nil
}

func runReport(ctx context.Context, a *analyzer, src, path string, logger *zap.Logger) error {
	if err := writeReport(os.Stdout, a.analyze(src), *jsonOut, *outPath); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	changes := make(chan string, 1)
	err := watchFile(ctx, path, logger,
		func(s string) { changes <- s },
		func(err error) { logger.Warn("watch error", zap.Error(err)) },
	)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-changes:
			if err := writeReport(os.Stdout, a.analyze(s), *jsonOut, *outPath); err != nil {
				// Keep watching; the next save may fix the circuit.
				fmt.Fprintf(os.Stderr, "zxdeck: %v\n", err)
			}
		}
	}
}

// jsonReport is the -json output.
type jsonReport struct {
	Report     *zxpass.Report `json:"report,omitempty"`
	Equivalent *bool          `json:"equivalent,omitempty"`
	QASM       string         `json:"qasm"`
}

// writeReport prints the outcome of one analysis. The optimized circuit goes
// to out when set, otherwise after the report.
func writeReport(w io.Writer, res *analysis, asJSON bool, out string) error {
	if res.err != nil {
		return res.err
	}
	if out != "" {
		if err := os.WriteFile(out, []byte(res.output), 0644); err != nil {
			return errors.Wrap(err, "write output")
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(jsonReport{
			Report:     res.report,
			Equivalent: res.equivalent,
			QASM:       res.output,
		}, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode report")
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if res.report != nil {
		res.report.Print(w)
	}
	if res.equivalent != nil {
		fmt.Fprintf(w, "equivalent: %t\n", *res.equivalent)
	}
	if out == "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, res.output)
	}
	return nil
}

func printPlugins(w io.Writer, r *passmanager.Registry) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Stage").SetAlign(tabulate.ML)
	tab.Header("Plugin").SetAlign(tabulate.ML)
	tab.Header("Version").SetAlign(tabulate.MR)
	for _, info := range r.Plugins(passmanager.StageOptimization) {
		row := tab.Row()
		row.Column(string(info.Stage))
		row.Column(info.Name)
		row.Column(info.Version.String())
	}
	tab.Print(w)
}

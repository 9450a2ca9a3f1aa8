package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/proflab-dev/e2e-runner/pkg/cases"
	"github.com/proflab-dev/e2e-runner/pkg/config"
	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/driver/bridge"
	"github.com/proflab-dev/e2e-runner/pkg/driver/fake"
	"github.com/proflab-dev/e2e-runner/pkg/logger"
	"github.com/proflab-dev/e2e-runner/pkg/report"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run a suite definition against the application under test",
	ArgsUsage: "[suite.yaml]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Suite definition file (defaults to ./suite.yaml)",
		},
		&cli.StringFlag{
			Name:    "driver",
			Aliases: []string{"d"},
			Usage:   "Backend driver (bridge, fake); overrides the suite definition",
			EnvVars: []string{"E2E_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "bridge-url",
			Usage:   "Accessibility bridge agent URL",
			Value:   "http://127.0.0.1:8123",
			EnvVars: []string{"E2E_BRIDGE_URL"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report output directory",
			Value:   "e2e-report",
		},
		&cli.BoolFlag{
			Name:    "dev-mode",
			Usage:   "Expect the application to be open already and leave it running afterwards",
			EnvVars: []string{"E2E_DEV_MODE"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Enable verbose logging",
			EnvVars: []string{"E2E_VERBOSE"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Default find/wait timeout; overrides the suite definition",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write logs to a file instead of the console",
		},
	},
	Action: runAction,
}

var casesCommand = &cli.Command{
	Name:  "cases",
	Usage: "List the registered case types",
	Action: func(c *cli.Context) error {
		for _, name := range cases.Registered() {
			fmt.Println(name)
		}
		return nil
	},
}

func runAction(c *cli.Context) error {
	if err := logger.Init(c.String("log-file"), c.Bool("verbose")); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	caseList, err := cases.BuildAll(cfg.Cases)
	if err != nil {
		return err
	}

	backend, err := buildBackend(c, cfg)
	if err != nil {
		return err
	}

	caseNames := make([]string, len(caseList))
	for i, tc := range caseList {
		caseNames[i] = tc.Name()
	}
	reporter, err := report.NewWriter(c.String("output"), cfg.Suite, caseNames)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	s := suite.New(cfg.Suite, backend, caseList, suiteOptions(c, cfg, reporter))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.Execute(ctx); err != nil {
		logger.Error("suite aborted: %v", err)
	}
	if code := s.ExitCode(); code != 0 {
		return cli.Exit(fmt.Sprintf("suite %q failed (report: %s)", cfg.Suite, reporter.Dir()), code)
	}
	fmt.Printf("suite %q passed (report: %s)\n", cfg.Suite, reporter.Dir())
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	if path := c.Args().First(); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(".")
}

func buildBackend(c *cli.Context, cfg *config.Config) (core.Backend, error) {
	driver := cfg.Driver
	if c.IsSet("driver") {
		driver = c.String("driver")
	}
	switch driver {
	case "", "bridge":
		url := cfg.BridgeURL
		if url == "" || c.IsSet("bridge-url") {
			url = c.String("bridge-url")
		}
		return bridge.New(url), nil
	case "fake":
		// Smoke mode: an empty application that only has its main window.
		return fake.New(fake.NewNode("Window", cfg.WindowTitle)), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s (use bridge or fake)", driver)
	}
}

func suiteOptions(c *cli.Context, cfg *config.Config, reporter *report.Writer) suite.Options {
	opts := suite.Options{
		WindowTitle: cfg.WindowTitle,
		Wait: wait.Options{
			Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
			Interval: time.Duration(cfg.IntervalMs) * time.Millisecond,
		},
		LaunchTimeout: time.Duration(cfg.LaunchTimeoutMs) * time.Millisecond,
		DevMode:       cfg.DevMode || c.Bool("dev-mode"),
		Reporter:      reporter,
	}
	if c.IsSet("timeout") {
		opts.Wait.Timeout = c.Duration("timeout")
	}
	switch cfg.Artifacts {
	case "always":
		opts.Artifacts = core.ArtifactAlways
	case "never":
		opts.Artifacts = core.ArtifactNever
	default:
		opts.Artifacts = core.ArtifactOnFailure
	}
	if cfg.OnError == "continue" {
		opts.Policy = suite.PolicyContinue
	}
	return opts
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	keyfigures "github.com/eticeo/key-figures"
	"github.com/eticeo/key-figures/pkg/config"
	"github.com/eticeo/key-figures/pkg/counter"
	"github.com/eticeo/key-figures/pkg/page"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	logLevel   string

	inputSource string
	outputFile  string
	reportFile  string
	delay       time.Duration
	showFrames  bool

	changes []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "key-figures",
		Short: "Play the key figures counter animation on a course page",
		Long:  "A tool that runs the counting-up animation of the key figures block on a rendered page, and the visibility rules of its settings form",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: key-figures.yaml in ./config, . or /etc/key-figures/)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: none, normal, debug (overrides the config file)")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "Animate every key figure of a page and report the result",
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVarP(&inputSource, "input", "i", "", "Page file or http(s) URL (required)")
	animateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the page after the animation to this file")
	animateCmd.Flags().StringVarP(&reportFile, "report", "r", "KEY_FIGURES_REPORT.md", "Output markdown report")
	animateCmd.Flags().DurationVarP(&delay, "delay", "d", 0, "Pause between ticks (default from config, 10ms)")
	animateCmd.Flags().BoolVar(&showFrames, "frames", false, "Print every rendered frame")
	animateCmd.MarkFlagRequired("input")

	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Apply the settings form visibility rules to a form page",
		RunE:  runForm,
	}
	formCmd.Flags().StringVarP(&inputSource, "input", "i", "", "Form page file or http(s) URL (required)")
	formCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the resulting page to this file (default: stdout)")
	formCmd.Flags().StringSliceVar(&changes, "changed", nil, "Comma-separated id=value changes applied after the form opened, in order (a bare id reruns its rule)")
	formCmd.MarkFlagRequired("input")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("key-figures version %s\n", page.Version)
		},
	}

	rootCmd.AddCommand(animateCmd, formCmd, versionCmd)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger and base options shared by
// every command.
func setup() (*zap.SugaredLogger, keyfigures.Options, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, keyfigures.Options{}, err
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}

	logger := cfg.Logger.Build().Sugar()

	opts := keyfigures.Options{
		Source:           inputSource,
		Delay:            cfg.Counter.Delay,
		ContainerClasses: cfg.Counter.ContainerClasses,
		NumberClasses:    cfg.Counter.NumberClasses,
		Client: page.NewClient(
			page.WithTimeout(cfg.HTTP.Timeout),
			page.WithRetries(cfg.HTTP.Retries),
		),
		Logger: logger,
	}
	return logger, opts, nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	faint := color.New(color.Faint)

	logger, opts, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if delay > 0 {
		opts.Delay = delay
	}
	if showFrames {
		opts.OnFrame = func(f counter.Frame) {
			faint.Printf("%-24s %5d  ", f.ElementID, f.Tick)
			fmt.Println(strings.Join(strings.Fields(f.Render), " "))
		}
	}

	cyan.Println("\n🔢 Key Figures")
	cyan.Println("==============")
	cyan.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := keyfigures.Run(ctx, opts)
	if err != nil {
		return err
	}

	report := result.Report
	cyan.Println("\n📊 Animation Summary:")
	fmt.Printf("  • Number elements: %d\n", len(report.Elements))
	fmt.Printf("  • Animated: %d\n", report.Animated())
	fmt.Printf("  • Longest animation: %d ticks (%s)\n", report.MaxTicks(), time.Duration(report.MaxTicks())*opts.Delay)

	if outputFile != "" {
		if err := writeFile(outputFile, result.HTML); err != nil {
			return err
		}
	}
	if err := writeFile(reportFile, result.Markdown); err != nil {
		return err
	}

	green.Printf("\n✨ Animated %d key figure(s), report written to %s\n\n", report.Animated(), reportFile)
	return nil
}

func runForm(cmd *cobra.Command, args []string) error {
	logger, opts, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := keyfigures.ApplyForm(cmd.Context(), opts, changes...)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(result.HTML)
		return nil
	}
	if err := writeFile(outputFile, result.HTML); err != nil {
		return err
	}
	logger.Infof("Applied %d change(s)", len(result.Handled))
	return nil
}

func writeFile(path, content string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	green.Printf("\n💾 Writing to %s... ", path)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		red.Println("✗")
		return fmt.Errorf("write %s: %w", path, err)
	}
	green.Println("✓")
	return nil
}

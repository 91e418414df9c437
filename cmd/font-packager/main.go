package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/webfont-packager/internal/batch"
	"github.com/handiism/webfont-packager/internal/catalog"
	"github.com/handiism/webfont-packager/internal/config"
	"github.com/handiism/webfont-packager/internal/http"
	"github.com/handiism/webfont-packager/internal/packager"
)

func main() {
	// Command line flags
	var (
		outputFlag  = flag.String("output", "", "Packages directory (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file (.json, .yaml or .yml)")
		allFlag     = flag.Bool("all", false, "Package every font in the catalog")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	ids := batch.ParseIDs(flag.Args()...)

	// CLI mode - require a font ID
	if len(ids) == 0 && !*allFlag {
		fmt.Println("⚠️  Please supply a font ID")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  font-packager <font-id> [font-id...] [options]")
		fmt.Println("  font-packager -all [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: font-packager-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.PackagesPath = *outputFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	onProgress := func(event packager.ProgressEvent) {
		if event.Level == packager.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case packager.LevelError:
			prefix = "❌ "
		case packager.LevelWarning:
			prefix = "⚠️  "
		case packager.LevelSuccess:
			prefix = "✅ "
		case packager.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	}

	// A single font runs the pipeline directly.
	if len(ids) == 1 && !*allFlag {
		p := packager.NewPackager(settings, onProgress)
		if _, err := p.Package(ctx, ids[0]); err != nil {
			if ctx.Err() != nil {
				fmt.Println("\nPackaging cancelled.")
				os.Exit(130)
			}
			fmt.Fprintf(os.Stderr, "Error packaging %s: %v\n", ids[0], err)
			os.Exit(1)
		}
		return
	}

	if *allFlag {
		cat := catalog.NewClient(settings.APIBaseURL, http.NewClient(settings.ToClientConfig()))

		var err error
		ids, err = batch.AllFontIDs(ctx, cat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing fonts: %v\n", err)
			os.Exit(1)
		}
	}

	p := packager.NewPackager(settings, nil)
	scheduler := batch.NewScheduler(p, settings.MaxConcurrentFonts, onProgress)
	summary := scheduler.Run(ctx, ids)

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Packaged %d, up to date %d, failed %d of %d fonts\n",
		summary.Packaged, summary.UpToDate, len(summary.Failed), summary.Total)
	if summary.FailedDownloads > 0 {
		fmt.Printf("   (%d font files could not be downloaded)\n", summary.FailedDownloads)
	}

	if ctx.Err() != nil {
		os.Exit(130)
	}
	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
}

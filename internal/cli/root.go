// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/cache"
	"github.com/aidanlsb/qref/internal/config"
	"github.com/aidanlsb/qref/internal/fetch"
	"github.com/aidanlsb/qref/internal/platform"
	"github.com/aidanlsb/qref/internal/render"
	"github.com/aidanlsb/qref/internal/resolver"
	"github.com/aidanlsb/qref/internal/ui"
)

var (
	// Global flags
	configPathFlag string
	verboseFlag    bool
	noColorFlag    bool

	// Lookup flags
	platformFlag   string
	languageFlag   string
	customPagesDir string
	updateFlag     bool
	rawFlag        bool

	// Resolved at startup
	cfg *config.Config
)

// rootCmd looks up and renders the page for a command.
var rootCmd = &cobra.Command{
	Use:   "qref <command> [subcommand...]",
	Short: "Concise, example-driven help pages in your terminal",
	Long: `qref shows community-authored help pages for console commands: a short
description plus annotated example invocations, styled for the terminal.

Pages come from a locally cached snapshot of the page archive, refreshed on
demand (qref update) or automatically when the cache goes stale.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			log.SetLevel(log.DebugLevel)
		}

		var err error
		if configPathFlag != "" {
			cfg, err = config.LoadFrom(configPathFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		requested := platform.Other
		if platformFlag != "" {
			p, ok := platform.Parse(platformFlag)
			if !ok {
				return fmt.Errorf("unknown platform %q (try linux, osx, windows, sunos, android, common)", platformFlag)
			}
			requested = p
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := maybeUpdate(cmd.Context(), store, updateFlag); err != nil {
			return err
		}

		customDir := customPagesDir
		if customDir == "" {
			customDir = cfg.Cache.CustomPagesDir
		}

		r := resolver.New(store, platform.Host(), config.LanguagePreferences(languageFlag))
		res, found := r.Resolve(resolver.Query{
			Command:   args,
			Platform:  requested,
			CustomDir: customDir,
		})
		if !found {
			name := resolver.PageName(args)
			fmt.Fprintln(os.Stderr, ui.Infof("no page available for %q", name))
			fmt.Fprintln(os.Stderr, ui.Hint("Run 'qref update' to refresh the page cache."))
			return errNotFound
		}

		log.Debug("resolved page", "path", res.Path, "custom", res.FromCustom)
		return printPage(res.Path)
	},
}

// openStore resolves the cache directory and wraps it in a Store.
func openStore() (*cache.Store, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.New(dir), nil
}

// maybeUpdate applies the staleness policy before a lookup, fetching or
// warning as configured. explicit forces the fetch.
func maybeUpdate(ctx context.Context, store *cache.Store, explicit bool) error {
	last, ok := store.LastUpdated()
	action := cache.ShouldUpdate(last, ok, cfg.MaxAge(), cfg.Cache.AutoUpdate, explicit, time.Now())

	switch action {
	case cache.Update:
		return runUpdate(ctx, store)
	case cache.WarnOnly:
		if !ok {
			fmt.Fprintln(os.Stderr, ui.Warning("page cache is empty; run 'qref update' to download it"))
		} else {
			age := time.Since(last)
			fmt.Fprintln(os.Stderr, ui.Warningf("page cache is %d days old; run 'qref update' to refresh it", int(age.Hours()/24)))
		}
	}
	return nil
}

// runUpdate downloads the archive and swaps it into the store.
func runUpdate(ctx context.Context, store *cache.Store) error {
	url := cfg.Cache.ArchiveURL
	if url == "" {
		url = config.DefaultArchiveURL
	}
	log.Debug("updating page cache", "url", url)
	return fetch.Update(ctx, fetch.New(), store, url)
}

// printPage renders the page at path to stdout, or dumps the raw source
// with --raw.
func printPage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &cache.IOError{Op: "read page", Path: path, Err: err}
	}

	if rawFlag {
		fmt.Print(string(data))
		return nil
	}

	ss := render.Plain()
	if ui.StylesEnabled(noColorFlag) {
		ss = render.NewStyleSheet(cfg.Style)
	}
	if display := ui.NewDisplayContext(); display.IsTTY {
		ss.Width = display.TermWidth
	}
	fmt.Print(render.RenderText(string(data), ss))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable ANSI styling")

	rootCmd.Flags().StringVarP(&platformFlag, "platform", "p", "", "Platform to search first (linux, osx, windows, sunos, android, common)")
	rootCmd.Flags().StringVarP(&languageFlag, "language", "L", "", "Preferred page language (e.g. fr, pt_BR)")
	rootCmd.Flags().StringVar(&customPagesDir, "custom-pages-dir", "", "Directory of override pages, consulted before the cache")
	rootCmd.Flags().BoolVarP(&updateFlag, "update", "u", false, "Refresh the page cache before the lookup")
	rootCmd.Flags().BoolVarP(&rawFlag, "raw", "r", false, "Print the raw page source without styling")
}

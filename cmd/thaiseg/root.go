package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/thaiseg/dictionary"
	"github.com/npillmayer/thaiseg/internal/cache"
	"github.com/npillmayer/thaiseg/internal/config"
	"github.com/npillmayer/thaiseg/internal/demo"
	"github.com/npillmayer/thaiseg/tokenize"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	loaded    bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "thaiseg",
		Short: "Thai word segmentation",
		Long: "Thai word segmentation. Without a sub-command, segments a demo sentence\n" +
			"with the engines newmm and attacut.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Flags:      cmd.Flags(),
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg, loaded = cfg, true
			setupTracing(cfg.Trace.Level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			seg, closer, err := newSegmenter(cfg)
			if err != nil {
				return err
			}
			defer closer()
			return demo.Run(cmd.Context(), cmd.OutOrStdout(), seg)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newFilesCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// setupTracing installs a tracer logging to stderr with the configured level.
func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(parseTraceLevel(level))
}

func parseTraceLevel(level string) tracing.TraceLevel {
	switch strings.ToLower(level) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

func requireConfig() (config.Config, error) {
	if !loaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// tokenizeOptions translates the configuration into tokenizer options.
func tokenizeOptions(cfg config.Config) ([]tokenize.Option, string, error) {
	opts := []tokenize.Option{
		tokenize.KeepWhitespace(cfg.Tokenize.KeepWhitespace),
		tokenize.AttacutModel(cfg.Attacut.ModelDir),
		tokenize.ORTLibrary(cfg.Runtime.ORTLibraryPath),
		tokenize.APIVersion(cfg.Runtime.APIVersion),
		tokenize.Threshold(cfg.Attacut.Threshold),
	}
	variant := "words: words_th"
	if cfg.Tokenize.Dictionary != "" {
		dict, err := dictionary.LoadFile(cfg.Tokenize.Dictionary)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, tokenize.Dictionary(dict))
		variant = dict.Identifier
	}
	variant = fmt.Sprintf("%s|ws=%v|th=%g|model=%s|ort=%s|api=%d", variant,
		cfg.Tokenize.KeepWhitespace, cfg.Attacut.Threshold,
		cfg.Attacut.ModelDir, cfg.Runtime.ORTLibraryPath, cfg.Runtime.APIVersion)
	return opts, variant, nil
}

// newSegmenter creates a segmenter for the configuration, caching results
// if a cache is configured. The returned function releases the cache.
func newSegmenter(cfg config.Config) (demo.Segmenter, func(), error) {
	opts, variant, err := tokenizeOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	seg := func(ctx context.Context, text, engine string) ([]string, error) {
		return tokenize.WordTokenize(ctx, text, append([]tokenize.Option{tokenize.Engine(engine)}, opts...)...)
	}
	if cfg.Cache.Path == "" {
		return seg, func() {}, nil
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	cached := func(ctx context.Context, text, engine string) ([]string, error) {
		key := cache.Key(engine, variant, text)
		if tokens, found, err := store.Get(key); err == nil && found {
			return tokens, nil
		}
		tokens, err := seg(ctx, text, engine)
		if err != nil {
			return nil, err
		}
		if err = store.Put(key, tokens); err != nil {
			gtrace.CoreTracer.Errorf("token cache: %v", err)
		}
		return tokens, nil
	}
	return cached, func() { _ = store.Close() }, nil
}

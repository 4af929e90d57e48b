package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/thaiseg/attacut"
	"github.com/npillmayer/thaiseg/dictionary"
	"github.com/npillmayer/thaiseg/internal/config"
	"github.com/npillmayer/thaiseg/internal/locale"
	"github.com/npillmayer/thaiseg/tokenize"
	"github.com/spf13/cobra"
)

const (
	passMark = "✓"
	warnMark = "!"
	failMark = "✗"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check dictionary, locale, ONNX Runtime and the AttaCut model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if failed := runDoctor(cmd.OutOrStdout(), cfg, locale.ContextFromEnvironment()); failed > 0 {
				return fmt.Errorf("doctor: %d check(s) failed", failed)
			}
			return nil
		},
	}
}

// runDoctor writes one line per check and returns the number of failed
// checks. A missing AttaCut setup fails only if attacut is the configured
// engine.
func runDoctor(w io.Writer, cfg config.Config, loc *locale.Context) int {
	failed := 0
	report := func(ok bool, format string, args ...interface{}) {
		mark := passMark
		if !ok {
			mark = failMark
			failed++
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
	}
	optional := func(required bool, format string, args ...interface{}) {
		if required {
			report(false, format, args...)
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", warnMark, fmt.Sprintf(format, args...))
	}
	_, _ = fmt.Fprintf(w, "engines: %s\n", strings.Join(tokenize.Engines(), ", "))
	report(true, "locale: %s (script %s, unspaced=%v)", loc.Locale, loc.Script, loc.Unspaced)

	if cfg.Tokenize.Dictionary == "" {
		report(dictionary.Default().Size() > 0, "dictionary: built-in, %d words", dictionary.Default().Size())
	} else if dict, err := dictionary.LoadFile(cfg.Tokenize.Dictionary); err != nil {
		report(false, "dictionary: %v", err)
	} else {
		report(true, "dictionary: %s, %d words", cfg.Tokenize.Dictionary, dict.Size())
	}

	required := cfg.Tokenize.Engine == "attacut"
	if lib, err := attacut.DetectRuntime(cfg.Runtime.ORTLibraryPath); err != nil {
		optional(required, "onnx runtime: %v", err)
	} else {
		report(true, "onnx runtime: %s", lib)
	}
	if err := attacut.CheckModelDir(cfg.Attacut.ModelDir); err != nil {
		optional(required, "attacut model: %v", err)
	} else {
		report(true, "attacut model: %s", cfg.Attacut.ModelDir)
	}
	return failed
}

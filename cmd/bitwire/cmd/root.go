// Package cmd implements the bitwire command line tool.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Version = "0.0.0"
	Commit  = ""
)

// levelValue lets a zapcore.Level be set from the command line.
type levelValue struct{ zapcore.Level }

var _ pflag.Value = (*levelValue)(nil)

func (l *levelValue) Type() string { return "level" }

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	level := &levelValue{zapcore.WarnLevel}

	rootCmd := &cobra.Command{
		Use:   "bitwire",
		Short: "Inspect and produce bitwire data",
		Long: `bitwire encodes and decodes the building blocks of the bitwire format:
LEB128 varints, packed bit fields and length-prefixed frames.`,
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Var(level, "log-level", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newVarintCmd(),
		newBitsCmd(),
		newFrameCmd(func(w io.Writer) *zap.Logger { return newLogger(level.Level, w) }),
	)
	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

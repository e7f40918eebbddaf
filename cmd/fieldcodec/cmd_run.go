package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/fieldcodec/config"
	"github.com/zoobzio/fieldcodec/host"
)

var (
	fieldFlag  string
	modeFlag   string
	schemeFlag string
	formatFlag string
	limitFlag  int
	configPath string
	inPath     string
	outPath    string
)

// runCmd transforms one table document
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Encode or decode a field of every row in a table",
	Long: `Reads a table document, appends "{field}_{mode}" to every row, and
writes the result.

Settings are layered: defaults, then the config file (--config, or
fieldcodec.yaml in the working directory), then flags.

Example:
  fieldcodec run --field Name --mode encode --scheme b64_standard --in users.json`,
	Args: cobra.NoArgs,
	RunE: runTransform,
}

func init() {
	runCmd.Flags().StringVarP(&fieldFlag, "field", "f", "", "Field to transform")
	runCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "encode or decode (default encode)")
	runCmd.Flags().StringVarP(&schemeFlag, "scheme", "s", "", "Scheme name, or none to copy the field unchanged (default none)")
	runCmd.Flags().StringVar(&formatFlag, "format", "", "Table format: json, yaml, msgpack, bson, csv (default json)")
	runCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum output rows (0 = unlimited)")
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")
	runCmd.Flags().StringVarP(&inPath, "in", "i", "", "Input file (default stdin)")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(logger).Load(configPath, &config.Config{
		Field:  fieldFlag,
		Mode:   modeFlag,
		Scheme: schemeFlag,
		Format: formatFlag,
		Limit:  limitFlag,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	format, err := host.FormatFor(cfg.Format)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Starting run",
		zap.String("field", cfg.Field),
		zap.String("mode", cfg.Mode),
		zap.String("scheme", cfg.Scheme),
		zap.String("format", cfg.Format),
	)

	var out bytes.Buffer
	res, err := host.Run(ctx, cfg.PipelineConfig(), format, in, &out, host.WithLimit(cfg.Limit))
	if err != nil {
		logger.Error("Run failed", zap.String("pipeline_id", res.PipelineID), zap.Error(err))
		return err
	}

	if err := writeOutput(cmd, out.Bytes()); err != nil {
		return err
	}

	logger.Info("Run complete",
		zap.String("pipeline_id", res.PipelineID),
		zap.Int("rows", res.Rows),
		zap.Int("records", res.Records),
		zap.Bool("rejected", res.Rejected),
	)
	return nil
}

// openInput returns the input reader and a func that releases it.
func openInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if inPath == "" || inPath == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// writeOutput writes data to --out or the command's output.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if outPath == "" || outPath == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Package main provides the xlsxexport CLI: it turns CSV data into an .xlsx
// package and can serve the attachment endpoint used by the base64 save path.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/JuanDavidPardo/profoundui-framework/xl"
	"github.com/jjonline/share-mod-lib/guzzle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	logPath  string

	outputName  string
	outputDir   string
	formatsPath string
	endpoint    string
	partsDir    string
	headerRow   bool

	listenAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "xlsxexport",
		Short:        "Build single-sheet .xlsx packages from tabular data",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "stderr", "Log destination: stderr, stdout or a directory")

	buildCmd := &cobra.Command{
		Use:   "build [input.csv]",
		Short: "Convert a CSV file into an .xlsx package",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&outputName, "output", "o", "", "Output file name (default: input name with .xlsx)")
	buildCmd.Flags().StringVar(&outputDir, "dir", ".", "Directory receiving the package when it can be saved directly")
	buildCmd.Flags().StringVar(&formatsPath, "formats", "", "YAML file with column formats")
	buildCmd.Flags().StringVar(&endpoint, "endpoint", "", "Attachment endpoint used when direct save is not possible")
	buildCmd.Flags().StringVar(&partsDir, "parts-dir", "", "Also write the uncompressed parts into this directory")
	buildCmd.Flags().BoolVar(&headerRow, "header", false, "Store the first CSV row as text regardless of column formats")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the attachment endpoint",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(buildCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	log, err := newLogger(logLevel, logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	inputPath := args[0]
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	var ff *formatFile
	if formatsPath != "" {
		ff, err = loadFormatFile(formatsPath)
		if err != nil {
			return err
		}
	}

	ws, err := worksheetFromRecords(records, ff, headerRow)
	if err != nil {
		return err
	}

	if partsDir != "" {
		// the dump is read-only on ws, so a second pass for the archive is fine
		if err := xl.NewWriter(xl.NewDirStorage(partsDir)).Write(ws); err != nil {
			return fmt.Errorf("write parts: %w", err)
		}
	}

	name := outputName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	saver, err := xl.SelectSaver(xl.ProbeCapabilities(outputDir), outputDir, endpoint,
		guzzle.New(&http.Client{Timeout: time.Minute}, nil), log)
	if err != nil {
		return err
	}

	b := xl.NewBuilder(xl.WithSaver(saver), xl.WithLogger(log))
	return b.Download(cmd.Context(), name, ws)
}

// readRecords reads CSV records allowing rows of different lengths.
func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// worksheetFromRecords sizes the worksheet to the widest record and pads
// shorter records with empty cells.
func worksheetFromRecords(records [][]string, ff *formatFile, header bool) (*xl.Worksheet, error) {
	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}
	if width == 0 {
		return nil, errors.New("input has no columns")
	}

	ws, err := xl.NewWorksheet(width)
	if err != nil {
		return nil, err
	}
	if ff != nil {
		if err := ff.apply(ws); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		if err := ws.NewRow(); err != nil {
			return nil, err
		}
		for col := 0; col < width; col++ {
			value := ""
			if col < len(rec) {
				value = rec[col]
			}
			if header && i == 0 {
				err = ws.AddCellAs(value, xl.DataChar)
			} else {
				err = ws.AddCell(value)
			}
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
	}
	return ws, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger(logLevel, logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	mux := http.NewServeMux()
	mux.Handle("/attachment", &xl.AttachmentHandler{Log: log})

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("attachment endpoint listening", zap.String("addr", listenAddr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

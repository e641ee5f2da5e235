// cmd/pinbank/main.go

// pinbank 是單一使用者的互動式銀行帳本。
// 啟動時載入 JSON 快照（不存在或無法讀取則以空銀行啟動），
// 執行文字選單，正常結束（選單離開、輸入結束、SIGINT/SIGTERM）時保存快照。

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinbank/internal/bank"
	"pinbank/internal/cli"
	"pinbank/internal/config"
	"pinbank/internal/metrics"
	"pinbank/internal/server"
	"pinbank/internal/storage"
)

var _ cli.Recorder = (*metrics.Collector)(nil)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	b := newBank(cfg)
	loadBank(b, cfg.DataFile, logger, os.Stdout)

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		ops := server.NewServer(collector.Handler(), logger)
		srv := ops.Start(cfg.MetricsAddr)
		defer ops.Shutdown(srv, 5*time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := cli.New(b, os.Stdin, os.Stdout, cli.Options{Logger: logger, Recorder: collector})
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Shutdown signal received")
		} else {
			logger.Error("Menu loop stopped", slog.String("error", err.Error()))
		}
	}

	if err := saveBank(b, cfg.DataFile, logger, os.Stdout); err != nil {
		return 1
	}
	return 0
}

func setupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	// stdout 保留給選單
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newBank(cfg config.Config) *bank.Bank {
	var pins bank.PinVerifier = bank.PlainPins{}
	if cfg.PinScheme == bank.SchemeBcrypt {
		pins = bank.BcryptPins{}
	}
	b := bank.NewBank(bank.ShortIDs{Length: cfg.IDLength}, pins)
	b.RequireStrongCredentials(cfg.StrictCredentials)
	return b
}

// loadBank 嘗試還原快照；任何失敗都只記錄並保持空銀行。
func loadBank(b *bank.Bank, path string, logger *slog.Logger, out io.Writer) {
	snap, err := storage.LoadSnapshot(path)
	if err == nil {
		err = b.Restore(snap)
	}
	switch {
	case err == nil:
		logger.Info("Loaded bank snapshot", slog.String("path", path), slog.Int("accounts", b.Len()))
		fmt.Fprintln(out, "✅ Loaded bank data from file.")
	case errors.Is(err, storage.ErrNoSnapshot):
		logger.Info("No snapshot found", slog.String("path", path))
		fmt.Fprintln(out, "No saved data found. Starting with a new bank.")
	default:
		logger.Warn("Snapshot unreadable, starting empty", slog.String("path", path), slog.String("error", err.Error()))
		fmt.Fprintln(out, "Saved data could not be read. Starting with a new bank.")
	}
}

func saveBank(b *bank.Bank, path string, logger *slog.Logger, out io.Writer) error {
	if err := storage.SaveSnapshot(path, b.Snapshot()); err != nil {
		logger.Error("Failed to save bank snapshot", slog.String("path", path), slog.String("error", err.Error()))
		fmt.Fprintln(out, "Failed to save bank data: "+err.Error())
		return err
	}
	logger.Info("Saved bank snapshot", slog.String("path", path), slog.Int("accounts", b.Len()))
	fmt.Fprintln(out, "Bank data saved to "+path)
	return nil
}

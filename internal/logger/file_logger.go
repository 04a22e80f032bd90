// Package logger writes per-run log files for the CLI tools, alongside the
// console output. One file per symbol per day.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

// LogLevel tags a log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelTrade   LogLevel = "TRADE"
)

// Logger appends timestamped entries for one simulation run to a file.
type Logger struct {
	symbol  string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logPath string
}

// NewLogger opens (or creates) the run log for symbol under logDir.
func NewLogger(logDir, symbol string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", symbol, time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{
		symbol:  symbol,
		logFile: file,
		logger:  log.New(file, "", 0),
		logPath: logPath,
	}
	l.writeSessionHeader()
	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Printf("================================================================================")
	l.logger.Printf("🚀 BACKTEST RUN — %s", l.symbol)
	l.logger.Printf("Started: %s", time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Printf("================================================================================")
}

// Log writes one formatted entry with the given level.
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] [%s] %s", timestamp, level, fmt.Sprintf(format, args...))
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogTrade logs one closed round trip from the ledger.
func (l *Logger) LogTrade(t backtest.Trade) {
	l.Log(LogLevelTrade, "%s → %s | entry $%.2f exit $%.2f | %.2f%% in %d days | %s",
		t.EntryDate.Format("2006-01-02"), t.ExitDate.Format("2006-01-02"),
		t.EntryPrice, t.ExitPrice, t.ReturnPct, t.HoldingDays, t.ExitReason)
}

// LogRun logs the run outcome: ledger size, skipped bars, open position.
func (l *Logger) LogRun(res *backtest.Result, s backtest.Summary) {
	for _, t := range res.Trades {
		l.LogTrade(t)
	}
	if len(res.SkippedBars) > 0 {
		l.Warning("%d bars skipped on undefined indicator data", len(res.SkippedBars))
	}
	if res.OpenPosition != nil {
		l.Info("position still open at end of window (entry %s at $%.2f, stop $%.2f)",
			res.OpenPosition.EntryDate.Format("2006-01-02"),
			res.OpenPosition.EntryPrice, res.OpenPosition.TrailingStop)
	}
	if s.Valid {
		l.Info("%d trades, win ratio %.1f%%, cumulative %.3fx (buy & hold %.3fx)",
			s.Trades, s.WinRatioPct, s.CumulativeResult, s.BuyHoldResult)
	} else {
		l.Info("no closed trades in window")
	}
}

// Close writes the session footer and closes the file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}
	l.logger.Printf("================================================================================")
	l.logger.Printf("🛑 RUN ENDED — %s", time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Printf("================================================================================")
	return l.logFile.Close()
}

// GetLogPath returns the path of the run log.
func (l *Logger) GetLogPath() string {
	return l.logPath
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/config"
	"github.com/username/honorary-calc/internal/fare"
)

var (
	configPath string
	logLevel   string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "honorary-calc",
		Short:         "On-call honorary calculator",
		Long:          "Compute the honorary owed for an on-call mission against the French holiday calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			level := logLevel
			cfg, err := config.Load(configPath)
			if err == nil && level == "" {
				level = cfg.Log.Level
			}
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, level)
				if err != nil {
					logger = initLogger(level) // Fallback to console
				}
			} else {
				logger = initLogger(level) // Default console logger
			}
			logger = logger.With(zap.String("run_id", uuid.NewString()))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ., $HOME/.honorary-calc, /etc/honorary-calc)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildCalendar returns the calendar used for lookups and the computed
// calendar backing it, which also serves holiday listings.
func buildCalendar(cfg *config.Config) (calendar.Calendar, *calendar.FrenchCalendar, error) {
	window, err := cfg.Calendar.GetWindow()
	if err != nil {
		return nil, nil, err
	}

	computed, err := calendar.NewFrenchCalendar(window, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build calendar: %w", err)
	}

	switch cfg.Calendar.Type {
	case "file":
		logger.Info("Using calendar file with computed fallback", zap.String("file", cfg.Calendar.File))
		fileCal := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		compositeCal := calendar.NewCompositeCalendar(fileCal, computed, logger)

		if err := compositeCal.LoadPrimary(); err != nil {
			logger.Warn("Failed to load calendar file, continuing with computed calendar only",
				zap.Error(err))
			return computed, computed, nil
		}
		return compositeCal, computed, nil

	case "computed":
		logger.Debug("Using computed calendar", zap.Stringer("window", window))
		return computed, computed, nil

	default:
		return nil, nil, fmt.Errorf("unknown calendar type: %s", cfg.Calendar.Type)
	}
}

func initializeEngine(cfg *config.Config) (*fare.Engine, calendar.Calendar, *calendar.FrenchCalendar, error) {
	cal, computed, err := buildCalendar(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	engine, err := fare.NewEngine(cal, cfg.Shifts.ShiftRule(), logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return engine, cal, computed, nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	return zapLevel
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

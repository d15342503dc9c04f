package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/config"
	"github.com/username/honorary-calc/pkg/dateutil"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check DATE",
		Short: "Tell whether a date is a business day, a weekend or a holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cal, _, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			info, err := cal.GetDayInfo(date)
			if err != nil {
				return describeError(err)
			}

			printDay(os.Stdout, info)
			return nil
		},
	}
}

func holidaysCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the public holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			_, computed, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			holidays, err := computed.Holidays(year)
			if err != nil {
				return describeError(err)
			}

			printHolidays(os.Stdout, year, holidays)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year to list")

	return cmd
}

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Business day table utilities",
	}

	cmd.AddCommand(calendarExportCmd())
	cmd.AddCommand(calendarMonthCmd())

	return cmd
}

func calendarExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the computed business day table to a file",
		Long:  "Write the computed business day table, one line per date. The file can be edited and loaded back with calendar.type=file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			window, err := cfg.Calendar.GetWindow()
			if err != nil {
				return err
			}
			computed, err := calendar.NewFrenchCalendar(window, logger)
			if err != nil {
				return fmt.Errorf("failed to build calendar: %w", err)
			}

			if outPath == "" || outPath == "-" {
				return calendar.WriteTable(os.Stdout, computed)
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}

			if err := calendar.WriteTable(f, computed); err != nil {
				f.Close()
				return fmt.Errorf("failed to export calendar: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", outPath, err)
			}

			logger.Info("Calendar exported",
				zap.String("file", outPath),
				zap.Stringer("window", window),
				zap.Int("days", window.Days()))
			fmt.Printf("Wrote %d days %s to %s\n", window.Days(), window, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func calendarMonthCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show business day counts of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cal, _, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			info, err := cal.GetMonthInfo(year, time.Month(month))
			if err != nil {
				return describeError(err)
			}

			fmt.Printf("%s %d: %d workdays, %d weekend days, %d holidays\n",
				info.Month, info.Year, info.WorkDays, info.Weekends, info.Holidays)
			for _, day := range info.Days {
				if day.Type == calendar.DayTypeHoliday {
					printDay(os.Stdout, &day)
				}
			}
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month 1-12")

	return cmd
}

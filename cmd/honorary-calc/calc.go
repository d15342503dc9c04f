package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/honorary-calc/internal/config"
	"github.com/username/honorary-calc/pkg/dateutil"
)

func calcCmd() *cobra.Command {
	var (
		start, end         string
		startDate, endDate string
		startHour, endHour string
		firstHourBonus     bool
		asJSON             bool
		details            bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the honorary of a mission",
		Example: `  honorary-calc calc --start "2019-05-02 08:00:00" --end "2019-05-02 12:00:00"
  honorary-calc calc --start-date 2019-05-05 --start-hour 22 --end-date 2019-05-06 --end-hour 9 --first-hour-bonus`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := resolveInstant("start", start, startDate, startHour)
			if err != nil {
				return err
			}
			endAt, err := resolveInstant("end", end, endDate, endHour)
			if err != nil {
				return err
			}

			// Load config
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			engine, _, _, err := initializeEngine(cfg)
			if err != nil {
				return err
			}

			logger.Info("Computing honorary",
				zap.Time("start", startAt),
				zap.Time("end", endAt),
				zap.Bool("first_hour_bonus", firstHourBonus))

			result, err := engine.Compute(startAt, endAt, cfg.Fares.Fares(), firstHourBonus)
			if err != nil {
				return describeError(err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(os.Stdout, result)
			if details {
				printBuckets(os.Stdout, result, engine.ShiftRule())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Mission start (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&end, "end", "", "Mission end (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Mission start date, used with --start-hour")
	cmd.Flags().StringVar(&startHour, "start-hour", "", "Mission start hour 0-24")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Mission end date, used with --end-hour")
	cmd.Flags().StringVar(&endHour, "end-hour", "", "Mission end hour 0-24 (24 is midnight of the next day)")
	cmd.Flags().BoolVar(&firstHourBonus, "first-hour-bonus", false, "Bill the first hour at the premium rate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&details, "details", false, "Print the per-date breakdown")

	cmd.MarkFlagsMutuallyExclusive("start", "start-date")
	cmd.MarkFlagsMutuallyExclusive("end", "end-date")
	cmd.MarkFlagsMutuallyExclusive("json", "details")

	return cmd
}

// resolveInstant reads either the full instant or the date + hour pair
func resolveInstant(name, instant, date, hour string) (time.Time, error) {
	switch {
	case instant != "":
		t, err := dateutil.ParseInstant(instant)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
		}
		return t, nil
	case date != "" && hour != "":
		t, err := dateutil.InstantFromDateHour(date, hour)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --%s-date/--%s-hour: %w", name, name, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("either --%s or both --%s-date and --%s-hour are required", name, name, name)
	}
}

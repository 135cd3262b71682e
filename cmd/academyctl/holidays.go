package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

func newHolidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [anno]",
		Short: "Elenca festività e chiusure dell'anno",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}

			out := cmd.OutOrStdout()
			for _, h := range holiday.New().HolidaysForYear(year) {
				fmt.Fprintf(out, "%s  %-8s  %s\n", h.Date.Format(model.DateLayout), h.Type, h.Name)
			}
			return nil
		},
	}
}

func newEndDateCmd() *cobra.Command {
	var (
		start   string
		lessons int
		days    string
	)

	cmd := &cobra.Command{
		Use:   "end-date",
		Short: "Calcola la fine di un ciclo di lezioni saltando le festività",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := model.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if lessons < 1 {
				return fmt.Errorf("--lessons must be positive")
			}

			weekdays := []time.Weekday{from.Weekday()}
			if strings.TrimSpace(days) != "" {
				if weekdays, err = holiday.ParseWeekdays(days); err != nil {
					return err
				}
			}

			end := holiday.New().CalculateEndDate(from, lessons, weekdays)
			fmt.Fprintln(cmd.OutOrStdout(), end.Format(model.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first lesson date, YYYY-MM-DD")
	cmd.Flags().IntVar(&lessons, "lessons", 1, "number of lessons")
	cmd.Flags().StringVar(&days, "days", "", "weekdays, e.g. lun,mer or 1,3 (default: weekday of --start)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

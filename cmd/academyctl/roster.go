package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Mostra insegnanti, aule e corsi",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := roster.Load(viper.GetString("roster_path"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Insegnanti: %s\n", strings.Join(r.Teachers(), ", "))
			fmt.Fprintf(out, "Aule:       %s\n", strings.Join(r.Rooms(), ", "))
			fmt.Fprintf(out, "Corsi:      %s\n", strings.Join(r.Courses(), ", "))
			return nil
		},
	}
}

// parse показывает, что извлекается из фразы, без обращения к базе
func newParseCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "parse <frase>",
		Short: "Mostra i campi estratti da una richiesta in italiano",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster.Load(viper.GetString("roster_path"))
			if err != nil {
				return err
			}

			now := time.Now()
			if today != "" {
				d, err := model.ParseDate(today)
				if err != nil {
					return fmt.Errorf("--today: %w", err)
				}
				now = d.Add(9 * time.Hour)
			}

			c := scheduling.Extract(strings.Join(args, " "), r, now, scheduling.FieldNone)
			data, err := json.MarshalIndent(struct {
				Context scheduling.Context `json:"context"`
				Missing []scheduling.Field `json:"missing"`
			}{c, c.Missing()}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference date YYYY-MM-DD (default: now)")
	return cmd
}

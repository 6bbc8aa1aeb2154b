package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/domain"
)

var dayClearYes bool

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage day schedules",
	Long: `Each day has its own task list, keyed like "Monday, 02.01.2006".
Day subcommands switch the selected day, list known days, and delete
day schedules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dayListCmd.RunE(cmd, args)
	},
}

var dayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known days, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		days := app.sched.Days()
		selected := app.sched.SelectedKey()

		if jsonOutput {
			payload := make([]map[string]any, 0, len(days))
			for _, d := range days {
				p := dayPayload(d)
				p["selected"] = d.Key == selected
				payload = append(payload, p)
			}
			return printJSON(payload)
		}

		now := time.Now()
		for _, d := range days {
			marker := " "
			if d.Key == selected {
				marker = "●"
			}
			fmt.Printf("%s %s  %d tasks · 🍅 %s · ⏱ %s\n",
				marker, d.Key, len(d.Tasks),
				formatDuration(d.TotalFocusSeconds()),
				formatDuration(d.TotalTrackedSeconds(now)))
		}
		return nil
	},
}

var daySelectCmd = &cobra.Command{
	Use:   "select <day-key|today>",
	Short: "Switch the selected day",
	Long: `Select switches which day the board and task commands operate on.
Unknown keys get an empty day created for them; "today" resolves to the
current wall-clock day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if key == "today" {
			key = app.sched.TodayKey()
		}
		app.sched.SetSelectedDay(key)
		fmt.Printf("Selected %s\n", key)
		return nil
	},
}

var dayDeleteCmd = &cobra.Command{
	Use:   "delete <day-key>",
	Short: "Delete a day and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if key == "today" {
			key = app.sched.TodayKey()
		}
		if err := app.sched.DeleteDay(key); err != nil {
			if errors.Is(err, domain.ErrDayNotFound) {
				return fmt.Errorf("no such day: %s", key)
			}
			return err
		}
		fmt.Printf("Deleted %s\n", key)
		return nil
	},
}

var dayClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every day and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dayClearYes {
			return fmt.Errorf("this deletes all days and tasks; re-run with --yes to confirm")
		}
		app.sched.ClearSchedule()
		fmt.Println("Schedule cleared.")
		return nil
	},
}

func init() {
	dayClearCmd.Flags().BoolVar(&dayClearYes, "yes", false, "Confirm clearing the whole schedule")

	dayCmd.AddCommand(dayListCmd)
	dayCmd.AddCommand(daySelectCmd)
	dayCmd.AddCommand(dayDeleteCmd)
	dayCmd.AddCommand(dayClearCmd)
}

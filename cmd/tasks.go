package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/domain"
)

var (
	listDay  string
	listFind string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the selected day",
	Long: `Add appends a task to the selected day's list. If the day has no
active task yet, the new task becomes active and its stopwatch starts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		task, err := app.sched.AddTask(title)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyTaskTitle) {
				return fmt.Errorf("task title cannot be empty")
			}
			return err
		}

		if jsonOutput {
			return printJSON(task)
		}
		fmt.Printf("Added %q (%s)\n", task.Title, shortID(task.ID))
		if task.StopwatchRunning() {
			fmt.Println("Task is now active; stopwatch running.")
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for the selected day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFind != "" {
			return runFind(listFind)
		}

		day := app.sched.SelectedDay()
		if listDay != "" {
			day = app.sched.Day(listDay)
			if day == nil {
				return fmt.Errorf("no such day: %s", listDay)
			}
		}

		if jsonOutput {
			return printJSON(dayPayload(day))
		}

		fmt.Println(day.Key)
		if len(day.Tasks) == 0 {
			fmt.Println("  (no tasks)")
			return nil
		}
		now := time.Now()
		for _, t := range day.Tasks {
			marker := " "
			if t.ID == day.ActiveTaskID {
				marker = "●"
			}
			tracked := domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now)
			fmt.Printf("  %s %s  %s  ⏱ %s · 🍅 %s\n",
				marker, shortID(t.ID), t.Title,
				formatDuration(tracked), formatDuration(t.TotalFocusSeconds))
		}
		return nil
	},
}

func runFind(query string) error {
	tasks := app.sched.FindTasks(query)
	if jsonOutput {
		return printJSON(tasks)
	}
	if len(tasks) == 0 {
		fmt.Println("No matching tasks.")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("  %s  %s\n", shortID(t.ID), t.Title)
	}
	return nil
}

var renameCmd = &cobra.Command{
	Use:   "rename <task-id> <new-title>",
	Short: "Rename a task in the selected day",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		title := strings.Join(args[1:], " ")
		if err := app.sched.UpdateTaskTitle(task.ID, title); err != nil {
			if errors.Is(err, domain.ErrEmptyTaskTitle) {
				return fmt.Errorf("task title cannot be empty")
			}
			return err
		}
		fmt.Printf("Renamed %s to %q\n", shortID(task.ID), strings.TrimSpace(title))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task from the selected day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		if err := app.sched.DeleteTask(task.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", task.Title)
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <task-id|none>",
	Short: "Point the day's stopwatch at a task",
	Long: `Track makes the given task the active one: its stopwatch starts and
whatever was running is stopped and folded in. "track none" stops the
stopwatch without activating anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "none" {
			app.sched.SetActiveTask("")
			fmt.Println("Stopwatch stopped; no task active.")
			return nil
		}
		task, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		app.sched.SetActiveTask(task.ID)
		fmt.Printf("Tracking %q\n", task.Title)
		return nil
	},
}

var trackEditCmd = &cobra.Command{
	Use:   "edit <task-id> <seconds>",
	Short: "Overwrite a task's tracked time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		secs, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seconds value: %s", args[1])
		}
		if err := app.sched.SetTrackedSeconds(task.ID, secs); err != nil {
			switch {
			case errors.Is(err, domain.ErrStopwatchRunning):
				return fmt.Errorf("stop the task's stopwatch before editing its tracked time")
			case errors.Is(err, domain.ErrNegativeSeconds):
				return fmt.Errorf("tracked time cannot be negative")
			}
			return err
		}
		fmt.Printf("Set tracked time for %q to %s\n", task.Title, formatDuration(secs))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listDay, "day", "", "List tasks for a specific day key instead of the selected day")
	listCmd.Flags().StringVar(&listFind, "find", "", "Fuzzy-search task titles across all days")
	trackCmd.AddCommand(trackEditCmd)
}

// resolveTask finds a task in the selected day by id or unique id prefix.
func resolveTask(ref string) (*domain.TaskEntry, error) {
	day := app.sched.SelectedDay()

	var matches []*domain.TaskEntry
	for _, t := range day.Tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no task matching %q in %s", ref, day.Key)
	default:
		return nil, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// shortID abbreviates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

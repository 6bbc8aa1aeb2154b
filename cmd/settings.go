package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and edit timer settings",
	Long: `Settings shows the current interval durations and toggles. Use
"settings set" to change them; changes apply to the next interval and,
while paused, to the visible countdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(app.engine.Settings())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change timer settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch domain.SettingsPatch

		assignInt := func(flag string, dst **int) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetInt(flag)
				*dst = &v
			}
		}
		assignBool := func(flag string, dst **bool) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetBool(flag)
				*dst = &v
			}
		}

		assignInt("focus", &patch.FocusMinutes)
		assignInt("break", &patch.BreakMinutes)
		assignInt("long-break", &patch.LongBreakMinutes)
		assignInt("interval", &patch.LongBreakInterval)
		assignBool("long-break-enabled", &patch.EnableLongBreak)
		assignBool("sound", &patch.SoundEnabled)
		assignBool("notifications", &patch.NotificationsEnabled)

		settings := app.engine.UpdateSettings(patch)
		app.notifier.SetEnabled(settings.NotificationsEnabled)
		app.notifier.SetSound(settings.SoundEnabled)
		saveSettings()
		saveTimer()

		return printSettings(settings)
	},
}

func init() {
	settingsSetCmd.Flags().Int("focus", 0, "Focus interval in minutes")
	settingsSetCmd.Flags().Int("break", 0, "Break interval in minutes")
	settingsSetCmd.Flags().Int("long-break", 0, "Long break interval in minutes")
	settingsSetCmd.Flags().Int("interval", 0, "Focus intervals between long breaks")
	settingsSetCmd.Flags().Bool("long-break-enabled", true, "Enable the long break cycle")
	settingsSetCmd.Flags().Bool("sound", true, "Play a chime when an interval completes")
	settingsSetCmd.Flags().Bool("notifications", true, "Send desktop notifications")

	settingsCmd.AddCommand(settingsSetCmd)
}

func printSettings(s domain.TimerSettings) error {
	if jsonOutput {
		return printJSON(s)
	}

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	fmt.Println("  Timer settings:")
	fmt.Printf("    Focus:              %d min\n", s.FocusMinutes)
	fmt.Printf("    Break:              %d min\n", s.BreakMinutes)
	fmt.Printf("    Long break:         %d min (%s, every %d focus intervals)\n",
		s.LongBreakMinutes, onOff(s.EnableLongBreak), s.LongBreakInterval)
	fmt.Printf("    Sound:              %s\n", onOff(s.SoundEnabled))
	fmt.Printf("    Notifications:      %s\n", onOff(s.NotificationsEnabled))
	return nil
}

package commands

import (
	"fmt"
	"io"
	"log"

	"cubetimer/internal/core/stopwatch"
	"cubetimer/internal/influx"
	"cubetimer/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTUICommand(settings *viper.Viper) *cobra.Command {
	var logFile string

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the stopwatch in the terminal",
		Long: `Run the stopwatch in the terminal. Space starts and stops, a resets,
c cycles the cube kind, enter sends the result and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(settings)
			if err != nil {
				return err
			}

			client := influx.NewClient(config)
			checkConnection(cmd.Context(), settings, client)

			if logFile != "" {
				file, err := tea.LogToFile(logFile, "cubetimer")
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer file.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			return terminal.Run(stopwatch.New(nil), client, settings.GetDuration(keyRefresh), tea.WithAltScreen())
		},
	}

	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal UI runs")
	return tuiCmd
}

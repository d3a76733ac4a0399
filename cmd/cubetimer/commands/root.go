package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"cubetimer/internal/core/model"
	"cubetimer/internal/influx"
	"cubetimer/internal/refresh"
	"cubetimer/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName = "CubeTimer"
	appID   = "com.cubetimer.app"

	keyConfig    = "config"
	keyPing      = "ping"
	keyRefresh   = "refresh"
	keyInfluxURL = "influx.url"
	keyInfluxTok = "influx.token"
	keyInfluxOrg = "influx.org"
	keyInfluxBkt = "influx.bucket"
)

// NewRootCommand creates the root command. Without a subcommand it opens
// the desktop window.
func NewRootCommand() *cobra.Command {
	settings := viper.New()

	rootCmd := &cobra.Command{
		Use:   "cubetimer",
		Short: "Time Rubik's cube solves and send them to InfluxDB",
		Long: `cubetimer is a stopwatch for Rubik's cube solves. Press space to start
and stop, then send the recorded time, tagged with the cube kind, to an
InfluxDB v2 bucket.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), settings)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "", "path to config.json (default ./config.json, then the user config dir)")
	flags.Bool(keyPing, false, "check the InfluxDB connection at startup")
	flags.Duration(keyRefresh, refresh.DefaultInterval, "display refresh interval while running")
	cobra.CheckErr(bindSettings(settings, flags))

	rootCmd.AddCommand(newTUICommand(settings))
	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func bindSettings(settings *viper.Viper, flags *pflag.FlagSet) error {
	settings.SetEnvPrefix("CUBETIMER")
	settings.AutomaticEnv()
	if err := settings.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	envKeys := map[string]string{
		keyInfluxURL: "INFLUX_URL",
		keyInfluxTok: "INFLUX_TOKEN",
		keyInfluxOrg: "INFLUX_ORG",
		keyInfluxBkt: "INFLUX_BUCKET",
	}
	for key, env := range envKeys {
		if err := settings.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

func loadConfig(settings *viper.Viper) (model.InfluxConfig, error) {
	path, err := storage.ResolveConfigPath(appName, settings.GetString(keyConfig))
	if err != nil {
		return model.InfluxConfig{}, err
	}

	config, err := storage.LoadConfig(path, storage.Overrides{
		URL:    settings.GetString(keyInfluxURL),
		Token:  settings.GetString(keyInfluxTok),
		Org:    settings.GetString(keyInfluxOrg),
		Bucket: settings.GetString(keyInfluxBkt),
	})
	if err != nil {
		return model.InfluxConfig{}, err
	}
	log.Printf("loaded config from %s (bucket %s)", path, config.Bucket)
	return config, nil
}

func checkConnection(ctx context.Context, settings *viper.Viper, client *influx.Client) {
	if !settings.GetBool(keyPing) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := client.Ping(ctx); err != nil {
		log.Printf("warning: %v", err)
		return
	}
	log.Printf("influxdb reachable")
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex-user-go/hotelpms/internal/config"
	"github.com/alex-user-go/hotelpms/internal/pms"
)

var (
	flagBaseURL  string
	flagAPIKey   string
	flagAttempts int
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "hotelctl",
	Short: "Client for a 1C-Hotel style property-management API",
	Long: "hotelctl talks to a hotel property-management REST API: room availability,\n" +
		"room details and bookings, plus a standalone URL reachability check.\n\n" +
		"Credentials come from HOTEL_PMS_BASE_URL / HOTEL_PMS_API_KEY (or a .env\n" +
		"file) and can be overridden with flags.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "PMS API base URL (overrides HOTEL_PMS_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "PMS API bearer token (overrides HOTEL_PMS_API_KEY)")
	rootCmd.PersistentFlags().IntVar(&flagAttempts, "attempts", 0, "attempts per request (overrides HOTEL_PMS_ATTEMPTS)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every attempt and response")

	rootCmd.AddCommand(availabilityCmd, roomCmd, bookCmd, checkCmd)
}

// clientConfig merges the environment configuration with flag overrides.
func clientConfig() config.Client {
	config.LoadEnvFile()
	cfg := config.LoadClient()

	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagAttempts > 0 {
		cfg.Attempts = flagAttempts
	}

	return cfg
}

func newClient() *pms.Client {
	cfg := clientConfig()
	return pms.New(cfg.BaseURL, cfg.APIKey, newLogger(),
		pms.WithAttempts(cfg.Attempts),
		pms.WithTimeout(cfg.Timeout),
	)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printJSON renders an API response for the terminal.
func printJSON(result map[string]any) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

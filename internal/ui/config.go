package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Location.Name = promptValue(reader, "Location name", cfg.Location.Name)
	cfg.Location.Latitude = promptFloat(reader, "Latitude", cfg.Location.Latitude)
	cfg.Location.Longitude = promptFloat(reader, "Longitude", cfg.Location.Longitude)
	cfg.Notifications.SahurMinutesBeforeImsak = promptInt(reader,
		"Sahur reminder minutes before imsak (0, 15, 30, 45, 60)", cfg.Notifications.SahurMinutesBeforeImsak)
	cfg.Notifications.IftarEnabled = promptBool(reader, "Iftar notification", cfg.Notifications.IftarEnabled)
	cfg.Notifications.IftarMinutesBefore = promptInt(reader,
		"Pre-iftar reminder minutes (0, 15, 30)", cfg.Notifications.IftarMinutesBefore)
	cfg.LLM.Provider = promptValue(reader, "LLM provider (openai, ollama)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (Ollama)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[location]")
	fmt.Printf("  name                       = %s\n", cfg.Location.Name)
	fmt.Printf("  latitude                   = %v\n", cfg.Location.Latitude)
	fmt.Printf("  longitude                  = %v\n", cfg.Location.Longitude)
	fmt.Println("\n[aladhan]")
	fmt.Printf("  base_url                   = %s\n", cfg.Aladhan.BaseURL)
	fmt.Printf("  method                     = %d\n", cfg.Aladhan.Method)
	fmt.Printf("  calendar_method            = %s\n", cfg.Aladhan.CalendarMethod)
	fmt.Println("\n[notifications]")
	fmt.Printf("  sahur_minutes_before_imsak = %d\n", cfg.Notifications.SahurMinutesBeforeImsak)
	fmt.Printf("  iftar_enabled              = %v\n", cfg.Notifications.IftarEnabled)
	fmt.Printf("  iftar_minutes_before       = %d\n", cfg.Notifications.IftarMinutesBefore)
	fmt.Printf("  verse_of_day_enabled       = %v\n", cfg.Notifications.VerseOfDayEnabled)
	fmt.Println("\n[llm]")
	fmt.Printf("  provider                   = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model                      = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url                   = %s\n", cfg.LLM.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path                    = %s\n", cfg.Storage.DBPath)
	fmt.Printf("  cache_dir                  = %s\n", cfg.Storage.CacheDir)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(input)
		if err == nil {
			return n
		}
		fmt.Printf("  Invalid number %q.\n", input)
	}
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	for {
		input := promptValue(reader, label, strconv.FormatFloat(current, 'f', -1, 64))
		f, err := strconv.ParseFloat(input, 64)
		if err == nil {
			return f
		}
		fmt.Printf("  Invalid number %q.\n", input)
	}
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	value := "n"
	if current {
		value = "y"
	}
	input := strings.ToLower(promptValue(reader, label+" (y/n)", value))
	return input == "y" || input == "yes" || input == "true"
}

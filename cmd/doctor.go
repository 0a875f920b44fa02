package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/anonbot/internal/config"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check environment and configuration health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("anonbot doctor")
	fmt.Printf("  Version:  %s\n", Version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (NOT FOUND — defaults and env vars apply)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Println()
	fmt.Println("  Telegram:")
	if cfg.Telegram.Token != "" {
		fmt.Printf("    %-12s configured\n", "Token:")
	} else {
		fmt.Printf("    %-12s MISSING (set telegram.token or $ANONBOT_TELEGRAM_TOKEN)\n", "Token:")
	}
	if cfg.Telegram.Proxy != "" {
		fmt.Printf("    %-12s %s\n", "Proxy:", cfg.Telegram.Proxy)
	}

	fmt.Println()
	fmt.Println("  Anonymize:")
	fmt.Printf("    %-12s %q\n", "Prefix:", cfg.Anonymize.Prefix)
	fmt.Printf("    %-12s %s\n", "Timeout:", cfg.Anonymize.QueueTimeout())
	fmt.Printf("    %-12s %t\n", "Notices:", cfg.Anonymize.NoticesEnabled())
	if cfg.Anonymize.RateLimitRPM > 0 {
		fmt.Printf("    %-12s %d/min per user\n", "Rate limit:", cfg.Anonymize.RateLimitRPM)
	} else {
		fmt.Printf("    %-12s disabled\n", "Rate limit:")
	}

	fmt.Println()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Validation: FAILED (%s)\n", err)
		return
	}
	fmt.Println("  Validation: OK")
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/bootstrap"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/buildinfo"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/config"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/repository"
	"github.com/spf13/cobra"
)

const skipCoreAnnotation = "lacos/skip-core"

var (
	cfgFile string
	core    *bootstrap.Core
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lacos",
		Short:         "Laços Digitais admin tool",
		Long:          `lacos manages the Laços Digitais database: migrations, the achievement catalog and per-user checks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[skipCoreAnnotation]; ok {
				return nil
			}
			var err error
			core, err = bootstrap.NewCore(cfgFile)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if core != nil {
				_ = core.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", os.Getenv("LACOS_CONFIG"), "config file path")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.DB.Migrate(); err != nil {
				return err
			}
			fmt.Printf("schema at version %d (%s)\n", core.DB.SchemaVersion, core.DB.Driver)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the default achievement catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.RequireSchema(); err != nil {
				return err
			}
			added, err := repository.SeedDefaultCatalog(core.DB.DB)
			if err != nil {
				return err
			}
			fmt.Printf("added %d achievement(s)\n", added)
			return nil
		},
	}
}

func evaluateCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the achievement evaluator for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user must be a positive integer")
			}
			if err := core.RequireSchema(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			unlocked := core.Services.Achievements.Evaluate(ctx, userID)
			if len(unlocked) == 0 {
				fmt.Println("nothing new unlocked")
				return nil
			}
			for _, a := range unlocked {
				fmt.Printf("unlocked: %s (%s >= %d)\n", a.Name, a.Requirement.Type, a.Requirement.Value)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func statsCmd() *cobra.Command {
	var userID int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show diary statistics for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.RequireSchema(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			stats, err := core.Services.Diary.Stats(ctx, userID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			fmt.Printf("user %d\n", userID)
			fmt.Printf("  entries:         %d\n", stats.TotalEntries)
			fmt.Printf("  avg time online: %.2f h\n", stats.AvgTimeOnline)
			for mood, n := range stats.MoodDistribution {
				fmt.Printf("  %-16s %d\n", mood+":", n)
			}
			for _, e := range stats.RecentEntries {
				fmt.Printf("  %s  %2dh  %s\n", e.Date, e.TimeOnline, e.Mood)
			}

			unlocked, err := core.Services.Achievements.ListUnlocked(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Printf("  achievements:    %d\n", len(unlocked))
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Config file helpers",
		Annotations: map[string]string{skipCoreAnnotation: ""},
	}

	var path string
	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Annotations: map[string]string{skipCoreAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = p
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force)", target)
			}
			if err := config.WriteFile(target, config.Default()); err != nil {
				return err
			}
			fmt.Println("wrote", target)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "destination (default config/config.yaml beside the binary)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Annotations: map[string]string{skipCoreAnnotation: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lacos %s (%s)\n", buildinfo.Version, buildinfo.Commit)
		},
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nebulanotes/internal/config"
	"nebulanotes/internal/database"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/seed"
	"nebulanotes/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "blogctl",
		Short:        "Maintenance commands for the Nebula Notes database",
		SilenceUsage: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo profile, posts and seed admin when absent",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
	seedCmd.Flags().String("file", "", "YAML fixture to load instead of the built-in one")

	hashCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for SEED_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashPassword,
	}

	upsertCmd := &cobra.Command{
		Use:   "upsert-admin <email> <password-or-bcrypt-hash>",
		Short: "Create an admin account or replace its password",
		Args:  cobra.ExactArgs(2),
		RunE:  runUpsertAdmin,
	}

	rootCmd.AddCommand(migrateCmd, seedCmd, hashCmd, upsertCmd)
	return rootCmd
}

// openDB loads the configuration and connects to the database.
func openDB() (*config.Config, *database.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := db.RunMigrations(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	fx, err := seed.Load(file)
	if err != nil {
		return err
	}

	cfg, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.CloseDB()

	report, err := seed.NewSeeder(repository.NewRepository(db.DB)).Run(cmd.Context(), fx, cfg.Seed)
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *seed.Report) {
	out := cmd.OutOrStdout()
	if report.ProfileCreated {
		fmt.Fprintln(out, "profile: created")
	} else {
		fmt.Fprintln(out, "profile: already present")
	}
	for _, slug := range report.PostsCreated {
		fmt.Fprintf(out, "post %s: created\n", slug)
	}
	for _, slug := range report.PostsSkipped {
		fmt.Fprintf(out, "post %s: already present\n", slug)
	}
	if report.AdminEmail != "" {
		fmt.Fprintf(out, "admin %s: upserted\n", report.AdminEmail)
	}
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	hash, err := service.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runUpsertAdmin(cmd *cobra.Command, args []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.CloseDB()

	email, err := seed.UpsertAdmin(cmd.Context(), repository.NewAdminRepository(db.DB), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s: upserted\n", email)
	return nil
}

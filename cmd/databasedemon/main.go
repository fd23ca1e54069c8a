// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// databasedemon extracts spell records from decoded Wizard101 archive
// dumps into a normalized SQLite database.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/CIick/BattleBot/demondb"
	"github.com/CIick/BattleBot/extract"
	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/spells"
	"github.com/CIick/BattleBot/typelist"
	"github.com/CIick/BattleBot/wadobj"
)

var (
	rootCmd = &cobra.Command{
		Use:   "databasedemon",
		Short: "Wizard101 spell data extractor",
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Extract all entry dumps into the database",
		RunE:  cmdRun,
	}
	diagCmd = &cobra.Command{
		Use:   "diag [entry file]",
		Short: "Materialize a single entry dump and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  cmdDiag,
	}
	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Write a default configuration file",
		RunE:  cmdSetup,
	}

	confDir string
)

func main() {
	defaultConfDir := "."
	if home, err := homedir.Dir(); err == nil {
		defaultConfDir = filepath.Join(home, ".databasedemon")
	}

	rootCmd.PersistentFlags().StringVar(&confDir, "config-dir", defaultConfDir, "directory with the configuration file")
	rootCmd.PersistentFlags().String("db", filepath.Join(defaultConfDir, "spells.db"), "sqlite database file")
	rootCmd.PersistentFlags().String("types", filepath.Join(defaultConfDir, "types.json"), "type list file")
	rootCmd.PersistentFlags().String("source", "", "directory with decoded entry dumps")
	rootCmd.PersistentFlags().String("revision", "", "archive revision the type list must match (empty accepts any)")
	rootCmd.PersistentFlags().Int("workers", 4, "parallel entry processors")
	rootCmd.PersistentFlags().Duration("commit-timeout", 30*time.Second, "deadline for each store commit")
	rootCmd.PersistentFlags().String("failed-dir", "", "directory for raw snapshots of failed records")
	rootCmd.PersistentFlags().Bool("fail-on-unknown", false, "fail whole entries on unknown type hashes")
	rootCmd.PersistentFlags().Bool("progress", true, "draw a progress bar")
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))

	rootCmd.AddCommand(runCmd, diagCmd, setupCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() error {
	viper.SetEnvPrefix("DATABASEDEMON")
	viper.AutomaticEnv()
	viper.AddConfigPath(confDir)
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, flags and env carry the run
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errs.Wrap(err)
		}
	}
	return nil
}

func openLog() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	return config.Build()
}

func cmdRun(cmd *cobra.Command, args []string) (err error) {
	if err := loadConfig(); err != nil {
		return err
	}
	log, err := openLog()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	source := viper.GetString("source")
	if source == "" {
		return errs.New("--source is required")
	}

	typesPath := viper.GetString("types")
	types, err := typelist.Load(typesPath, viper.GetString("revision"))
	if err != nil {
		return err
	}

	db, err := demondb.Open(log.Named("db"), demondb.Config{Path: viper.GetString("db")})
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, db.Close()) }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := db.MigrateToLatest(ctx); err != nil {
		return err
	}

	service := extract.New(log.Named("extract"), db, types, spells.NewFactory(), extract.Config{
		SourceDir:     source,
		TypesPath:     typesPath,
		Revision:      viper.GetString("revision"),
		Workers:       viper.GetInt("workers"),
		CommitTimeout: viper.GetDuration("commit-timeout"),
		FailedDir:     viper.GetString("failed-dir"),
		FailOnUnknown: viper.GetBool("fail-on-unknown"),
		Progress:      viper.GetBool("progress"),
	})
	summary, err := service.Run(ctx)
	if err != nil {
		return err
	}

	count, err := db.CardCount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("processed %d entries: %d inserted, %d duplicates, %d failed, %d skips (%d cards total)\n",
		summary.Processed, summary.Inserted, summary.Duplicates, summary.Failed, summary.Skipped, count)
	return nil
}

func cmdDiag(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	log, err := openLog()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	types, err := typelist.Load(viper.GetString("types"), viper.GetString("revision"))
	if err != nil {
		return err
	}

	root, err := wadobj.ParseFile(args[0])
	if err != nil {
		return err
	}

	materializer := materialize.New(log.Named("materialize"), types, spells.NewFactory(),
		materialize.Policy{FailOnUnknown: viper.GetBool("fail-on-unknown")})
	ledger := materialize.NewLedger()
	record, ok := materializer.Materialize(root, ledger)
	if ok {
		spew.Dump(record)
	} else {
		fmt.Println("entry did not materialize")
	}
	for _, entry := range ledger.Drain() {
		fmt.Printf("skip %s at %q: %s\n", entry.Reason, entry.Path, entry.Detail)
	}
	return nil
}

func cmdSetup(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(confDir, 0755); err != nil {
		return errs.Wrap(err)
	}
	path := filepath.Join(confDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return errs.New("configuration already exists: %s", path)
	}

	defaults := fmt.Sprintf(`db: %s
types: %s
source: ""
revision: ""
workers: 4
commit-timeout: 30s
failed-dir: %s
fail-on-unknown: false
progress: true
`,
		filepath.Join(confDir, "spells.db"),
		filepath.Join(confDir, "types.json"),
		filepath.Join(confDir, "failed"),
	)
	if err := os.WriteFile(path, []byte(defaults), 0644); err != nil {
		return errs.Wrap(err)
	}
	fmt.Println("wrote", path)
	return nil
}

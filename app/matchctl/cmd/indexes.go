package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoockh/orbitmatch/config"
)

var indexesDryRun bool

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes the matching service relies on",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if indexesDryRun {
			printIndexes(cmd)
			return nil
		}

		if err := config.InitMongo(); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = config.CloseMongo(ctx)
		}()

		if err := config.EnsureMongoIndexes(); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		log.WithField("db", config.MongoDBName()).Info("indexes ensured")
		printIndexes(cmd)
		return nil
	},
}

func init() {
	indexesCmd.Flags().BoolVar(&indexesDryRun, "dry-run", false, "list the indexes without connecting")
}

func printIndexes(cmd *cobra.Command) {
	all := config.MongoIndexes()
	colls := make([]string, 0, len(all))
	for c := range all {
		colls = append(colls, c)
	}
	sort.Strings(colls)

	out := cmd.OutOrStdout()
	for _, c := range colls {
		for _, m := range all[c] {
			name := "(unnamed)"
			if m.Options != nil && m.Options.Name != nil {
				name = *m.Options.Name
			}
			fmt.Fprintf(out, "%s\t%s\n", c, name)
		}
	}
}

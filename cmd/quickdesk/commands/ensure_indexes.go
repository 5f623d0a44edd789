package commands

import (
	"github.com/spf13/cobra"

	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/mongo"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create MongoDB indexes for every collection",
	RunE:  runEnsureIndexes,
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}

func runEnsureIndexes(cmd *cobra.Command, args []string) error {
	cfg, _ := bootstrap()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	printStep(out, "Connecting to MongoDB database %s", cfg.Mongo.Database)
	client, db, err := connectMongo(ctx, cfg)
	if err != nil {
		return printError("Cannot reach MongoDB", err, "Check MONGO_URI and that the server is running.")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return printError("Index creation failed", err, "")
	}
	printSuccess(out, "Indexes are in place")
	return nil
}

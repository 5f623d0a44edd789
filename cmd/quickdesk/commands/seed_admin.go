package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ShardulMane20/Quick-Desk/internal/core/service"
	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/mongo"
)

var (
	seedEmail    string
	seedPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create or promote an admin account",
	Long: `Ensure an admin account exists for --email.

An existing user is promoted to admin and keeps its password. Otherwise a new
admin is created with --password (at least 6 characters).`,
	RunE: runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "", "Admin email (required)")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "Password for a newly created admin")
	_ = seedAdminCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(seedAdminCmd)
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	cfg, _ := bootstrap()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	printStep(out, "Connecting to MongoDB at %s", cfg.Mongo.URI)
	client, db, err := connectMongo(ctx, cfg)
	if err != nil {
		return printError("Cannot reach MongoDB", err, "Check MONGO_URI and that the server is running.")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	// Token operations are not used here, so no token store is wired.
	auth := service.NewAuthService(mongo.NewUserRepository(db), nil, cfg.JWTSecret, time.Hour)
	user, created, err := auth.SeedAdmin(ctx, seedEmail, seedPassword)
	if err != nil {
		return printError("Cannot seed admin", err, "New admins need --password with at least 6 characters.")
	}

	if created {
		printSuccess(out, "Created admin %s (id %s)", user.Email, user.ID)
	} else {
		printSuccess(out, "Promoted %s to admin", user.Email)
	}
	return nil
}

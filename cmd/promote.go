/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// promoteCmd represents the promote command.
var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant a user the head curator role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		conn, err := db.Open(cmd.Context(), cfg.Database, logger.WithPrefix("db"))
		if err != nil {
			return err
		}
		model := store.NewModel(conn)
		defer model.Close()

		users := services.NewUserService(model, notify.Discard{}, logger)
		user, err := users.Promote(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Info("promoted", "user", user.Username, "role", user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

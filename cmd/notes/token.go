package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parthasastry/notes-app/internal/auth"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local use against `notes serve`",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("NOTES_JWT_SECRET is required to mint tokens")
		}
		token, err := auth.NewJWT(cfg.JWTSecret).Sign(tokenEmail)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim to embed")
	_ = tokenCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tokenCmd)
}

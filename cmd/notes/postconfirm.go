package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/parthasastry/notes-app/internal/apigw"
	"github.com/parthasastry/notes-app/internal/profile"
	"github.com/parthasastry/notes-app/internal/storage"
)

var postConfirmCmd = &cobra.Command{
	Use:   "post-confirmation",
	Short: "Run as the Cognito post-confirmation trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := storage.Open(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		h := &apigw.PostConfirmationHandler{
			Profiles: &profile.Service{Store: backend.Profiles},
			Log:      logger,
		}
		lambda.Start(h.Handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postConfirmCmd)
}

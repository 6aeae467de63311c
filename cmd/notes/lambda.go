package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/parthasastry/notes-app/internal/apigw"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as the API Gateway Lambda handler",
	RunE: func(cmd *cobra.Command, args []string) error {
		router, backend, err := openAPI(cmd.Context())
		if err != nil {
			return err
		}
		defer backend.Close()

		h := &apigw.NotesHandler{Router: router}
		lambda.Start(h.Handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

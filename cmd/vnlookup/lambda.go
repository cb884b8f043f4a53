package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda function behind an API Gateway HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Nothing scrapes a lambda, so metrics stay unregistered.
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}

			lambda.StartWithOptions(a.handler.Handle, lambda.WithContext(cmd.Context()))
			return nil
		},
	}
}

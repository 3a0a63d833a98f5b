package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pinboard",
		Short: "Image board backend with interest-based recommendations",
	}

	root.AddCommand(serveCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(recommendCmd())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		users       int
		pinsPerUser int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo users and pins",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(users, pinsPerUser)
		},
	}

	cmd.Flags().IntVar(&users, "users", 50, "number of users to create")
	cmd.Flags().IntVar(&pinsPerUser, "pins-per-user", 20, "max pins per user")
	return cmd
}

func recommendCmd() *cobra.Command {
	var (
		userID     int64
		count      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(userID, count, jsonOutput)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id (required)")
	cmd.Flags().IntVar(&count, "count", 10, "max pins to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

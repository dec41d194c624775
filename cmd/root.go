package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studygap",
	Short: "Exam-prep backend with AI diagnostic analysis",
	Long:  "StudyGap — backend for JAMB exam prep: diagnostic quizzes, AI-generated learning diagnoses, and personalized study plans.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Int("port", 0, "HTTP port (overrides PORT env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

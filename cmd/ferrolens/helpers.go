package main

import (
	"github.com/spf13/cobra"
)

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// getFormat returns the format flag value from the command.
func getFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}

// getOutputFile returns the output file path from the command.
func getOutputFile(cmd *cobra.Command) string {
	outputFile, _ := cmd.Flags().GetString("output")
	return outputFile
}

// getSort returns the sort flag value from the command.
func getSort(cmd *cobra.Command, defaultValue string) string {
	sort, _ := cmd.Flags().GetString("sort")
	if sort == "" {
		return defaultValue
	}
	return sort
}

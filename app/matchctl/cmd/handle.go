package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoockh/orbitmatch/internal/matching"
)

var (
	handleCandidate string
	handleCompany   string
	handleDay       string
)

var handleCmd = &cobra.Command{
	Use:   "handle",
	Short: "Print the anonymous handle a company sees for a candidate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if handleCandidate == "" || handleCompany == "" {
			return errors.New("--candidate and --company are required")
		}
		day := time.Now().UTC()
		if handleDay != "" {
			d, err := time.Parse("2006-01-02", handleDay)
			if err != nil {
				return fmt.Errorf("--day: %w", err)
			}
			day = d
		}
		fmt.Fprintln(cmd.OutOrStdout(), matching.AnonymousHandle(handleCandidate, handleCompany, day))
		return nil
	},
}

func init() {
	handleCmd.Flags().StringVar(&handleCandidate, "candidate", "", "candidate id")
	handleCmd.Flags().StringVar(&handleCompany, "company", "", "company id")
	handleCmd.Flags().StringVar(&handleDay, "day", "", "UTC day as YYYY-MM-DD (default today)")
}

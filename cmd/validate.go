package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gastrade/ugs-auction/infra/curve"
)

var validateCurvePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a forward curve file without solving",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateCurvePath, "curve", "", "forward curve CSV (required)")
	_ = validateCmd.MarkFlagRequired("curve")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	series, err := curve.Load(validateCurvePath)
	if err != nil {
		return err
	}
	cmd.Printf("ok: %d days from %s to %s\n", len(series),
		series[0].Date.Format("02/01/2006"),
		series[len(series)-1].Date.Format("02/01/2006"))
	return nil
}

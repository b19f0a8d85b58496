package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/profile"
	"github.com/spigell/cvwizard/internal/ui"
	"github.com/spigell/cvwizard/internal/wizard"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the completeness score and field checks of a profile",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		path, _ := cmd.Flags().GetString("profile")
		fields, err := profile.Load(path)
		if err != nil {
			logger.Fatal("loading a profile", zap.Error(err))
		}

		printScore(cmd.OutOrStdout(), fields, config.Wizard.Rules, config.Score)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("profile", "p", "", "a YAML file with the CV answers")
	scoreCmd.MarkFlagRequired("profile")
}

func printScore(w io.Writer, fields wizard.Fields, rules wizard.Rules, scoring wizard.ScoreConfig) {
	rules = rules.WithDefaults()
	scoring = scoring.WithDefaults()

	for _, step := range wizard.DefaultSteps() {
		status := "ok"
		if ferr := rules.Check(step, fields[step.Field]); ferr != nil {
			status = ui.Error(ferr.Message)
		}
		fmt.Fprintf(w, "%-12s %s\n", step.Label, status)
	}

	score := scoring.Score(fields)
	fmt.Fprintln(w, ui.ScorePanel(score, wizard.Feedback(score)))
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fairness-audit/backend/internal/ai"
	"fairness-audit/backend/internal/audit"
	"fairness-audit/backend/internal/fairness"
	"fairness-audit/backend/internal/store"
)

func newAuditCmd(root *rootOptions) *cobra.Command {
	var (
		resultsPath  string
		datasetPath  string
		modelVersion string
		persist      bool
		rulesOnly    bool
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a batch of analysis results",
		Long:  "Reads a JSON array of analysis results and an optional dataset description, runs the audit and prints the result as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resultsPath == "" {
				return fmt.Errorf("--results is required")
			}
			var results []fairness.AnalysisResult
			if err := readJSON(resultsPath, &results); err != nil {
				return err
			}
			info := fairness.DatasetInfo{Size: len(results)}
			if datasetPath != "" {
				if err := readJSON(datasetPath, &info); err != nil {
					return err
				}
			}
			if modelVersion == "" {
				modelVersion = root.cfg.ModelVersion
			}

			var recommender ai.Recommender
			if !rulesOnly {
				client, err := ai.NewClient(root.cfg.AI)
				switch {
				case err == nil:
					recommender = client
				case errors.Is(err, ai.ErrDisabled):
					logrus.Debug("AI recommender not configured, using rule table")
				default:
					return fmt.Errorf("ai client: %w", err)
				}
			}

			opts := audit.Options{RecommendTimeout: root.cfg.RecommendTimeout}
			if persist {
				db, err := store.Open(root.cfg.DBPath, true)
				if err != nil {
					return err
				}
				defer db.Close()
				opts.Recorder = db
			}

			engine := audit.NewEngine(nil, recommender, opts)
			result, err := engine.PerformAudit(cmd.Context(), results, info, modelVersion)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Path to a JSON array of analysis results (required)")
	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to a JSON dataset description")
	cmd.Flags().StringVarP(&modelVersion, "model-version", "m", "", "Model version recorded on the audit")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store the audit in the audit database")
	cmd.Flags().BoolVar(&rulesOnly, "rules-only", false, "Skip the AI recommender and use the rule table")
	return cmd
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

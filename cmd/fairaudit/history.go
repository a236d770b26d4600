package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fairness-audit/backend/internal/store"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = root.cfg.DBPath
			}
			db, err := store.Open(dbPath, true)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.ListAudits(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list audits: %w", err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tMODEL\tRISK\tSCORE\tBIAS\tFAIRNESS\tCATEGORY")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%d\t%.3f\t%s\n",
					e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.ModelVersion,
					e.RiskLevel, e.RiskScore, e.BiasCount, e.FairnessScore, e.Category)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the audit database (defaults to AUDIT_DB_PATH)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent n audits")
	return cmd
}

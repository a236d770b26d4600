package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fairness-audit/backend/internal/config"
)

type rootOptions struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fairaudit",
		Short:         "Run fairness audits over bias detector output",
		Long:          "Computes group fairness metrics, risk level and mitigation recommendations for a batch of bias analysis results.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logrus.SetLevel(cfg.LogLevel)
			logrus.SetOutput(cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}
	cmd.AddCommand(newAuditCmd(opts), newHistoryCmd(opts))
	return cmd
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) serversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "Check the health of the configured DNS servers",
		Long: `Servers sends a probe query to every configured DNS server and prints
whether it answered and how long it took.

The exit status is 1 when no server is online.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.client == nil {
				return errors.New("servers is not available with --system-resolver")
			}

			statuses, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SERVER\tONLINE\tLATENCY\tERROR")
			online := 0
			for _, s := range statuses {
				errText := "-"
				if s.Error != nil {
					errText = s.Error.Error()
				}
				if s.Online {
					online++
				}
				fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", s.Server, s.Online, s.Latency.Round(time.Microsecond), errText)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if online == 0 {
				return &exitError{code: exitNegative, err: errors.New("no DNS server is online")}
			}
			return nil
		},
	}
}

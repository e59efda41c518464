// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *app) challengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "DNS TXT ownership challenges",
		Long: `Generate a random verification code for a domain, publish it as a TXT
record, then verify that the record is in place.

Nothing is stored between the two steps: keep the generated value and
pass it to "challenge verify".`,
	}
	cmd.AddCommand(a.challengeGenerateCmd(), a.challengeVerifyCmd())
	return cmd
}

// challengeFlags registers the flags shared by generate and verify.
func challengeFlags(fs *pflag.FlagSet) {
	fs.String("txt-host", "", "label the TXT record lives under, e.g. _myservice")
}

// challengeOptions returns the configured defaults overridden by the
// flags set on cmd.
func (a *app) challengeOptions(cmd *cobra.Command) ([]domain.ChallengeOption, error) {
	opts := a.cfg.ChallengeOptions()
	fs := cmd.Flags()

	if fs.Changed("txt-host") {
		host, err := fs.GetString("txt-host")
		if err != nil {
			return nil, err
		}
		opts = append(opts, domain.WithTXTHost(host))
	}
	if f := fs.Lookup("prefix"); f != nil && f.Changed {
		opts = append(opts, domain.WithPrefix(f.Value.String()))
	}
	if f := fs.Lookup("length"); f != nil && f.Changed {
		n, err := fs.GetInt("length")
		if err != nil {
			return nil, err
		}
		opts = append(opts, domain.WithCodeLength(n))
	}
	return opts, nil
}

func (a *app) challengeGenerateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "generate <domain>",
		Aliases: []string{"start"},
		Short:   "Generate an ownership challenge",
		Example: "  domaincheck challenge generate example.com --prefix myservice --txt-host _myservice",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.challengeOptions(cmd)
			if err != nil {
				return err
			}

			ch, err := a.validator.GenerateChallenge(args[0], opts...)
			if err != nil {
				return &exitError{code: exitNegative, err: err}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{
					"domain": ch.Domain,
					"host":   ch.Host,
					"type":   "TXT",
					"value":  ch.Value,
				})
			}

			fmt.Fprintln(out, "Publish the following DNS record:")
			fmt.Fprintf(out, "  Host:  %s\n", ch.Host)
			fmt.Fprintln(out, "  Type:  TXT")
			fmt.Fprintf(out, "  Value: %s\n", ch.Value)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Then run: domaincheck challenge verify %s %s\n", ch.Domain, ch.Value)
			return nil
		},
	}

	fs := cmd.Flags()
	challengeFlags(fs)
	fs.String("prefix", "", "value prefix, giving <prefix>=<code>")
	fs.Int("length", domain.DefaultCodeLength, "code length in characters")
	fs.BoolVar(&asJSON, "json", false, "print the challenge as JSON")
	return cmd
}

func (a *app) challengeVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify <domain> <expected-value>",
		Short:   "Verify a published ownership challenge",
		Example: "  domaincheck challenge verify example.com myservice=Wq3... --txt-host _myservice",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.challengeOptions(cmd)
			if err != nil {
				return err
			}

			status, err := a.validator.VerifyOwnership(cmd.Context(), args[0], args[1], opts...)
			a.recorder.ObserveOwnership(status)
			fmt.Fprintln(cmd.OutOrStdout(), status)

			switch {
			case status == domain.OwnershipVerified:
				return nil
			case status == domain.OwnershipResolverError:
				return &exitError{code: exitFailure, err: err}
			case err != nil:
				return &exitError{code: exitNegative, err: err}
			default:
				return &exitError{code: exitNegative}
			}
		},
	}
	challengeFlags(cmd.Flags())
	return cmd
}

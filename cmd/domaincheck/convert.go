// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"fmt"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/spf13/cobra"
)

func (a *app) punycodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "punycode <domain>...",
		Aliases: []string{"ascii"},
		Short:   "Convert Unicode domains to their ASCII (xn--) form",
		Example: "  domaincheck punycode 例子.测试 münchen.de",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args, (*domain.Validator).ToPunycode)
		},
	}
}

func (a *app) unicodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unicode <domain>...",
		Short:   "Convert ASCII (xn--) domains to their Unicode form",
		Example: "  domaincheck unicode xn--fsqu00a.xn--0zwm56d",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args, (*domain.Validator).ToUnicode)
		},
	}
}

// convert prints one converted name per line. A failed conversion is
// reported on stderr and makes the command exit with status 1.
func (a *app) convert(cmd *cobra.Command, names []string, fn func(*domain.Validator, string) (string, error)) error {
	v := a.unicodeValidator()
	failed := 0
	for _, name := range names {
		out, err := fn(v, name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if failed > 0 {
		return &exitError{code: exitNegative, err: fmt.Errorf("%d of %d conversions failed", failed, len(names))}
	}
	return nil
}

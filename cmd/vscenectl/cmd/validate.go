// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cogentcore-design/vectorscene/wire"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a document and report migration/deserialization warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, warnings, err := wire.Deserialize(raw, wire.Config{})
		if err != nil {
			return fmt.Errorf("validate %s: %w", args[0], err)
		}
		if len(warnings) == 0 {
			fmt.Println("ok: no warnings")
			return nil
		}
		for _, w := range warnings {
			fmt.Printf("warning: %s: %s: %s\n", w.Op, w.Path, w.Message)
		}
		return nil
	},
}

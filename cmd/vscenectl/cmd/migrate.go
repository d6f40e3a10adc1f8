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

var migrateOut string

func init() {
	migrateCmd.Flags().StringVarP(&migrateOut, "out", "o", "", "write the migrated document here instead of stdout")
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <file>",
	Short: "Bring a document forward to the current schema version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		migrated, warnings, err := wire.Migrate(raw)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", args[0], err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s: %s\n", w.Op, w.Path, w.Message)
		}
		if migrateOut == "" {
			fmt.Println(string(migrated))
			return nil
		}
		return os.WriteFile(migrateOut, migrated, 0o644)
	},
}

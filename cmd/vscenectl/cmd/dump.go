// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/cogentcore-design/vectorscene/wire"
)

var (
	dumpResolveInstances bool
	dumpOmitDefaults     bool
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpResolveInstances, "resolve-instances", false, "flatten every instance into a literal subtree")
	dumpCmd.Flags().BoolVar(&dumpOmitDefaults, "omit-defaults", false, "elide properties at their ambient default value")
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Load a document into the scene graph and re-serialize it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		g, warnings, err := wire.Deserialize(raw, wire.Config{})
		if err != nil {
			return fmt.Errorf("dump %s: %w", args[0], err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s: %s\n", w.Op, w.Path, w.Message)
		}
		out, err := wire.Serialize(g, wire.Config{ResolveInstances: dumpResolveInstances, OmitDefaults: dumpOmitDefaults})
		if err != nil {
			return err
		}
		os.Stdout.Write(pretty.Pretty(out))
		return nil
	},
}

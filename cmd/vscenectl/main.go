// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vscenectl validates, migrates, and dumps on-wire vector scene
// documents from the command line.
package main

import "github.com/cogentcore-design/vectorscene/cmd/vscenectl/cmd"

func main() {
	cmd.Execute()
}

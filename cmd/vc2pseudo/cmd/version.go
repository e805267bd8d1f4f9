// File: version.go
// Title: Version Command
// Description: Prints build and component versions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial version command

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	"github.com/msto63/vc2pseudo/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprintf(out, "vc2pseudo v%s\n", info.Version)
				fmt.Fprintf(out, "  Grammar:    %s\n", info.Grammar)
				fmt.Fprintf(out, "  Resolver:   %s\n", info.Resolver)
				fmt.Fprintf(out, "  Git Commit: %s\n", info.Commit)
				fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
				fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
				fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "yaml":
				return yaml.NewEncoder(out).Encode(info)
			}
			return vcerrors.Newf("unknown version format %q", format).WithCode(vcerrors.CodeInvalidInput)
		},
	}

	versionCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return versionCmd
}

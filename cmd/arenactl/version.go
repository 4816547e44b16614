package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/format"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and arena layout information",
	Long: `The version command prints the build version together with the on-region
layout this binary reads and writes. Arena files are only portable between
builds reporting the same layout.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "arenactl %s (%s, %s)\n", version, commit, runtime.Version())
	fmt.Fprintf(w, "  layout: signature %q, descriptor %d bytes, header %d bytes\n",
		format.DescriptorSignature, format.DescriptorSize, format.HeaderSize)
	fmt.Fprintf(w, "  default split threshold: %d\n", arena.DefaultSplitThreshold)
}

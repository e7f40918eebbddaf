package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoobzio/fieldcodec"
	"github.com/zoobzio/fieldcodec/config"
	"github.com/zoobzio/fieldcodec/host"
)

// schemesCmd lists what run accepts
var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List available schemes and table formats",
	Args:  cobra.NoArgs,
	RunE:  listSchemes,
}

func listSchemes(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Schemes:")
	for _, s := range fieldcodec.Schemes() {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintf(w, "  %s\n", config.SchemeNoneName)

	fmt.Fprintln(w, "Formats:")
	for _, name := range host.Formats() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

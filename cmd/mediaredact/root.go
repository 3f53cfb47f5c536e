package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mediaredact.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mediaredact",
		Short: "Strip non-public media from HTML email notifications",
		Long: `mediaredact rewrites outbound HTML notifications before they are mailed.

Images served by sites that are not public are replaced by a link to the
original post, as are all audio and video elements. Linked images inside
figures are unwrapped and their captions dropped so that nothing of the
media leaks into the mail.

Site visibility comes from the configuration file (.mediaredact) and,
with --db, from a local SQLite registry managed by "mediaredact sites".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRedactCmd())
	cmd.AddCommand(NewSitesCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/mediaredact/internal/config"
	"github.com/nao1215/mediaredact/internal/database"
)

// defaultHistoryLimit is the number of entries shown without --limit.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// It shows notifications recorded by "redact --db --record".
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded redactions",
		Long: `History lists the notifications recorded by "mediaredact redact --db --record",
newest first, with the number of placeholders inserted per media kind.

Examples:
  # Show the last 20 entries
  mediaredact history

  # Show everything as JSON
  mediaredact history --limit 0 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the SQLite registry")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of entries; 0 shows all")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openSiteDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.ListRedactions(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	printHistory(cmd.OutOrStdout(), records)
	return nil
}

// printHistory writes the redaction log as an aligned table.
func printHistory(w io.Writer, records []database.RedactionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No redactions recorded.")
		return
	}

	fmt.Fprintf(w, "Recorded redactions (%d):\n\n", len(records))
	fmt.Fprintf(w, "  %-6s  %-20s  %-6s  %-6s  %-6s  %-12s  %s\n", "ID", "Date", "Images", "Audio", "Video", "Digest", "Source")
	for _, r := range records {
		fmt.Fprintf(w, "  %-6d  %-20s  %-6d  %-6d  %-6d  %-12s  %s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Images,
			r.Audio,
			r.Video,
			shortDigest(r.Digest),
			r.Source,
		)
		if r.Error != "" {
			fmt.Fprintf(w, "          error: %s\n", r.Error)
		}
	}
}

// shortDigest abbreviates a content digest for the table.
func shortDigest(digest string) string {
	const n = 12
	if len(digest) > n {
		return digest[:n]
	}
	return digest
}

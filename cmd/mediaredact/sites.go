package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/mediaredact/internal/config"
	"github.com/nao1215/mediaredact/internal/database"
	"github.com/nao1215/mediaredact/internal/model"
)

// NewSitesCmd creates the sites command and its subcommands.
// The sites live in the SQLite registry used by "redact --db".
func NewSitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Manage the site visibility registry",
		Long: `Sites manages the SQLite registry that maps media URLs to sites.

A media URL belongs to the registered site with the same domain (a leading
"www." is ignored) and the longest path that prefixes the URL path. Images
of sites with a negative visibility code are redacted.

Visibility codes:
   1  public
   0  public, hidden from search engines
  -1  logged-in users only
  -2  site members only
  -3  administrators only

Examples:
  # Mark a subdirectory site as members-only
  mediaredact sites add example.org --path /lab/ --public -2

  # Show all registered sites
  mediaredact sites list

  # Remove a site
  mediaredact sites remove example.org --path /lab/`,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the SQLite registry")

	cmd.AddCommand(newSitesAddCmd())
	cmd.AddCommand(newSitesRemoveCmd())
	cmd.AddCommand(newSitesListCmd())

	return cmd
}

func newSitesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <domain>",
		Short: "Register a site or change its visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("path")
			if err != nil {
				return err
			}
			public, err := cmd.Flags().GetInt("public")
			if err != nil {
				return err
			}

			db, err := openSiteDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			site := &model.Site{Domain: args[0], Path: path, Public: model.Visibility(public)}
			if _, err := db.UpsertSite(cmd.Context(), site); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s%s as %s (%d)\n",
				site.Domain, site.Path, site.Public, int(site.Public))
			return nil
		},
	}

	cmd.Flags().StringP("path", "p", "/", "Base path of the site")
	cmd.Flags().Int("public", int(model.VisibilityPublic), "Visibility code; negative values are restricted")

	return cmd
}

func newSitesRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <domain>",
		Short: "Remove a site from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("path")
			if err != nil {
				return err
			}

			db, err := openSiteDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteSite(cmd.Context(), args[0], path); err != nil {
				if errors.Is(err, database.ErrSiteNotFound) {
					return fmt.Errorf("%w: %s%s", err, model.NormalizeDomain(args[0]), model.NormalizeSitePath(path))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s%s\n",
				model.NormalizeDomain(args[0]), model.NormalizeSitePath(path))
			return nil
		},
	}

	cmd.Flags().StringP("path", "p", "/", "Base path of the site")

	return cmd
}

func newSitesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			db, err := openSiteDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			sites, err := db.ListSites(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sites)
			}
			printSites(cmd.OutOrStdout(), sites)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output sites in JSON format")

	return cmd
}

// openSiteDB opens the registry in the directory given by --db-dir.
func openSiteDB(cmd *cobra.Command) (*database.SiteDB, error) {
	dir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, config.ErrNoDBDir
	}
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// printSites writes the registry as an aligned table.
func printSites(w io.Writer, sites []model.Site) {
	if len(sites) == 0 {
		fmt.Fprintln(w, "No sites registered.")
		return
	}

	fmt.Fprintf(w, "Registered sites (%d):\n\n", len(sites))
	fmt.Fprintf(w, "  %-6s  %-30s  %-20s  %s\n", "ID", "Domain", "Path", "Visibility")
	for _, s := range sites {
		fmt.Fprintf(w, "  %-6d  %-30s  %-20s  %s (%d)\n",
			s.ID, s.Domain, s.Path, s.Public, int(s.Public))
	}
}

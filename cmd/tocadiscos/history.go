package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/tocadiscos/internal/auth"
	"github.com/handiism/tocadiscos/internal/report"
)

func (c *cli) newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List, revert and undo catalog snapshots",
		GroupID: "management",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.History.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
				return nil
			}
			return report.HistoryListing(entries).Render(cmd.OutOrStdout())
		},
	}

	revert := &cobra.Command{
		Use:   "revert <snapshot>",
		Short: "Restore the tables saved in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !c.confirmer(out).Confirm(cmd.Context(), fmt.Sprintf("Restore snapshot %s?", args[0])) {
				fmt.Fprintln(out, "Nothing restored")
				return nil
			}
			if err := c.app.History.Revert(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Restored %s\n", args[0])
			return nil
		},
	}

	undo := &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			entry, reverted, err := c.app.History.Undo(cmd.Context(), c.confirmer(out))
			if err != nil {
				return err
			}
			if !reverted {
				fmt.Fprintln(out, "Nothing restored")
				return nil
			}
			fmt.Fprintf(out, "Undid %q\n", entry.Metadata.Action)
			return nil
		},
	}

	cmd.AddCommand(list, revert, undo)
	return cmd
}

func (c *cli) newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ingest",
		Short:   "Rebuild the authors and albums tables from raw tracks",
		GroupID: "management",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !c.confirmer(out).Confirm(cmd.Context(), "Replace the authors and albums tables?") {
				fmt.Fprintln(out, "Nothing changed")
				return nil
			}
			res, err := c.app.Ingest(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Rebuilt %d artist(s) and %d album(s) from %d track(s), %d skipped\n",
				len(res.Artists), len(res.Albums), res.Used, res.Skipped)
			return nil
		},
	}
}

func (c *cli) newIndexCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "index",
		Short:   "Rebuild the search index",
		GroupID: "management",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Store.Reindex(cmd.Context()); err != nil {
				return err
			}
			n, err := c.app.Index.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d document(s)\n", n)
			return nil
		},
	}
}

func (c *cli) newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Short:   "Manage operator accounts",
		GroupID: "management",
	}

	var admin bool
	add := &cobra.Command{
		Use:   "add <username> <password>",
		Short: "Add an account with a hashed password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.AddUser(cmd.Context(), c.app.Paths.Users, args[0], args[1], admin); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %q\n", args[0])
			return nil
		},
	}
	add.Flags().BoolVar(&admin, "admin", false, "grant access to restricted figures")

	cmd.AddCommand(add)
	return cmd
}

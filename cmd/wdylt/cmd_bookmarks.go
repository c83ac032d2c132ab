package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/exporter"
	"github.com/wdylt/wdylt/internal/importer"
	"github.com/wdylt/wdylt/internal/linkcheck"
	"github.com/wdylt/wdylt/internal/metadata"
	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/picker"
	"github.com/wdylt/wdylt/internal/search"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func (c *cli) searchCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search titles, pick one and open it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			store := c.lib.Snapshot()
			results := search.FuzzySearchBookmarks(store, query)
			out := cmd.OutOrStdout()

			if len(results) == 0 {
				fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
				return nil
			}

			if printOnly {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, r := range results {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Bookmark.Title, r.Bookmark.URL, store.GetFolderPath(r.Bookmark.FolderID))
				}
				return w.Flush()
			}

			var selected *model.Bookmark
			if len(results) == 1 {
				// Single result - select it directly
				selected = results[0].Bookmark
			} else {
				finalModel, err := tea.NewProgram(picker.New(results, query, store)).Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				selected = finalModel.(picker.Picker).SelectedBookmark()
			}
			if selected == nil {
				return nil
			}

			fmt.Fprintf(out, "Opening: %s\n", selected.Title)
			if err := openURL(selected.URL); err != nil {
				return fmt.Errorf("open %s: %w", selected.URL, err)
			}
			return c.lib.MarkVisited(cmd.Context(), selected.ID)
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print matches instead of opening one")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var (
		title       string
		description string
		folderPath  string
		tags        string
		private     bool
		noFetch     bool
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark, filling title and description from the page",
		Example: `  wdylt add go.dev/blog
  wdylt add https://example.com --folder /Reading --title Example --no-fetch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := model.NormalizeURL(args[0])
			if url == "" {
				return model.ErrEmptyURL
			}

			if c.lib.Snapshot().HasBookmarkURL(url) {
				return fmt.Errorf("%s is already bookmarked", url)
			}

			if folderPath == "" {
				folderPath = c.cfg.QuickAddFolder
			}
			folderID, err := c.ensureFolderPath(ctx, folderPath)
			if err != nil {
				return err
			}

			params := model.NewBookmarkParams{
				Title:       title,
				URL:         url,
				Description: description,
				FolderID:    folderID,
				IsPrivate:   private,
				Tags:        model.ParseTags(tags),
			}
			if !noFetch {
				c.enrich(ctx, &params)
			}

			b, err := c.lib.AddBookmark(ctx, params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", b.Title, c.lib.FolderPath(b.FolderID))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&title, "title", "t", "", "title (default: page title)")
	flags.StringVarP(&description, "description", "d", "", "description")
	flags.StringVarP(&folderPath, "folder", "f", "", "folder path, created when missing (default from quick_add_folder)")
	flags.StringVar(&tags, "tags", "", "comma separated tags")
	flags.BoolVar(&private, "private", false, "hide from anonymous API readers")
	flags.BoolVar(&noFetch, "no-fetch", false, "do not download the page")
	return cmd
}

// enrich fills empty params from the page's metadata. Fetch failures are
// logged and otherwise ignored.
func (c *cli) enrich(ctx context.Context, params *model.NewBookmarkParams) {
	page, err := metadata.NewFetcher(nil, c.cfg.LinkCheck.Timeout).Fetch(ctx, params.URL)
	if err != nil {
		c.logger.Warn("fetch page metadata", zap.String("url", params.URL), zap.Error(err))
		return
	}
	if params.Title == "" {
		params.Title = page.Title
	}
	params.Summary = page.Description
	params.Icon = page.Icon
}

func (c *cli) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Merge a Netscape bookmark HTML export into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			folders, bookmarks, err := importer.ParseHTMLBookmarks(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if replace {
				store := model.NewStore()
				store.ImportMerge(folders, bookmarks)
				if err := c.lib.Replace(cmd.Context(), store); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced library with %d folders and %d bookmarks\n",
					len(store.Folders), len(store.Bookmarks))
				return nil
			}

			added, skipped, err := c.lib.ImportMerge(cmd.Context(), folders, bookmarks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks (%d duplicates skipped)\n", added, skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "discard the current library instead of merging")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the library as Netscape bookmark HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = exporter.DefaultExportPath(); err != nil {
					return err
				}
			}

			store := c.lib.Snapshot()
			if err := exporter.WriteFile(path, store); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(store.Bookmarks), path)
			return nil
		},
	}
}

func (c *cli) checkCmd() *cobra.Command {
	var (
		prune     bool
		folder    string
		unhealthy bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check bookmark links and optionally delete dead ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store := c.lib.Snapshot()

			bookmarks := store.Bookmarks
			if folder != "" {
				id, err := c.lib.FolderByPath(folder)
				if err != nil {
					return err
				}
				bookmarks = store.GetBookmarksInFolder(id)
			}

			errOut := cmd.ErrOrStderr()
			results, err := c.newChecker().Check(ctx, bookmarks, func(done, total int) {
				fmt.Fprintf(errOut, "\rchecked %d/%d", done, total)
			})
			fmt.Fprintln(errOut)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			counts := map[linkcheck.Status]int{}
			for _, r := range results {
				counts[r.Status]++
				c.metrics.LinkChecks.WithLabelValues(r.StatusName).Inc()
				if unhealthy && r.Status == linkcheck.Healthy {
					continue
				}
				detail := r.Error
				if r.StatusCode != 0 {
					detail = fmt.Sprintf("%d", r.StatusCode)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.StatusName, detail, r.Bookmark.Title, r.Bookmark.URL)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d healthy, %d dead, %d unreachable\n",
				counts[linkcheck.Healthy], counts[linkcheck.Dead], counts[linkcheck.Unreachable])

			if prune {
				removed, err := c.lib.DeleteBookmarks(ctx, linkcheck.DeadIDs(results))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d dead bookmarks\n", removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete bookmarks whose links are dead (404/410)")
	cmd.Flags().StringVar(&folder, "folder", "", "only check bookmarks directly in this folder")
	cmd.Flags().BoolVar(&unhealthy, "unhealthy", false, "list only dead and unreachable links")
	return cmd
}

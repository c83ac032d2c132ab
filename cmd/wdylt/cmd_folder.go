package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdylt/wdylt/internal/model"
)

func (c *cli) folderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders by path, e.g. /Tech/Programming",
	}
	cmd.AddCommand(
		c.folderListCmd(),
		c.folderAddCmd(),
		c.folderMoveCmd(),
		c.folderRenameCmd(),
		c.folderRemoveCmd(),
		c.folderPathCmd(),
	)
	return cmd
}

func (c *cli) folderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List every folder path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.lib.Snapshot()
			seen := make(map[string]int, len(store.Folders))
			for _, f := range store.Folders {
				seen[store.GetFolderPath(&f.ID)]++
			}

			lines := make([]string, 0, len(store.Folders))
			for _, f := range store.Folders {
				path := store.GetFolderPath(&f.ID)
				line := fmt.Sprintf("%s (%d)", path, len(store.GetBookmarksInFolder(&f.ID)))
				if seen[path] > 1 {
					// Same-named siblings cannot be addressed by path.
					line += " id=" + f.ID
				}
				lines = append(lines, line)
			}
			sort.Strings(lines)
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}

func (c *cli) folderAddCmd() *cobra.Command {
	var description string
	var private bool

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Create a folder and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.lib.FolderByPath(args[0]); !errors.Is(err, model.ErrFolderNotFound) {
				return fmt.Errorf("folder %s already exists", args[0])
			}

			parentPath, name := splitPath(args[0])
			if name == "" {
				return model.ErrEmptyName
			}
			parentID, err := c.ensureFolderPath(ctx, parentPath)
			if err != nil {
				return err
			}

			f, err := c.lib.AddFolder(ctx, model.NewFolderParams{
				Name:        name,
				Description: description,
				ParentID:    parentID,
				IsPrivate:   private,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", c.lib.FolderPath(&f.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "folder description")
	cmd.Flags().BoolVar(&private, "private", false, "hide the folder and its contents from anonymous API readers")
	return cmd
}

func (c *cli) folderMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <path> <new-parent>",
		Short:   `Move a folder under another folder ("/" for root)`,
		Example: `  wdylt folder mv /Reading /Archive`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.lib.FolderByPath(args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return errors.New("cannot move the root")
			}
			parentID, err := c.lib.FolderByPath(args[1])
			if err != nil {
				return err
			}

			if err := c.lib.MoveFolder(cmd.Context(), *id, parentID); err != nil {
				if errors.Is(err, model.ErrCycle) {
					return fmt.Errorf("cannot move %s into itself or one of its subfolders", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s\n", c.lib.FolderPath(id))
			return nil
		},
	}
}

func (c *cli) folderRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.lib.FolderByPath(args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return errors.New("cannot rename the root")
			}
			if err := c.lib.RenameFolder(cmd.Context(), *id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", c.lib.FolderPath(id))
			return nil
		},
	}
}

func (c *cli) folderRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a folder with all its subfolders and bookmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.lib.FolderByPath(args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return errors.New("cannot delete the root")
			}

			res, err := c.lib.DeleteFolder(cmd.Context(), *id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d folders and %d bookmarks\n", len(res.FolderIDs), res.BookmarksRemoved)
			return nil
		},
	}
}

func (c *cli) folderPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <folder-id>",
		Short: "Print the breadcrumb from the root to a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.lib.ResolvePath(args[0])
			if err != nil {
				return err
			}
			names := make([]string, len(path))
			for i, f := range path {
				names[i] = f.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " > "))
			return nil
		},
	}
}

// splitPath splits "/a/b/c" into "/a/b" and "c".
func splitPath(path string) (parent, name string) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "/", path
	}
	return "/" + path[:i], path[i+1:]
}

// ensureFolderPath resolves path, creating each missing folder along the way.
// "/" and "" resolve to root.
func (c *cli) ensureFolderPath(ctx context.Context, path string) (*string, error) {
	var parentID *string
	current := ""
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		current += "/" + name

		id, err := c.lib.FolderByPath(current)
		if err == nil {
			parentID = id
			continue
		}
		if !errors.Is(err, model.ErrFolderNotFound) {
			return nil, err
		}

		f, err := c.lib.AddFolder(ctx, model.NewFolderParams{Name: name, ParentID: parentID})
		if err != nil {
			return nil, err
		}
		parentID = &f.ID
	}
	return parentID, nil
}

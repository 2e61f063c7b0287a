package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"seconddraft/internal/domain"
	"seconddraft/internal/scheduler"
	"seconddraft/internal/storage/files"
)

func newSyncCommand(cc *commandContext) *cobra.Command {
	var collections []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync of every configured collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.syncService(ctx)
			if err != nil {
				return err
			}

			var summary *domain.SyncSummary
			if len(collections) > 0 {
				summary, err = svc.SyncOnly(ctx, collections)
			} else {
				summary, err = svc.Sync(ctx)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, summary)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(summary))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d collections)\n", summary.Result, summary.Collections)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&collections, "collection", nil, "only sync these collection ids")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newScheduleCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Sync now and then on every configured interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.syncService(ctx)
			if err != nil {
				return err
			}

			cc.logger.Info("starting syncer",
				"interval", cc.cfg.Sync.Interval,
				"content_dir", cc.cfg.ContentDir,
			)

			sched := scheduler.NewScheduler(svc, cc.cfg.Sync.Interval, cc.cfg.Sync.Timeout, cc.logger)
			return sched.Start(ctx)
		},
	}
}

func newRenderCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <collection-id> <post-id>",
		Short: "Print the rendered document of a post, caching it in the content store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.reader().Get(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd, doc)
		},
	}
}

func newWarmCommand(cc *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "warm [collection-id...]",
		Short: "Render every post of the given collections into the content store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			ids := args
			if all {
				ids, err = collectionIDs(a.files)
				if err != nil {
					return err
				}
			}
			if len(ids) == 0 {
				return fmt.Errorf("no collections given")
			}

			reader := a.reader()
			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				n, err := reader.Warm(ctx, id)
				if err != nil {
					return fmt.Errorf("warm %s: %w", id, err)
				}
				rows = append(rows, []string{id, strconv.Itoa(n)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Collection", "Rendered"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "warm every collection found in the content directory")
	return cmd
}

func newCollectionsCommand(cc *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List mirrored collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections, err := files.NewStore(cc.cfg.ContentDir).ListCollections()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, collections)
			}
			fmt.Fprintln(cmd.OutOrStdout(), collectionsTable(collections))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newPostsCommand(cc *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "posts <collection-id>",
		Short: "List the rendered posts of a collection held in the content store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			docs, err := a.docs.ListByCollection(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				posts := make([]domain.PostMetadata, len(docs))
				for i, d := range docs {
					posts[i] = d.PostMetadata
				}
				return writeJSON(cmd, posts)
			}
			fmt.Fprintln(cmd.OutOrStdout(), postsTable(docs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func collectionIDs(store *files.Store) ([]string, error) {
	collections, err := store.ListCollections()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(collections))
	for i, c := range collections {
		ids[i] = c.ID
	}
	return ids, nil
}

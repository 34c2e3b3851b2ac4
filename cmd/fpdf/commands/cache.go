package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or manage the cache store",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every cached entry",
	RunE:  runCacheList,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the cache store's contents",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	RunE:  runCacheClear,
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "remove <selector>",
	Short: "Remove one cached entry by id, path, or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheRemove,
}

var cacheFindCmd = &cobra.Command{
	Use:   "find <selector>",
	Short: "Print one cache entry by id, path, or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheFind,
}

var (
	cacheTopField   string
	cacheTopN       int
	cacheTopSample  int
	cacheTopLast    int
	cacheTopSince   string
	cacheClearForce bool
)

var cacheTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Report the most common values of a cache field",
	RunE:  runCacheTop,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd, cacheStatsCmd, cacheClearCmd, cacheRemoveCmd, cacheFindCmd, cacheTopCmd)
	cacheClearCmd.Flags().BoolVar(&cacheClearForce, "force", false, "Skip the confirmation requirement")
	cacheTopCmd.Flags().StringVar(&cacheTopField, "field", "extractionMode", "Field to aggregate: extractionMode, fileStructure, producer")
	cacheTopCmd.Flags().IntVar(&cacheTopN, "top", 0, "Limit to the N most common values (0 = all)")
	cacheTopCmd.Flags().IntVar(&cacheTopSample, "sample", 3, "Sample cache ids per value")
	cacheTopCmd.Flags().IntVar(&cacheTopLast, "last", 0, "Only scan the N most recently cached entries (0 = all)")
	cacheTopCmd.Flags().StringVar(&cacheTopSince, "since", "", "Only scan entries cached on/after this RFC3339 date")
}

func runCacheList(cmd *cobra.Command, args []string) error {
	entries := current.store.List()
	type row struct {
		ID             int    `json:"id"`
		OriginalName   string `json:"originalName"`
		ExtractionMode string `json:"extractionMode"`
		CachedAt       string `json:"cachedAt"`
	}
	rows := make([]row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row{ID: e.ID, OriginalName: e.OriginalName, ExtractionMode: e.ExtractionMode, CachedAt: e.CachedAt.Format(time.RFC3339)})
	}
	return renderRows(rows, "id", "originalName", "extractionMode", "cachedAt")
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	stats := current.store.Stats()
	return renderRows([]any{stats}, "totalCaches", "totalOriginalBytes", "totalStoredBytes", "byExtractionMode", "oldestCachedAt", "newestCachedAt")
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if err := current.store.Clear(cacheClearForce); err != nil {
		return userErrorf(err)
	}
	fmt.Println("cache cleared")
	return nil
}

func runCacheRemove(cmd *cobra.Command, args []string) error {
	if err := current.store.Remove(args[0]); err != nil {
		return userErrorf(err)
	}
	fmt.Println("removed", args[0])
	return nil
}

func runCacheFind(cmd *cobra.Command, args []string) error {
	entry, _, err := current.store.Get(args[0])
	if err != nil {
		return userErrorf(err)
	}
	return renderRows([]any{entry}, "id", "originalPath", "originalName", "extractionMode", "contentHash", "cachedAt")
}

func runCacheTop(cmd *cobra.Command, args []string) error {
	var since time.Time
	if cacheTopSince != "" {
		parsed, err := time.Parse(time.RFC3339, cacheTopSince)
		if err != nil {
			return userErrorf(fmt.Errorf("cache top: parsing --since %q: %w", cacheTopSince, err))
		}
		since = parsed
	}

	values := current.store.TopValues(cacheTopField, cacheTopN, cacheTopSample, cacheTopLast, since)
	return renderRows(values, "value", "count", "samples")
}

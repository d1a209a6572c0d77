package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/ingestion"
	"github.com/poiesic/policymatch/reembed"
	"github.com/poiesic/policymatch/search"
	"github.com/urfave/cli/v2"
)

func importCommand(c *cli.Context) error {
	ctx := c.Context

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	var opts []ingestion.Option
	if c.Bool("append") {
		opts = append(opts, ingestion.WithAppend())
	}
	if c.Bool("no-dedupe") {
		opts = append(opts, ingestion.WithDeduplication(false))
	}
	if c.Bool("warm") {
		encoder, err := svc.NewEncoder(ctx)
		if err != nil {
			return fmt.Errorf("failed to load embedding model: %w", err)
		}
		defer encoder.Release()
		opts = append(opts, ingestion.WithEmbeddingWarmup(svc.Embeddings(), encoder))
	}

	pipeline, err := svc.NewImportPipeline(corpus.WorkbookSources(c.String("workbook")), opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	stats, err := pipeline.Import(ctx)
	if stats != nil {
		printImportStats(c.App.Writer, stats)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := pipeline.Wait(); err != nil {
		return fmt.Errorf("import stored, cache warm-up failed: %w", err)
	}
	return nil
}

func printImportStats(w io.Writer, stats *ingestion.Stats) {
	fmt.Fprintf(w, "Sources read: %s\n", strings.Join(stats.Sources, ", "))
	for name, err := range stats.Failed {
		fmt.Fprintf(w, "Source skipped: %s (%v)\n", name, err)
	}
	fmt.Fprintf(w, "Loaded %d, invalid %d, duplicates %d, stored %d in %v\n",
		stats.Loaded, stats.Invalid, stats.Duplicates, stats.Stored, stats.Elapsed.Round(time.Millisecond))
}

// searchOptions maps --category onto a search option.
func searchOptions(c *cli.Context) ([]search.SearchOption, error) {
	raw := c.String("category")
	if raw == "" {
		return nil, nil
	}
	category, ok := core.ParseCategory(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidCategory, raw)
	}
	return []search.SearchOption{search.WithCategory(category)}, nil
}

func searchCommand(c *cli.Context) error {
	ctx := c.Context

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}
	opts, err := searchOptions(c)
	if err != nil {
		return err
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	profile, err := resolveProfile(ctx, c, svc)
	if err != nil {
		return err
	}
	if err := svc.Rebuild(ctx); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	results := svc.Search(ctx, query, profile, c.Int("top-k"), opts...)
	if c.Bool("json") {
		return writeJSON(c.App.Writer, results)
	}
	printMatches(c.App.Writer, svc.State(), results)
	return nil
}

// printMatches announces keyword results whenever a hit came from the
// fallback, which also happens for a single query the encoder rejected
// while the index is ready.
func printMatches(w io.Writer, state search.State, results []*core.MatchResult) {
	fallback := slices.ContainsFunc(results, func(hit *core.MatchResult) bool { return hit.Fallback })
	if fallback || (len(results) == 0 && state != search.StateEmbeddingsReady) {
		reason := state.String()
		if state == search.StateEmbeddingsReady {
			reason = "query could not be encoded"
		}
		fmt.Fprintf(w, "Semantic search unavailable (%s); showing keyword matches\n", reason)
	}
	fmt.Fprintf(w, "Found %d policies\n", len(results))
	for i, hit := range results {
		fmt.Fprintf(w, "%2d. %s%s\n", i+1, hit.Record.ServiceName, categorySuffix(hit.Record.Category))
		if hit.Record.AgencyName != "" {
			fmt.Fprintf(w, "    %s\n", hit.Record.AgencyName)
		}
		if hit.Fallback {
			continue
		}
		fmt.Fprintf(w, "    score %.3f (semantic %.3f, keyword %.2f", hit.CombinedScore, hit.SemanticScore, hit.KeywordBonus)
		if hit.Eligibility != nil {
			fmt.Fprintf(w, ", eligibility %.2f", hit.Eligibility.Confidence)
		}
		fmt.Fprintln(w, ")")
		if hit.Eligibility != nil {
			for _, reason := range hit.Eligibility.FailedReasons {
				fmt.Fprintf(w, "    - %s\n", reason)
			}
		}
	}
}

func categorySuffix(c core.Category) string {
	if label := c.Label(); label != "" {
		return " [" + label + "]"
	}
	return ""
}

func recommendCommand(c *cli.Context) error {
	ctx := c.Context

	opts, err := searchOptions(c)
	if err != nil {
		return err
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	profile, err := resolveProfile(ctx, c, svc)
	if err != nil {
		return err
	}
	if err := svc.Rebuild(ctx); err != nil {
		return fmt.Errorf("failed to load policies: %w", err)
	}

	records := svc.Recommend(profile, c.Int("limit"), opts...)
	if c.Bool("json") {
		return writeJSON(c.App.Writer, records)
	}

	fmt.Fprintf(c.App.Writer, "Recommended %d policies\n", len(records))
	for i, record := range records {
		fmt.Fprintf(c.App.Writer, "%2d. %s%s\n", i+1, record.ServiceName, categorySuffix(record.Category))
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	config := &reembed.Config{
		BatchSize:      c.Int("reembed-batch-size"),
		ReportInterval: c.Int("report-interval"),
		Force:          c.Bool("force"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("reembed-batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := svc.Reembed(c.Context, config, c.App.ErrWriter); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	ctx := c.Context
	w := c.App.Writer

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	policies, err := svc.Policies().CountPolicies(ctx)
	if err != nil {
		return err
	}
	profiles, err := svc.Profiles().ListProfiles(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Policies: %d\n", policies)
	fmt.Fprintf(w, "Profiles: %d\n", len(profiles))

	for _, model := range []string{c.String("primary-model"), c.String("secondary-model")} {
		if model == "" {
			continue
		}
		cached, err := svc.Embeddings().CountEmbeddings(ctx, model)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Cached vectors (%s): %d\n", model, cached)
	}

	build, err := svc.LastBuild(ctx)
	if err != nil {
		return err
	}
	if build == nil {
		fmt.Fprintln(w, "Last build: never")
		return nil
	}
	fmt.Fprintf(w, "Last build: %s, state %s, model %s, %d records, %d dimensions\n",
		formatTime(build.BuiltAt), build.State, orDash(build.Model), build.Records, build.Dimensions)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package report serialises a finished stats.Aggregator and message.Indexer
// into the plain-text report spec.md §4.8 describes. Section order is
// normative; the exact textual format is not, and follows the original
// implementation's report() layout.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/cyraxred/gitreplay/internal/message"
	"github.com/cyraxred/gitreplay/internal/stats"
)

// Write serialises agg and msg to w in the section order spec.md §4.8
// requires: global stats, per-author block, per-path block, conflicts
// list, conflicts made, conflicts received, global message stats,
// per-author message stats.
func Write(w io.Writer, agg *stats.Aggregator, msg *message.Indexer) error {
	sections := []func(io.Writer, *stats.Aggregator, *message.Indexer) error{
		writeGlobalStats,
		writeAuthorBlock,
		writePathBlock,
		writeConflictsList,
		writeConflictsMade,
		writeConflictsReceived,
		writeGlobalMessageStats,
		writeAuthorMessageStats,
	}
	for _, section := range sections {
		if err := section(w, agg, msg); err != nil {
			return err
		}
	}
	return nil
}

func writeGlobalStats(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== global ==")
	return writeCounters(w, &agg.Global)
}

func writeAuthorBlock(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== authors ==")
	for _, author := range sortedKeys(agg.AuthorStats) {
		a := agg.AuthorStats[author]
		fmt.Fprintf(w, "-- %s --\n", author)
		if err := writeCounters(w, &a.Global); err != nil {
			return err
		}
		for _, path := range sortedKeys(a.Path) {
			fmt.Fprintf(w, "  %s: ", path)
			if err := writeCountersInline(w, a.Path[path]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePathBlock(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== paths ==")
	for _, path := range sortedKeys(agg.PathStats) {
		p := agg.PathStats[path]
		fmt.Fprintf(w, "-- %s (%s) --\n", path, p.Language)
		if err := writeCounters(w, &p.Global); err != nil {
			return err
		}
		for _, author := range sortedKeys(p.Author) {
			fmt.Fprintf(w, "  %s: ", author)
			if err := writeCountersInline(w, p.Author[author]); err != nil {
				return err
			}
		}
	}
	return nil
}

type conflictRow struct {
	editor, original string
	total             int
	counters          *stats.ActionCounters
}

func writeConflictsList(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== conflicts ==")
	var rows []conflictRow
	for editor, row := range agg.ConflictTable {
		for original, counters := range row {
			rows = append(rows, conflictRow{
				editor: editor, original: original,
				total:    counters.Delete + counters.Change,
				counters: counters,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		if rows[i].editor != rows[j].editor {
			return rows[i].editor < rows[j].editor
		}
		return rows[i].original < rows[j].original
	})
	for _, r := range rows {
		fmt.Fprintf(w, "%s <- %s: delete=%d change=%d total=%d\n",
			r.editor, r.original, r.counters.Delete, r.counters.Change, r.total)
	}
	return nil
}

func writeConflictsMade(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== conflicts made ==")
	return writeConflictViews(w, agg.ConflictsMade())
}

func writeConflictsReceived(w io.Writer, agg *stats.Aggregator, _ *message.Indexer) error {
	fmt.Fprintln(w, "== conflicts received ==")
	return writeConflictViews(w, agg.ConflictsReceived())
}

func writeConflictViews(w io.Writer, views map[string]*stats.ConflictCounters) error {
	type row struct {
		actor string
		c     *stats.ConflictCounters
	}
	rows := make([]row, 0, len(views))
	for actor, c := range views {
		rows = append(rows, row{actor, c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].c.Total != rows[j].c.Total {
			return rows[i].c.Total > rows[j].c.Total
		}
		return rows[i].actor < rows[j].actor
	})
	for _, r := range rows {
		fmt.Fprintf(w, "%s: total=%d self_total=%d peer_total=%d "+
			"(delete=%d change=%d self_delete=%d self_change=%d peer_delete=%d peer_change=%d)\n",
			r.actor, r.c.Total, r.c.SelfTotal, r.c.PeerTotal,
			r.c.Delete, r.c.Change, r.c.SelfDelete, r.c.SelfChange, r.c.PeerDelete, r.c.PeerChange)
	}
	return nil
}

func writeGlobalMessageStats(w io.Writer, _ *stats.Aggregator, msg *message.Indexer) error {
	fmt.Fprintln(w, "== message terms ==")
	return writeMessageStats(w, msg.Global)
}

func writeAuthorMessageStats(w io.Writer, _ *stats.Aggregator, msg *message.Indexer) error {
	fmt.Fprintln(w, "== message terms by author ==")
	for _, author := range sortedMessageAuthors(msg) {
		fmt.Fprintf(w, "-- %s --\n", author)
		if err := writeMessageStats(w, msg.Author[author]); err != nil {
			return err
		}
	}
	return nil
}

func writeMessageStats(w io.Writer, s *message.Stats) error {
	type termCount struct {
		term  string
		count int
	}
	terms := make([]termCount, 0, len(s.Term))
	for t, c := range s.Term {
		terms = append(terms, termCount{t, c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})
	for _, t := range terms {
		fmt.Fprintf(w, "  term %q: %d\n", t.term, t.count)
	}

	type bigramCount struct {
		bg    message.Bigram
		count int
	}
	bigrams := make([]bigramCount, 0, len(s.Bigram))
	for bg, c := range s.Bigram {
		bigrams = append(bigrams, bigramCount{bg, c})
	}
	sort.Slice(bigrams, func(i, j int) bool {
		if bigrams[i].count != bigrams[j].count {
			return bigrams[i].count > bigrams[j].count
		}
		return bigrams[i].bg[0]+bigrams[i].bg[1] < bigrams[j].bg[0]+bigrams[j].bg[1]
	})
	for _, bg := range bigrams {
		fmt.Fprintf(w, "  bigram %q: %d\n", bg.bg, bg.count)
	}

	type trigramCount struct {
		tg    message.Trigram
		count int
	}
	trigrams := make([]trigramCount, 0, len(s.Trigram))
	for tg, c := range s.Trigram {
		trigrams = append(trigrams, trigramCount{tg, c})
	}
	sort.Slice(trigrams, func(i, j int) bool {
		if trigrams[i].count != trigrams[j].count {
			return trigrams[i].count > trigrams[j].count
		}
		return trigrams[i].tg[0]+trigrams[i].tg[1]+trigrams[i].tg[2] <
			trigrams[j].tg[0]+trigrams[j].tg[1]+trigrams[j].tg[2]
	})
	for _, tg := range trigrams {
		fmt.Fprintf(w, "  trigram %q: %d\n", tg.tg, tg.count)
	}
	return nil
}

func writeCounters(w io.Writer, c *stats.ActionCounters) error {
	_, err := fmt.Fprintf(w,
		"  create=%d remove=%d modify=%d rename=%d insert=%d delete=%d change=%d commit=%d no_msg=%d\n",
		c.Create, c.Remove, c.Modify, c.Rename, c.Insert, c.Delete, c.Change, c.Commit, c.NoMsg)
	return err
}

func writeCountersInline(w io.Writer, c *stats.ActionCounters) error {
	_, err := fmt.Fprintf(w,
		"create=%d remove=%d modify=%d rename=%d insert=%d delete=%d change=%d commit=%d no_msg=%d\n",
		c.Create, c.Remove, c.Modify, c.Rename, c.Insert, c.Delete, c.Change, c.Commit, c.NoMsg)
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMessageAuthors(msg *message.Indexer) []string {
	keys := make([]string, 0, len(msg.Author))
	for k := range msg.Author {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

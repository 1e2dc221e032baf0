package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/biostream/alphabet"
	"github.com/arloliu/biostream/errs"
)

type kmerCount struct {
	kmer  alphabet.Kmer
	count int
}

func newKmersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kmers FILE",
		Short: "Count the most frequent k-mers of a file",
		Long: `Parse every sequence against an alphabet and count its k-mers.

The most frequent k-mers are printed one per line as KMER<TAB>COUNT, ties
broken by k-mer order. Sequences with symbols outside the alphabet are
errors; pass --continue-on-error to skip them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.kmers(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().IntP("k", "k", 0, "k-mer size")
	cmd.Flags().Int("top", 0, "number of k-mers to print, 0 for all")
	cmd.Flags().String("alphabet", "", "sequence alphabet: DNA, DNAN, RNA or Amino")
	a.bind("kmers.k", cmd.Flags().Lookup("k"))
	a.bind("kmers.top", cmd.Flags().Lookup("top"))
	a.bind("kmers.alphabet", cmd.Flags().Lookup("alphabet"))

	return cmd
}

func (a *app) kmers(w io.Writer, path string) error {
	alpha, err := a.cfg.KmerAlphabet()
	if err != nil {
		return err
	}
	k := a.cfg.Kmers.K
	if k < 1 || k > alphabet.MaxK(alpha) {
		return fmt.Errorf("%w: %d (want 1..%d for %s)", errs.ErrInvalidKmerSize, k, alphabet.MaxK(alpha), alpha)
	}

	r, closeFn, err := openTyped[alphabet.Seq](a, path, alphabet.Codec(alpha))
	if err != nil {
		return err
	}
	defer closeFn()

	counts := make(map[alphabet.Kmer]int)
	var records, skipped int
	for rec, err := range r.All() {
		if err != nil {
			if !a.cfg.Reader.ContinueOnError {
				return fmt.Errorf("%s: %w", path, err)
			}
			skipped++
			log.Warningf("%s: %v", path, err)

			continue
		}
		records++

		kmers, err := rec.Seq.Kmers(k)
		if err != nil {
			return err
		}
		for _, v := range kmers {
			counts[v]++
		}
	}
	log.Infof("%s: %d records, %d skipped, %d distinct %d-mers", path, records, skipped, len(counts), k)

	for _, kc := range topKmers(counts, a.cfg.Kmers.Top) {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", alphabet.DecodeKmer(alpha, kc.kmer, k), kc.count); err != nil {
			return err
		}
	}

	return nil
}

// topKmers returns the n most frequent k-mers, all of them when n <= 0.
func topKmers(counts map[alphabet.Kmer]int, n int) []kmerCount {
	out := make([]kmerCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, kmerCount{kmer: v, count: c})
	}
	slices.SortFunc(out, func(x, y kmerCount) int {
		if c := cmp.Compare(y.count, x.count); c != 0 {
			return c
		}

		return cmp.Compare(x.kmer, y.kmer)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/biostream/compress"
	"github.com/arloliu/biostream/fasta"
	"github.com/arloliu/biostream/fastq"
	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/record"
)

type recordWriter interface {
	Write(rec record.Record[[]byte]) (int, error)
	Flush() error
}

// countingWriter counts the bytes passed to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite a file in another format or compression",
		Long: `Read FILE and write its records as FASTA or FASTQ.

FASTQ to FASTA drops the quality scores. FASTA to FASTQ fails, since FASTA
records carry no quality scores. The output is written to stdout unless
--output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().String("to", "", "output format: fasta or fastq (default same as input)")
	cmd.Flags().String("compress", "", "output compression: none, gzip, zstd, s2 or lz4")
	cmd.Flags().Int("width", 0, "FASTA line width, 0 for single-line sequences")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	a.bind("convert.to", cmd.Flags().Lookup("to"))
	a.bind("convert.compress", cmd.Flags().Lookup("compress"))
	a.bind("convert.width", cmd.Flags().Lookup("width"))
	a.bind("convert.output", cmd.Flags().Lookup("output"))

	return cmd
}

func (a *app) convert(stdout io.Writer, path string) (err error) {
	target, err := a.cfg.TargetFormat()
	if err != nil {
		return err
	}
	ct, err := a.cfg.OutputCompression()
	if err != nil {
		return err
	}

	r, closeFn, err := a.open(path)
	if err != nil {
		return err
	}
	defer closeFn()

	if target == format.FormatUnknown {
		target = r.Format()
	}

	out := stdout
	if name := a.cfg.Convert.Output; name != "" && name != "-" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		out = f
	}

	counter := &countingWriter{w: out}
	zw, err := compress.NewWriter(counter, ct)
	if err != nil {
		return err
	}

	var rw recordWriter
	switch target {
	case format.FormatFastq:
		rw = fastq.NewWriter[[]byte](zw, record.Raw{})
	default:
		rw = fasta.NewWriter[[]byte](zw, record.Raw{}, a.cfg.Convert.Width)
	}

	stats := compress.CompressionStats{Algorithm: ct}
	var records int
	for rec, err := range r.All() {
		if err != nil {
			if a.cfg.Reader.ContinueOnError {
				log.Warningf("%s: %v", path, err)
				continue
			}
			_ = zw.Close()

			return fmt.Errorf("%s: %w", path, err)
		}
		n, err := rw.Write(rec)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("%s: record %q: %w", path, rec.ID, err)
		}
		stats.OriginalSize += int64(n)
		records++
	}

	if err := rw.Flush(); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	stats.CompressedSize = counter.n

	log.Infof("%s: wrote %d records as %s, %d bytes, %s %d bytes (ratio %.3f)",
		path, records, target, stats.OriginalSize, ct, stats.CompressedSize, stats.CompressionRatio())

	return nil
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/biostream"
	"github.com/arloliu/biostream/alphabet"
	"github.com/arloliu/biostream/compress"
	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/format"
)

const (
	threeReads = "@r1/1\nACGT\n+\nIIII\n@r2/1\nAC\n+\n!!\n@r3/1\nACGTAC\n+\n555555\n"
	mates      = "@r1/2\nTTTT\n+\nIIII\n@r2/2\nGG\n+\n!!\n@r3/2\nCCCCCC\n+\n555555\n"
)

// isolate keeps config files and environment of the host out of the test.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestCheck_SingleFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fq", threeReads)

	out, err := runCLI(t, "check", path)
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.True(t, report.Valid)
	require.Equal(t, 0, report.Errors)
	require.Equal(t, []string{path}, report.Files)
	require.NotNil(t, report.R1)
	require.Nil(t, report.R2)
	require.EqualValues(t, 3, report.R1.Records)
	require.EqualValues(t, 12, report.R1.Bases)
	require.Equal(t, 2, report.R1.MinLength)
	require.Equal(t, 6, report.R1.MaxLength)
}

func TestCheck_JSONOutput(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fa", ">a\nACGT\n>b\nAC\nGT\n")

	out, err := runCLI(t, "check", "-o", "json", path)
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.True(t, report.Valid)
	require.EqualValues(t, 2, report.R1.Records)
	require.EqualValues(t, 8, report.R1.Bases)
	require.EqualValues(t, 0, report.R1.QualityRecords)
}

func TestCheck_MalformedRecord(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "bad.fq", "@r1\nACGT\n+\nIII\n@r2\nAC\n+\nII\n")

	out, err := runCLI(t, "check", path)
	require.ErrorIs(t, err, errs.ErrInvalidQuality)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.False(t, report.Valid)
	require.Equal(t, 1, report.Errors)
	require.EqualValues(t, 0, report.R1.Records)
}

func TestCheck_ContinueOnError(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "bad.fq", "@r1\nACGT\n+\nIII\n@r2\nAC\n+\nII\n")

	out, err := runCLI(t, "check", "--continue-on-error", path)
	require.ErrorIs(t, err, errs.ErrInvalidQuality)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.Equal(t, 1, report.Errors)
	require.EqualValues(t, 1, report.R1.Records)
}

func TestCheck_ContinueOnErrorTruncatedGzip(t *testing.T) {
	dir := isolate(t)

	var plain bytes.Buffer
	for i := range 2000 {
		fmt.Fprintf(&plain, "@read_%d/1\nACGTTGCAAC\n+\nIIIIHHHGGF\n", i)
	}
	var gz bytes.Buffer
	zw, err := compress.NewWriter(&gz, format.CompressionGzip)
	require.NoError(t, err)
	_, err = zw.Write(plain.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := writeFile(t, dir, "cut.fq.gz", string(gz.Bytes()[:gz.Len()/2]))

	out, err := runCLI(t, "check", "--continue-on-error", path)
	require.ErrorIs(t, err, errs.ErrIO)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.False(t, report.Valid)
	require.Equal(t, 1, report.Errors)
	require.Less(t, report.R1.Records, int64(2000))
}

func TestCheck_Duplicates(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "dup.fa", ">a one\nAC\n>b\nAC\n>a two\nAC\n")

	out, err := runCLI(t, "check", "--duplicates", "--name-only", path)
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.True(t, report.Valid)
	require.EqualValues(t, 1, report.R1.Duplicates)
	require.Equal(t, 2, report.R1.UniqueIDs)
	require.Equal(t, []string{"a"}, report.R1.DuplicateIDs)
}

func TestCheck_Pair(t *testing.T) {
	dir := isolate(t)
	r1 := writeFile(t, dir, "r1.fq", threeReads)
	r2 := writeFile(t, dir, "r2.fq", mates)

	out, err := runCLI(t, "check", r1, r2)
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.True(t, report.Valid)
	require.Equal(t, 3, report.Pairs)
	require.Equal(t, 0, report.Flagged)
	require.EqualValues(t, 3, report.R1.Records)
	require.EqualValues(t, 3, report.R2.Records)
}

func TestCheck_PairFlagged(t *testing.T) {
	dir := isolate(t)
	r1 := writeFile(t, dir, "r1.fq", threeReads)
	r2 := writeFile(t, dir, "r2.fq", "@r1/2\nTTTT\n+\nIIII\n@x2/2\nGG\n+\n!!\n@r3/3\nCCCCCC\n+\n555555\n")

	out, err := runCLI(t, "check", r1, r2)
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.True(t, report.Valid)
	require.Equal(t, 3, report.Pairs)
	require.Equal(t, 2, report.Flagged)
}

func TestCheck_DiscordantPair(t *testing.T) {
	dir := isolate(t)
	r1 := writeFile(t, dir, "r1.fq", threeReads)
	r2 := writeFile(t, dir, "r2.fq", "@r1/2\nTTTT\n+\nIIII\n")

	out, err := runCLI(t, "check", r1, r2)
	require.ErrorIs(t, err, errs.ErrDiscordantPairs)

	var report checkReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.False(t, report.Valid)
	require.Equal(t, 1, report.Pairs)
}

func TestCheck_MissingFile(t *testing.T) {
	dir := isolate(t)

	out, err := runCLI(t, "check", filepath.Join(dir, "missing.fq"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, out)
}

func TestCheck_ConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "biostream.yaml", "check:\n  output: json\n")
	path := writeFile(t, dir, "reads.fq", threeReads)

	out, err := runCLI(t, "check", path)
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)
}

func TestCheck_EnvOverride(t *testing.T) {
	dir := isolate(t)
	t.Setenv("BIOSTREAM_CHECK_OUTPUT", "json")
	path := writeFile(t, dir, "reads.fq", threeReads)

	out, err := runCLI(t, "check", path)
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)
}

func TestCheck_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fq", threeReads)

	_, err := runCLI(t, "check", "--buffer-size", "4", path)
	require.ErrorIs(t, err, errs.ErrInvalidBufferSize)
}

func TestKmers(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "seq.fa", ">a\nACGT\nACGT\n")

	out, err := runCLI(t, "kmers", "-k", "2", "--top", "3", path)
	require.NoError(t, err)
	require.Equal(t, "AC\t2\nCG\t2\nGT\t2\n", out)

	out, err = runCLI(t, "kmers", "-k", "2", "--top", "0", path)
	require.NoError(t, err)
	require.Equal(t, "AC\t2\nCG\t2\nGT\t2\nTA\t1\n", out)
}

func TestKmers_InvalidSymbol(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "seq.fa", ">a\nACGN\n>b\nAAA\n")

	_, err := runCLI(t, "kmers", "-k", "2", path)
	require.ErrorIs(t, err, errs.ErrInvalidSequence)

	out, err := runCLI(t, "kmers", "-k", "2", "--continue-on-error", path)
	require.NoError(t, err)
	require.Equal(t, "AA\t2\n", out)

	out, err = runCLI(t, "kmers", "-k", "2", "--alphabet", "dnan", path)
	require.NoError(t, err)
	require.Equal(t, "AA\t2\nAC\t1\nCG\t1\nGN\t1\n", out)
}

func TestKmers_InvalidSize(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "seq.fa", ">a\nACGT\n")

	_, err := runCLI(t, "kmers", "-k", "33", path)
	require.ErrorIs(t, err, errs.ErrInvalidKmerSize)

	_, err = runCLI(t, "kmers", "-k", "0", path)
	require.ErrorIs(t, err, errs.ErrInvalidKmerSize)
}

func TestTopKmers(t *testing.T) {
	counts := map[alphabet.Kmer]int{7: 1, 3: 5, 1: 5, 9: 2}

	got := topKmers(counts, 3)
	require.Equal(t, []kmerCount{{1, 5}, {3, 5}, {9, 2}}, got)
	require.Len(t, topKmers(counts, 0), 4)
	require.Len(t, topKmers(counts, 10), 4)
	require.Empty(t, topKmers(nil, 3))
}

func TestConvert_FastqToFasta(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fq", threeReads)

	out, err := runCLI(t, "convert", "--to", "fasta", "--width", "4", path)
	require.NoError(t, err)
	require.Equal(t, ">r1/1\nACGT\n>r2/1\nAC\n>r3/1\nACGT\nAC\n", out)
}

func TestConvert_SameFormat(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fq", threeReads)

	out, err := runCLI(t, "convert", path)
	require.NoError(t, err)
	require.Equal(t, threeReads, out)
}

func TestConvert_FastaToFastq(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "seq.fa", ">a\nACGT\n")

	_, err := runCLI(t, "convert", "--to", "fastq", path)
	require.ErrorIs(t, err, errs.ErrMissingQuality)
}

func TestConvert_CompressedOutput(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "reads.fq", threeReads)

	for _, name := range []string{"gzip", "zstd", "s2", "lz4"} {
		t.Run(name, func(t *testing.T) {
			dst := filepath.Join(dir, "out-"+name)

			out, err := runCLI(t, "convert", "--compress", name, "-o", dst, in)
			require.NoError(t, err)
			require.Empty(t, out)

			f, err := os.Open(dst)
			require.NoError(t, err)
			defer f.Close()

			r, err := biostream.NewReader(f)
			require.NoError(t, err)
			defer r.Close()

			want, err := format.ParseCompression(name)
			require.NoError(t, err)
			require.Equal(t, want, r.Compression())
			require.Equal(t, format.FormatFastq, r.Format())

			var ids []string
			for rec, err := range r.All() {
				require.NoError(t, err)
				ids = append(ids, string(rec.ID))
			}
			require.Equal(t, []string{"r1/1", "r2/1", "r3/1"}, ids)
		})
	}
}

func TestConvert_InvalidCompression(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "reads.fq", threeReads)

	_, err := runCLI(t, "convert", "--compress", "bzip2", path)
	require.Error(t, err)
}

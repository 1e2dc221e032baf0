package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/arloliu/biostream"
	"github.com/arloliu/biostream/internal/config"
	"github.com/arloliu/biostream/record"
)

var log = commonlog.GetLogger("biostream")

// app carries the state shared by the subcommands.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "biostream",
		Short: "Stream FASTA and FASTQ files",
		Long: `Validate, summarize and convert FASTA and FASTQ files.

Inputs may be plain or compressed with gzip, zstd, s2/snappy or lz4; the
format and compression are detected from the file content. Use "-" to read
from stdin.

Settings are read from biostream.yaml (current directory or $HOME), from
BIOSTREAM_* environment variables and from flags, in increasing precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default biostream.yaml in . or $HOME)")
	flags.CountP("verbose", "v", "increase log verbosity (repeatable)")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Int("buffer-size", 0, "read buffer size in bytes")
	flags.Bool("continue-on-error", false, "keep reading after a malformed record")
	flags.Bool("lenient-separator", false, `accept FASTQ separator lines of the form "+<id>"`)

	a.bind("verbose", flags.Lookup("verbose"))
	a.bind("log-file", flags.Lookup("log-file"))
	a.bind("reader.buffer-size", flags.Lookup("buffer-size"))
	a.bind("reader.continue-on-error", flags.Lookup("continue-on-error"))
	a.bind("reader.lenient-separator", flags.Lookup("lenient-separator"))

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newKmersCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))

	return rootCmd
}

// bind ties a Viper key to a flag. Unset flags do not override the config.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbose, path)
	log.Debugf("configuration loaded from %q", a.v.ConfigFileUsed())

	return nil
}

// open opens a raw record stream on path, "-" meaning stdin. The returned
// closer closes both the reader and the file.
func (a *app) open(path string) (*biostream.Reader[[]byte], func(), error) {
	return openTyped[[]byte](a, path, record.Raw{})
}

func openTyped[S any](a *app, path string, dec record.Decoder[S]) (*biostream.Reader[S], func(), error) {
	f, err := openInput(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := biostream.NewTypedReader(f, dec, a.cfg.ReaderOptions()...)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("%s: %s, compression %s", path, r.Format(), r.Compression())

	return r, func() {
		_ = r.Close()
		_ = f.Close()
	}, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

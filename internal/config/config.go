// Package config holds the biostream command line settings, unmarshalled
// from Viper (see cmd/biostream). Settings come from biostream.yaml, from
// BIOSTREAM_* environment variables and from command line flags, the
// latter taking precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/biostream/alphabet"
	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/internal/lineio"
	"github.com/arloliu/biostream/stream"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "BIOSTREAM"

// ReaderConfig are the settings shared by every command that reads records.
type ReaderConfig struct {
	// read buffer size in bytes
	BufferSize int `mapstructure:"buffer-size"`

	// keep reading after a malformed record
	ContinueOnError bool `mapstructure:"continue-on-error"`

	// accept FASTQ separator lines that repeat the identifier
	LenientSeparator bool `mapstructure:"lenient-separator"`
}

// CheckConfig are the settings of the check command.
type CheckConfig struct {
	// report repeated identifiers
	Duplicates bool `mapstructure:"duplicates"`

	// compare identifiers up to the first whitespace only
	NameOnly bool `mapstructure:"name-only"`

	// summary output format, yaml or json
	Output string `mapstructure:"output"`
}

// KmersConfig are the settings of the kmers command.
type KmersConfig struct {
	K        int    `mapstructure:"k"`
	Top      int    `mapstructure:"top"`
	Alphabet string `mapstructure:"alphabet"`
}

// ConvertConfig are the settings of the convert command.
type ConvertConfig struct {
	// target format, fasta or fastq; empty keeps the input format
	To string `mapstructure:"to"`

	// output compression, see format.ParseCompression
	Compress string `mapstructure:"compress"`

	// FASTA line width, 0 for single-line sequences
	Width int `mapstructure:"width"`

	// output path, empty or "-" for stdout
	Output string `mapstructure:"output"`
}

// Config is the root-level settings struct and is a mix of settings
// available in biostream.yaml and those available from the command line.
type Config struct {
	// log verbosity, 0 logs notices and above
	Verbose int `mapstructure:"verbose"`
	// log file path, empty for stderr
	LogFile string `mapstructure:"log-file"`

	Reader  ReaderConfig  `mapstructure:"reader"`
	Check   CheckConfig   `mapstructure:"check"`
	Kmers   KmersConfig   `mapstructure:"kmers"`
	Convert ConvertConfig `mapstructure:"convert"`
}

// New returns a Viper instance with the defaults, the environment binding
// and the config file search path set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("verbose", 0)
	v.SetDefault("log-file", "")
	v.SetDefault("reader.buffer-size", lineio.DefaultBufferSize)
	v.SetDefault("reader.continue-on-error", false)
	v.SetDefault("reader.lenient-separator", false)
	v.SetDefault("check.duplicates", false)
	v.SetDefault("check.name-only", false)
	v.SetDefault("check.output", "yaml")
	v.SetDefault("kmers.k", 21)
	v.SetDefault("kmers.top", 10)
	v.SetDefault("kmers.alphabet", "DNA")
	v.SetDefault("convert.to", "")
	v.SetDefault("convert.compress", "none")
	v.SetDefault("convert.width", 60)
	v.SetDefault("convert.output", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("biostream")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	return v
}

// Load reads the config file, if any, and unmarshals the merged settings.
// An explicit path must exist; a missing biostream.yaml on the search path
// is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the settings that Viper cannot check by type.
func (c *Config) Validate() error {
	if c.Reader.BufferSize < stream.MinBufferSize {
		return fmt.Errorf("%w: reader.buffer-size %d", errs.ErrInvalidBufferSize, c.Reader.BufferSize)
	}
	if _, err := c.KmerAlphabet(); err != nil {
		return err
	}
	if _, err := c.OutputCompression(); err != nil {
		return err
	}
	if _, err := c.TargetFormat(); err != nil {
		return err
	}
	switch c.Check.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("check.output: unknown format %q", c.Check.Output)
	}

	return nil
}

// ReaderOptions converts the reader settings to stream options.
func (c *Config) ReaderOptions() []stream.Option {
	opts := []stream.Option{stream.WithBufferSize(c.Reader.BufferSize)}
	if c.Reader.ContinueOnError {
		opts = append(opts, stream.WithContinueOnError())
	}
	if c.Reader.LenientSeparator {
		opts = append(opts, stream.WithLenientSeparator())
	}

	return opts
}

// KmerAlphabet resolves kmers.alphabet.
func (c *Config) KmerAlphabet() (*alphabet.Alphabet, error) {
	for _, a := range []*alphabet.Alphabet{alphabet.DNA, alphabet.DNAN, alphabet.RNA, alphabet.Amino} {
		if strings.EqualFold(a.Name(), c.Kmers.Alphabet) {
			return a, nil
		}
	}

	return nil, fmt.Errorf("kmers.alphabet: unknown alphabet %q", c.Kmers.Alphabet)
}

// OutputCompression resolves convert.compress.
func (c *Config) OutputCompression() (format.CompressionType, error) {
	ct, err := format.ParseCompression(c.Convert.Compress)
	if err != nil {
		return 0, fmt.Errorf("convert.compress: %w", err)
	}

	return ct, nil
}

// TargetFormat resolves convert.to. FormatUnknown means "same as input".
func (c *Config) TargetFormat() (format.SequenceFormat, error) {
	switch strings.ToLower(c.Convert.To) {
	case "":
		return format.FormatUnknown, nil
	case "fasta", "fa":
		return format.FormatFasta, nil
	case "fastq", "fq":
		return format.FormatFastq, nil
	default:
		return format.FormatUnknown, fmt.Errorf("convert.to: unknown format %q", c.Convert.To)
	}
}

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Will be set by go-build
var (
	Version string
	Rev     string
)

type cliOptions struct {
	showVersion *bool
	showHelp    *bool
	configFile  string
}

func Parse() *Config {
	// Set log format
	formatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	}
	logrus.SetFormatter(formatter)
	logrus.SetOutput(colorable.NewColorableStdout()) // For Windows
	logrus.SetLevel(logrus.InfoLevel)

	pflag.Usage = showUsageAndExit
	opts := defineFlags(pflag.CommandLine)
	pflag.Parse()

	if *opts.showHelp {
		showUsageAndExit()
	}

	if *opts.showVersion {
		fmt.Fprintf(os.Stderr, "Version %s", Version)
		if Rev != "" {
			fmt.Fprintf(os.Stderr, ", build %s", Rev)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}

	cfg, err := load(viper.GetViper(), pflag.CommandLine, opts.configFile)
	if err != nil {
		logrus.Fatalf("Failed to parse %q, error: %s", viper.ConfigFileUsed(), err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugln("Using config file:", viper.ConfigFileUsed())
	return cfg
}

func defineFlags(fs *pflag.FlagSet) *cliOptions {
	defaults := Default()
	opts := &cliOptions{}
	opts.showVersion = fs.BoolP("version", "v", false, "Show version number")
	opts.showHelp = fs.BoolP("help", "h", false, "Show usage message")
	fs.MarkHidden("help")
	fs.BoolP("debug", "d", false, "Enable debug mode")
	fs.BoolP("list-sources", "l", false, "List supported sources")
	fs.StringVarP(&opts.configFile, "config-file", "c", "", "Config file path, "+
		"by default erc20-tokens uses \"erc20_tokens.yml\" in current directory, $HOME or /etc")
	fs.StringP("token-file", "f", defaults.TokenFile, "Token address JSON file to update, "+
		"relative paths are resolved against the executable's directory")
	fs.StringSliceP("sources", "s", defaults.Sources, "Comma-separated sources to query, "+
		"earlier ones win when two sources disagree on a symbol")
	fs.IntP("timeout", "t", defaults.Timeout, "HTTP request timeout in seconds")
	fs.Int("max-pages", defaults.MaxPages, "Stop paginated sources after this many pages, 0 means no limit")
	fs.StringP("proxy", "p", "", "Proxy used when sending HTTP request \n(eg. "+
		"\"http://localhost:7777\", \"https://localhost:7777\", \"socks5://localhost:1080\")")
	fs.BoolP("dry-run", "n", false, "Fetch and merge, but do not write the token file")
	fs.BoolP("report", "r", false, "Print a per-source summary table when done")
	fs.SortFlags = false
	return opts
}

func load(v *viper.Viper, fs *pflag.FlagSet, configFile string) (*Config, error) {
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	// Set configure file
	v.SetConfigName("erc20_tokens") // name of config file (without extension)
	v.AddConfigPath(".")            // path to look for the config file in
	v.AddConfigPath("$HOME")        // optionally look for config in the HOME directory
	v.AddConfigPath("/etc")         // and /etc
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.Warnf("Error reading config file: %v", err)
		}
	}

	// Defaults come in through the bound flags
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenFile == "" {
		return errors.New("token-file must not be empty")
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	if c.MaxPages < 0 {
		return errors.Errorf("max-pages must not be negative, got %d", c.MaxPages)
	}
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	return nil
}

func showUsageAndExit() {
	// Print usage message and exit
	fmt.Fprintf(os.Stderr, "\nUsage: %s [Options]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "\nDownload ERC20 token addresses from DEX relays and merge them into a local JSON file")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	pflag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nUse --list-sources to see which sources are supported")
	os.Exit(0)
}

func ListSourcesAndExit(sources []string) {
	printSources(os.Stderr, sources)
	os.Exit(0)
}

func printSources(w io.Writer, sources []string) {
	fmt.Fprintln(w, "Supported sources:")
	for _, name := range sources {
		fmt.Fprintf(w, " %s\n", name)
	}
}

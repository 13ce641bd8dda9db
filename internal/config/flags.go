package config

import (
	"fmt"

	"github.com/dmitrijs2005/vcardshell/internal/flagx"
	"github.com/spf13/pflag"
)

// parseFlags applies -d/--cards-dir, -l/--log and -v/--version on top of cfg. Other
// arguments are filtered out first so -c does not count as unknown.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "--cards-dir", "-l", "--log", "-v", "--version"})

	fs := pflag.NewFlagSet("vcardshell", pflag.ContinueOnError)
	fs.StringVarP(&cfg.CardsDir, "cards-dir", "d", cfg.CardsDir, "directory holding *.vcf files")
	fs.StringVarP(&cfg.DebugLogPath, "log", "l", cfg.DebugLogPath, "debug log file")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "print build data and exit")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	return nil
}

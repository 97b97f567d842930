package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/tocadiscos/internal/app"
	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/config"
)

// cli holds the flags shared by every command and the wired application.
type cli struct {
	configPath string
	dataDir    string
	logLevel   string
	user       string
	password   string
	yes        bool

	in  *bufio.Reader
	app *app.App
}

func newRootCommand(stdin io.Reader) *cobra.Command {
	c := &cli{in: bufio.NewReader(stdin)}

	root := &cobra.Command{
		Use:   "tocadiscos",
		Short: "Record label catalog manager",
		Long: `tocadiscos manages a record label's catalog of artists, albums and
tracks kept in CSV tables. Every change is preceded by a snapshot so it can
be undone, and royalty figures are shown only to administrators.`,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	root.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "tocadiscos.json", "settings file")
	flags.StringVar(&c.dataDir, "data-dir", "", "data directory (overrides the settings file)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&c.user, "user", "", "log in as this user to see restricted figures")
	flags.StringVar(&c.password, "password", "", "password for --user (default $TOCADISCOS_PASSWORD)")
	flags.BoolVarP(&c.yes, "yes", "y", false, "answer yes to confirmation prompts")

	root.AddCommand(
		c.newArtistCommand(),
		c.newAlbumCommand(),
		c.newSearchCommand(),
		c.newReportCommand(),
		c.newPlayCommand(),
		c.newHistoryCommand(),
		c.newIngestCommand(),
		c.newIndexCommand(),
		c.newAudioCommand(),
		c.newUserCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if c.dataDir != "" {
		settings.SetDataDir(c.dataDir)
	}
	if c.logLevel != "" {
		settings.LogLevel = c.logLevel
	}

	a, err := app.New(settings)
	if err != nil {
		return err
	}
	c.app = a

	if c.user != "" {
		password := c.password
		if password == "" {
			password = os.Getenv(config.EnvPrefix + "_PASSWORD")
		}
		if err := a.Session.Login(c.user, password); err != nil {
			return err
		}
		if !a.Session.IsAuthorized() {
			a.Log.Warn().Str("user", c.user).Msg("User is not an administrator, restricted figures stay hidden")
		}
	}
	return nil
}

func (c *cli) teardown(*cobra.Command, []string) error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// confirmer asks on stdin unless --yes was given.
func (c *cli) confirmer(out io.Writer) catalog.Confirmer {
	return catalog.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if c.yes {
			return true
		}
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, _ := c.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

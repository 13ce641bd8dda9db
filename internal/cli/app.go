package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/vcardshell/internal/buildinfo"
	"github.com/dmitrijs2005/vcardshell/internal/cache"
	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/config"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/services"
	"github.com/dmitrijs2005/vcardshell/internal/tui"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
	"github.com/dmitrijs2005/vcardshell/internal/watch"
	"github.com/google/uuid"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config   *config.Config
	log      logging.Logger
	closeLog func() error
	db       *sql.DB
	adapter  *vcf.Adapter
	contacts services.ContactService
	cards    services.CardService

	// input and output replace stdin and stdout when set.
	input  io.Reader
	output io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, closeLog, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Path:    c.DebugLogPath,
	})
	if err != nil {
		return nil, err
	}
	log = log.With("session", uuid.NewString())

	db, err := cache.Open(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache", "error", err)
		_ = closeLog()
		return nil, err
	}

	adapter := vcf.New(nil)
	contacts := services.NewContactService(db, adapter, log)
	cards := services.NewCardService(c.CardsDir, adapter, contacts, log)

	return &App{
		config:   c,
		log:      log,
		closeLog: closeLog,
		db:       db,
		adapter:  adapter,
		contacts: contacts,
		cards:    cards,
	}, nil
}

// Run fills the cache and runs the interface until the user exits. A nil
// error means a normal exit.
func (a *App) Run(ctx context.Context) error {
	if a.output == nil && !isTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	a.log.Info(ctx, "starting", "version", buildinfo.Version(), "cards", a.config.CardsDir)

	dirExists := true
	if _, err := a.contacts.RebuildFromDirectory(ctx, a.config.CardsDir); err != nil {
		if !errors.Is(err, common.ErrCardsDirMissing) {
			return fmt.Errorf("loading cards: %w", err)
		}
		dirExists = false
		a.log.Warn(ctx, "cards directory missing", "dir", a.config.CardsDir)
	}

	model := tui.New(ctx, tui.Deps{
		Dir:      a.config.CardsDir,
		Contacts: a.contacts,
		Cards:    a.cards,
		Log:      a.log,
	})
	if !dirExists {
		model = model.WithNotice(fmt.Sprintf("No '%s' directory found.", a.config.CardsDir))
	}

	p := tea.NewProgram(model, a.programOptions(ctx)...)

	if a.config.WatchCards && dirExists {
		w, err := watch.New(a.config.CardsDir, services.CardSuffix, func(e watch.Event) {
			p.Send(tui.CardEvent(e))
		}, a.log)
		if err != nil {
			a.log.Warn(ctx, "watcher disabled", "error", err)
		} else if err := w.Start(ctx); err != nil {
			a.log.Warn(ctx, "watcher disabled", "error", err)
			w.Stop()
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) || ctx.Err() == nil {
			return fmt.Errorf("terminal session: %w", err)
		}
		a.log.Info(ctx, "terminated", "cause", ctx.Err())
	}

	if n := a.adapter.Live(); n != 0 {
		a.log.Error(ctx, "card handles not released", "live", n)
	}
	a.log.Info(ctx, "exiting")
	return nil
}

func (a *App) programOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if a.input != nil {
		opts = append(opts, tea.WithInput(a.input))
	}
	if a.output != nil {
		opts = append(opts, tea.WithOutput(a.output))
	}
	return opts
}

// Close releases the cache and flushes the debug log.
func (a *App) Close() error {
	return errors.Join(a.db.Close(), a.closeLog())
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	viperlib "github.com/spf13/viper"
	tea "github.com/charmbracelet/bubbletea"

	"kestrel/internal/config"
	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/fileio"
	"kestrel/internal/highlight"
	"kestrel/internal/log"
	"kestrel/internal/mode"
	"kestrel/internal/server"
	"kestrel/internal/termui"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts, avoiding a race between the
	// terminal's OSC 11 response and Bubble Tea's own input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool

	// viper uses "::" as its key delimiter instead of ".", the same
	// choice the teacher's cmd/root.go makes, so dotted tokens never get
	// misread as nested paths.
	viper = viperlib.NewWithOptions(viperlib.KeyDelimiter("::"))
)

var rootCmd = &cobra.Command{
	Use:     "editor [FILE]",
	Short:   "A modal, multi-cursor terminal text editor",
	Long:    `A modal terminal text editor core with multi-cursor editing, undo/redo, and pluggable syntax highlighting.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/editor/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug mode with logging (also: KESTREL_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("theme", defaults.Theme)
	viper.SetDefault("keybindings", defaults.Keybindings)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("log_path", defaults.LogPath)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "editor"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		log.Info(log.CatConfig, "config loaded", "path", viper.ConfigFileUsed())
	}

	_ = viper.Unmarshal(&cfg)
}

// runApp builds the document map, registers every mode, wires the
// editor/renderer/highlighter workers together, and runs the terminal
// frontend on the goroutine that launched it, mirroring the teacher's
// own RunE shape.
func runApp(_ *cobra.Command, args []string) error {
	debug := os.Getenv("KESTREL_DEBUG") != "" || debugFlag || cfg.Debug
	if debug {
		logPath := cfg.LogPath
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "kestrel")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "editor starting", "version", version, "debug", true, "logPath", logPath)
	}

	store := fileio.NewStore(afero.NewOsFs())
	dm := document.NewDocumentMap()

	if len(args) == 1 {
		doc := store.Open(args[0])
		state := document.NewHistoricalEditorState(dm)
		tx := document.NewTransaction()
		tx.AppendMod(document.DocMapPrim{Mod: document.PopDoc{DocID: 0}})
		tx.AppendMod(document.DocMapPrim{Mod: document.CreateDoc{Doc: doc}})
		if !state.ModifyWithTx(tx) {
			return fmt.Errorf("loading %s: could not install document", args[0])
		}
	}

	state := document.NewHistoricalEditorState(dm)
	normal := mode.NewNormalMode()
	ed := editor.NewModalEditor(state, mode.NormalModeID).
		WithMode(normal).
		WithMode(mode.NewInsertMode()).
		WithMode(mode.NewSelectionMode(normal)).
		WithMode(mode.NewGotoMode()).
		WithMode(mode.NewCommandMode()).
		WithSaver(store)

	es := server.NewEditorServer(ed)
	highlighter := highlight.New(cfg.Theme)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go es.Run(ctx)
	go highlighter.Run(ctx, es)

	model := termui.NewModel()
	program := tea.NewProgram(model, tea.WithAltScreen())

	rs := server.NewRendererServer(es, termui.Bridge(program))
	model.SetRenderer(rs)

	go rs.Run(ctx)

	if doc, ok := dm.GetCurrDoc(); ok {
		highlighter.Highlight(es, doc)
	}

	_, err := program.Run()
	cancel()
	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string, called from main with ldflags.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

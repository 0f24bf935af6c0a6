package ui

import (
	"context"
	"dragchess/src"
	"dragchess/src/engine"
	"dragchess/src/engine/myengine"
	"dragchess/src/engine/uci"
	"dragchess/src/logic/board"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logic/convert/convpgn"
	"dragchess/src/logx"
	clic "dragchess/ui/cli"
	"dragchess/ui/conf"
	"dragchess/ui/gui"
	"dragchess/ui/gui/ghelper/gdialog"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

const (
	logfile         string = "dragchess.log"
	engineStartTime        = 10 * time.Second
)


func GetLogger(file *os.File, c *cli.Command, debug bool) *logx.Logx {
	lvl := logx.GetLoggerLevelByString(c.String("level"))
	if debug && !c.IsSet("level") {
		lvl = logx.GetLoggerLevelByString("debug")
	}
	l := logx.NewLogx(lvl, debug, c.Bool("console"))
	l.InitLogger(file)
	return l
}

// loadConfig reads the config file and applies the command line on top
func loadConfig(c *cli.Command) (*conf.Config, error) {
	cfg, err := conf.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("engine") {
		cfg.EnginePath = c.String("engine")
	}
	if c.IsSet("strength") {
		if lvl := int(c.Int("strength")); engine.LevelFromInt(lvl) != engine.LevelInvalid {
			cfg.EngineLevel = lvl
		}
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

type session struct {
	id   string
	game *src.Game
	eng  engine.Engine
	logx logx.Logger
}

func newSession(ctx context.Context, c *cli.Command, cfg *conf.Config, l logx.Logger, console bool) (*session, error) {
	id := uuid.NewString()
	gl := l.With("game", id)

	eng := openEngine(cfg, gl)
	initCtx, cancel := context.WithTimeout(ctx, engineStartTime)
	defer cancel()
	if err := eng.Init(initCtx); err != nil {
		return nil, fmt.Errorf("error start engine %s: %w", cfg.EnginePath, err)
	}
	adapter := engine.NewAdapter(eng, gl, engine.Policy{
		Timeout:    cfg.EngineTimeout,
		RetryDelay: cfg.RetryDelay,
	})

	geo := convcoord.Classic
	reg := board.NewClassic(geo)
	animator := cfg.Animator(reg, console)

	game := src.NewGame(geo, reg, adapter, animator, gl, src.Options{Async: cfg.AsyncEngine})
	if path := c.String("record"); path != "" {
		game.OnMove(recorder(path, map[convpgn.PGNHeader]string{
			convpgn.PGNHeaderEvent:  "dragchess",
			convpgn.PGNHeaderDate:   time.Now().Format("2006.01.02"),
			convpgn.PGNHeaderWhite:  "human",
			convpgn.PGNHeaderBlack:  filepath.Base(cfg.EnginePath),
			convpgn.PGNHeaderGameID: id,
		}, gl))
	}
	gl.Infof("new game, engine %s level %d, animation %v, async %v", cfg.EnginePath, cfg.EngineLevel, animator.Mode(), cfg.AsyncEngine)
	return &session{id: id, game: game, eng: eng, logx: gl}, nil
}

// openEngine picks the in-process engine for "internal", a UCI process otherwise
func openEngine(cfg *conf.Config, l logx.Logger) engine.Engine {
	params := engine.LevelToParams(engine.LevelFromInt(cfg.EngineLevel))
	if cfg.EnginePath == myengine.Name {
		return myengine.NewMyEngine(l, params)
	}
	return uci.NewUCIExec(l, params, cfg.EnginePath, cfg.EngineArgs...)
}

func (s *session) Close() {
	s.game.Close()
	s.eng.Close()
}

// recorder rewrites the PGN file after every move
func recorder(path string, headers map[convpgn.PGNHeader]string, l logx.Logger) func(src.MoveEvent) {
	return func(ev src.MoveEvent) {
		f, err := os.Create(path)
		if err != nil {
			l.Errorf("error open record %s: %v", path, err)
			return
		}
		defer f.Close()
		if err := convpgn.WritePGN(f, ev.History, headers); err != nil {
			l.Errorf("error write record %s: %v", path, err)
		}
	}
}

func openLog() (*os.File, error) {
	return os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

func RunGUI(ctx context.Context, c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()

	cfg, err := loadConfig(c)
	if err != nil {
		gdialog.Fatal(err)
		return err
	}
	l := GetLogger(file, c, cfg.Debug)
	defer l.Sync() //nolint:errcheck

	s, err := newSession(ctx, c, cfg, l, false)
	if err != nil {
		l.Errorf("%v", err)
		gdialog.Fatal(err)
		return err
	}
	defer s.Close()

	g, err := gui.NewGUI(s.game, cfg.AssetsDir, cfg.Debug, s.logx)
	if err != nil {
		l.Errorf("error init GUI: %v", err)
		gdialog.Fatal(err)
		return err
	}
	return g.Run()
}

func RunCLI(ctx context.Context, c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	l := GetLogger(file, c, cfg.Debug)
	defer l.Sync() //nolint:errcheck

	s, err := newSession(ctx, c, cfg, l, true)
	if err != nil {
		l.Errorf("%v", err)
		return err
	}
	defer s.Close()

	clic.EnableANSI()
	cl := clic.NewCLI(s.game, clic.PrintSnapshot, os.Stdin, os.Stdout)
	return cl.RunLineMode(ctx)
}

func SaveConfig(c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("config saved to %s\n", cfg.Path())
	return nil
}

func RunDragChess() error {
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level (debug, info, warn, error)",
		Value:   "info",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	ef := &cli.StringFlag{
		Name:    "engine",
		Aliases: []string{"e"},
		Usage:   "path to UCI engine or \"internal\"",
	}
	sf := &cli.IntFlag{
		Name:    "strength",
		Aliases: []string{"s"},
		Usage:   "engine level 1..10",
	}
	rf := &cli.StringFlag{
		Name:  "record",
		Usage: "write the game to PGN file",
	}
	cff := &cli.StringFlag{
		Name:  "config",
		Usage: "path to config file",
	}
	// root flags are inherited by the sub-commands
	flags := []cli.Flag{df, lf, cf, ef, sf, rf, cff}

	return (&cli.Command{
		Name:  "dragchess",
		Usage: "drag and drop chess against a UCI engine",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:  "cli",
				Usage: "play in the terminal",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunCLI(ctx, c); err != nil {
						fmt.Printf("error dragchess: %v\n", err)
					}
					return nil
				},
			},
			{
				Name:  "gui",
				Usage: "play in a window",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunGUI(ctx, c); err != nil {
						fmt.Printf("error GUI: %v\n", err)
					}
					return nil
				},
			},
			{
				Name:  "config",
				Usage: "save the effective config",
				Action: func(ctx context.Context, c *cli.Command) error {
					return SaveConfig(c)
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RunGUI(ctx, c); err != nil {
				fmt.Printf("error GUI: %v\n", err)
			}
			return nil
		},
	}).Run(context.Background(), os.Args)
}

package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/game"
	"github.com/hailam/checkersplay/internal/storage"
	"github.com/hailam/checkersplay/internal/ui/picker"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / board.Size
	PanelWidth   = ScreenWidth - BoardSize
)

// engineDelay paces engine moves so an engine duel can be followed.
const engineDelay = 400 * time.Millisecond

// UIScale is the global HiDPI scale factor, set by Game.Layout.
var UIScale float64 = 1.0

// Options configures a Game. Stored preferences override Mode, HumanColor
// and the search depth.
type Options struct {
	Mode       config.Mode
	HumanColor board.Color
	MaxPlies   int // 0 = no limit
}

// aiReply is the answer of a background search. gen identifies the search
// so that answers for an abandoned position are dropped.
type aiReply struct {
	gen int
	res engine.SearchResult
	err error
}

// Game implements ebiten.Game.
type Game struct {
	game   *game.Game
	picker *picker.Picker

	mode       config.Mode
	humanColor board.Color
	maxPlies   int

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	log      *zap.Logger

	// AI Engine
	engine     *engine.Engine
	aiThinking bool
	aiGen      int
	aiMove     chan aiReply
	lastMoveAt time.Time
	lastSearch string

	gameResult string

	// HiDPI scaling
	scale float64
}

// NewGame creates the desktop game. store may be nil, in which case
// preferences and results are not persisted.
func NewGame(eng *engine.Engine, store *storage.Storage, opts Options, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")
	if fontErr != nil {
		logger.Warn("text rendering disabled", zap.Error(fontErr))
	}

	g := &Game{
		mode:       opts.Mode,
		humanColor: opts.HumanColor,
		maxPlies:   opts.MaxPlies,
		storage:    store,
		renderer:   NewRenderer(BoardSize, SquareSize, logger),
		input:      NewInputHandler(),
		log:        logger,
		engine:     eng,
		aiMove:     make(chan aiReply, 4),
		scale:      1.0,
	}
	if g.humanColor != board.Black {
		g.humanColor = board.White
	}

	g.loadPreferences()
	g.panel = NewPanel(g)
	g.startGame()
	return g
}

// loadPreferences loads user preferences and statistics from storage.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	if g.storage == nil {
		g.applyFlip()
		return
	}

	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		g.log.Warn("failed to load preferences", zap.Error(err))
	} else {
		g.prefs = prefs
		if mode, err := config.ParseMode(prefs.GameMode); err == nil {
			g.mode = mode
		}
		if c, ok := board.ParseColor(prefs.HumanColor); ok && c != board.NoColor {
			g.humanColor = c
		}
		if prefs.Depth > 0 {
			g.engine.SetDepth(prefs.Depth)
		}
	}

	if g.stats, err = g.storage.LoadStats(); err != nil {
		g.log.Warn("failed to load stats", zap.Error(err))
	}

	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		g.log.Warn("failed to check first launch", zap.Error(err))
	} else if first {
		g.log.Info("first launch", zap.String("user", g.prefs.Username))
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			g.log.Warn("failed to mark first launch complete", zap.Error(err))
		}
	}
	g.applyFlip()
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}

	opts := g.engine.Options()
	g.prefs.GameMode = g.mode.String()
	g.prefs.HumanColor = strings.ToLower(g.humanColor.String())
	g.prefs.Depth = opts.Depth
	g.prefs.KingWeight = opts.KingWeight
	g.prefs.Randomize = opts.Randomize
	g.prefs.RootCutoff = opts.RootCutoff.String()
	g.prefs.MaximalCapture = opts.MaximalCapture
	g.prefs.LastPlayed = time.Now()

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		g.log.Warn("failed to save preferences", zap.Error(err))
	}
}

// applyFlip puts the human's pieces at the bottom, unless the stored
// preference asks for the opposite view.
func (g *Game) applyFlip() {
	g.renderer.SetFlipped((g.humanColor == board.Black) != g.prefs.FlipBoard)
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.handleKeys()

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.checkAIMove()
	g.maybeStartAI()
	g.updateCursor()
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyS):
		g.SwapSidesAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.prefs.FlipBoard = !g.prefs.FlipBoard
		g.applyFlip()
		g.savePreferences()
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.picker.Clear()
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() || g.hoveringMovable() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *Game) hoveringMovable() bool {
	if !g.humanTurn() {
		return false
	}
	sq := g.renderer.ScreenToSquare(g.input.MousePosition())
	if sq == board.NoSquare {
		return false
	}
	for _, t := range g.picker.Targets() {
		if t == sq {
			return true
		}
	}
	for _, m := range g.game.Legal(g.engine.Rules()) {
		if m.From() == sq {
			return true
		}
	}
	return false
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)

	selected, path := g.picker.Selected(), g.picker.Path()
	g.renderer.DrawHighlights(screen, selected, path, g.picker.Targets(), g.game.LastMove())

	liftedAt := board.NoSquare
	if len(path) > 0 {
		liftedAt = path.To()
	}
	g.renderer.DrawPieces(screen, g.game.Board(), selected, liftedAt)

	g.panel.Draw(screen, g.scale)
}

// Layout returns the game's screen dimensions in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput turns clicks on the board into moves. A right click or
// Enter plays a shorter jump chain that could be continued.
func (g *Game) handleBoardInput() {
	if !g.humanTurn() {
		return
	}

	if g.input.IsRightJustPressed() || IsKeyJustPressed(ebiten.KeyEnter) {
		if m, ok := g.picker.Commit(); ok {
			g.makeMove(m)
		}
		return
	}

	if !g.input.IsLeftJustPressed() {
		return
	}
	sq := g.renderer.ScreenToSquare(g.input.MousePosition())
	if sq == board.NoSquare {
		return
	}
	if m, ok := g.picker.Click(sq); ok {
		g.makeMove(m)
	}
}

// humanTurn reports whether a human may move now.
func (g *Game) humanTurn() bool {
	if g.game.Over() || g.aiThinking {
		return false
	}
	return !g.engineTurn()
}

// engineTurn reports whether the engine controls the side to move.
func (g *Game) engineTurn() bool {
	switch g.mode {
	case config.EngineVsEngine:
		return true
	case config.HumanVsEngine:
		return g.game.ToMove() != g.humanColor
	}
	return false
}

// makeMove validates and plays m, then prepares the next turn.
func (g *Game) makeMove(m board.Move) {
	mover := g.game.ToMove()
	if err := g.game.Apply(m, g.engine.Rules()); err != nil {
		g.log.Warn("move rejected", zap.Stringer("move", m), zap.Error(err))
		return
	}
	g.log.Debug("move", zap.Stringer("color", mover), zap.Stringer("move", m), zap.Int("ply", g.game.Ply()))
	g.lastMoveAt = time.Now()

	g.picker.Reset(g.game.Legal(g.engine.Rules()))
	if o := g.game.Outcome(); o != nil {
		g.finish(*o)
	}
}

// finish announces the result and stores it.
func (g *Game) finish(o game.Outcome) {
	g.gameResult = "Game over: " + o.String()
	g.log.Info("game over", zap.String("game", g.game.ID()), zap.Stringer("outcome", o))

	if g.storage == nil {
		return
	}
	result := g.game.Result(game.Record{
		Mode:       g.mode.String(),
		HumanColor: g.humanColor,
		HasHuman:   g.mode == config.HumanVsEngine,
		Depth:      g.engine.Options().Depth,
	})
	if err := g.storage.RecordGame(result); err != nil {
		g.log.Error("failed to record game", zap.Error(err))
		return
	}
	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}
}

// maybeStartAI starts a search when the engine is to move.
func (g *Game) maybeStartAI() {
	if g.game.Over() || g.aiThinking || !g.engineTurn() {
		return
	}
	if time.Since(g.lastMoveAt) < engineDelay {
		return
	}
	g.startAIThinking()
}

// startAIThinking searches the current position in a goroutine. The search
// gets its own engine built from the current options, so settings may change
// while it runs.
func (g *Game) startAIThinking() {
	g.aiThinking = true
	g.aiGen++
	gen := g.aiGen

	b, color := g.game.Board(), g.game.ToMove()
	eng := engine.New(g.engine.Options(), g.log)
	g.log.Debug("search started", zap.Stringer("color", color), zap.Int("gen", gen))

	go func() {
		res, err := eng.BestMove(b, color)
		g.aiMove <- aiReply{gen: gen, res: res, err: err}
	}()
}

// checkAIMove plays the engine's answer once it arrives. Answers from an
// abandoned search are drained and dropped.
func (g *Game) checkAIMove() {
	select {
	case reply := <-g.aiMove:
		if reply.gen != g.aiGen || !g.aiThinking {
			return
		}
		g.aiThinking = false
		if errors.Is(reply.err, engine.ErrGameOver) {
			return
		}
		if reply.err != nil {
			g.log.Error("search failed", zap.Error(reply.err))
			return
		}
		res := reply.res
		g.lastSearch = fmt.Sprintf("%s: score %s, %d nodes",
			res.Move, engine.ScoreToString(res.Score), res.Nodes)
		g.makeMove(res.Move)
	default:
	}
}

// cancelAI abandons a running search; its answer will be dropped.
func (g *Game) cancelAI() {
	g.aiGen++
	g.aiThinking = false
}

func (g *Game) startGame() {
	g.cancelAI()
	g.game = game.New(g.maxPlies)
	g.picker = picker.New(g.game.Legal(g.engine.Rules()))
	g.gameResult = ""
	g.lastSearch = ""
	g.lastMoveAt = time.Time{}
	g.log.Info("new game", zap.String("game", g.game.ID()), zap.Stringer("mode", g.mode))
}

// NewGameAction starts a new game.
func (g *Game) NewGameAction() {
	g.startGame()
}

// SwapSidesAction gives the human the other color.
func (g *Game) SwapSidesAction() {
	g.humanColor = g.humanColor.Other()
	g.cancelAI()
	g.picker.Clear()
	g.applyFlip()
	g.savePreferences()
}

// SetMode changes who plays each side. The game in progress continues.
func (g *Game) SetMode(mode config.Mode) {
	if mode == g.mode {
		return
	}
	g.mode = mode
	g.cancelAI()
	g.picker.Clear()
	g.savePreferences()
}

// SetDepth changes the search depth for the next engine move.
func (g *Game) SetDepth(depth int) {
	g.engine.SetDepth(depth)
	g.savePreferences()
}

// Close saves the preferences.
func (g *Game) Close() {
	g.cancelAI()
	g.savePreferences()
}

// Mode returns who plays each side.
func (g *Game) Mode() config.Mode {
	return g.mode
}

// Depth returns the engine search depth.
func (g *Game) Depth() int {
	return g.engine.Options().Depth
}

// Moves returns the moves played so far.
func (g *Game) Moves() []string {
	return g.game.Moves()
}

// ToMove returns the side to move.
func (g *Game) ToMove() board.Color {
	return g.game.ToMove()
}

// HumanColor returns the color the human plays against the engine.
func (g *Game) HumanColor() board.Color {
	return g.humanColor
}

// GameOver reports whether the current game has ended.
func (g *Game) GameOver() bool {
	return g.game.Over()
}

// GameResult describes how the game ended.
func (g *Game) GameResult() string {
	return g.gameResult
}

// IsAIThinking reports whether a search is running.
func (g *Game) IsAIThinking() bool {
	return g.aiThinking
}

// LastSearch summarizes the engine's last answer.
func (g *Game) LastSearch() string {
	return g.lastSearch
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.prefs.Username
}

// Stats returns the stored statistics, or nil without storage.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

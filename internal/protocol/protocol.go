// Package protocol implements a line-based engine protocol modeled on UCI,
// so that match runners and other programs can drive the engine over a pipe.
//
// Commands:
//
//	uci                                   identify, list options, answer uciok
//	isready                               answer readyok
//	ucinewgame | newgame                  reset to the starting position
//	position startpos [moves m1 m2 ...]   set up a position
//	position layout <rows> <w|b> [moves ...]
//	go [depth n]                          search; answers info and bestmove
//	stop                                  wait for the running search
//	setoption name <name> value <value>
//	d                                     print the board
//	perft <n>                             count move paths
//	quit
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/game"
)

// Engine identification sent in answer to "uci".
const (
	Name   = "CheckersPlay"
	Author = "CheckersPlay Team"
)

// maxDepth bounds the Depth option and "go depth".
const maxDepth = 20

// Handler speaks the protocol for one engine.
type Handler struct {
	engine *engine.Engine
	game   *game.Game
	log    *zap.Logger

	mu  sync.Mutex // guards out
	out io.Writer

	// Search state
	searching  bool
	searchDone chan struct{}
}

// New creates a protocol handler writing to out. A nil logger disables
// logging.
func New(eng *engine.Engine, out io.Writer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine: eng,
		game:   game.New(0),
		log:    logger.Named("protocol"),
		out:    out,
	}
}

// Run reads commands from in until "quit", end of input or cancellation.
// A running search is always waited for before Run returns.
func (h *Handler) Run(ctx context.Context, in io.Reader) error {
	defer h.wait()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		h.log.Debug("command", zap.String("line", line))

		switch cmd {
		case "uci":
			h.handleUCI()
		case "isready":
			h.println("readyok")
		case "ucinewgame", "newgame":
			h.wait()
			h.game = game.New(0)
		case "position":
			h.wait()
			h.handlePosition(args)
		case "go":
			h.wait()
			h.handleGo(args)
		case "stop":
			h.wait()
		case "quit":
			return nil
		case "setoption":
			h.wait()
			h.handleSetOption(args)
		// Debug commands
		case "d":
			h.wait()
			h.printf("%s%s to move\n", h.game.Board(), h.game.ToMove())
		case "perft":
			h.wait()
			h.handlePerft(ctx, args)
		default:
			h.infoString("unknown command %s", cmd)
		}
	}
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (h *Handler) handleUCI() {
	opts := h.engine.Options()
	h.printf("id name %s\n", Name)
	h.printf("id author %s\n", Author)
	h.println()
	h.printf("option name Depth type spin default %d min 1 max %d\n", opts.Depth, maxDepth)
	h.printf("option name KingWeight type spin default %d min 1 max 100\n", opts.KingWeight)
	h.printf("option name Randomize type check default %t\n", opts.Randomize)
	h.printf("option name Seed type string default %d\n", opts.Seed)
	h.printf("option name RootCutoff type combo default %s var %s var %s\n",
		opts.RootCutoff, engine.CutoffPrune, engine.CutoffRescan)
	h.printf("option name MaximalCapture type check default %t\n", opts.MaximalCapture)
	h.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves a3b4 b6a5
//   - position layout <rows> <w|b>
//   - position layout <rows> <w|b> moves c3e5,e5c7
//
// A bad layout leaves the position unchanged; a bad move keeps the moves
// before it.
func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var g *game.Game
	var rest []string
	switch args[0] {
	case "startpos":
		g = game.New(0)
		rest = args[1:]
	case "layout":
		if len(args) < 3 {
			h.infoString("position layout needs rows and a side to move")
			return
		}
		b, err := board.ParseLayout(args[1])
		if err != nil {
			h.infoString("invalid layout: %v", err)
			return
		}
		c, ok := board.ParseColor(args[2])
		if !ok || c == board.NoColor {
			h.infoString("invalid side to move %s", args[2])
			return
		}
		g = game.FromPosition(b, c, 0)
		rest = args[3:]
	default:
		return
	}
	h.game = g

	if len(rest) == 0 || rest[0] != "moves" {
		return
	}
	for _, s := range rest[1:] {
		m, err := board.ParseMove(s)
		if err == nil {
			err = h.game.Apply(m, h.engine.Rules())
		}
		if err != nil {
			h.infoString("invalid move %s: %v", s, err)
			return
		}
	}
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int // 0 = the configured depth
}

// handleGo starts a search of the current position. The answer is written
// by the search goroutine.
func (h *Handler) handleGo(args []string) {
	opts := parseGoOptions(args)
	depth := opts.Depth
	if depth < 1 || depth > maxDepth {
		depth = h.engine.Options().Depth
	}

	h.engine.OnInfo = h.sendInfo

	b, toMove := h.game.Board(), h.game.ToMove()
	over := h.game.Over()

	h.searching = true
	h.searchDone = make(chan struct{})
	go func() {
		defer close(h.searchDone)

		if over {
			h.println("bestmove none")
			return
		}
		res, err := h.engine.BestMoveAt(b, toMove, depth)
		if err != nil {
			// No legal move for the side to move.
			h.println("bestmove none")
			return
		}
		if res.Fallback {
			h.infoString("no move beats the window, playing the first move")
		}
		h.printf("bestmove %s\n", res.Move)
	}()
}

// parseGoOptions parses "go" command arguments. Unknown tokens are skipped.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}

	return opts
}

// sendInfo outputs search info.
func (h *Handler) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if len(info.Move) > 0 {
		parts = append(parts, "pv "+info.Move.String())
	}
	h.printf("info %s\n", strings.Join(parts, " "))
}

// wait blocks until the running search, if any, has answered.
func (h *Handler) wait() {
	if h.searching {
		<-h.searchDone
		h.searching = false
	}
}

// handleSetOption processes "setoption" commands.
func (h *Handler) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}
	key, val := strings.ToLower(strings.Join(name, " ")), strings.Join(value, " ")

	opts := h.engine.Options()
	var err error
	switch key {
	case "depth":
		opts.Depth, err = strconv.Atoi(val)
		if err == nil && (opts.Depth < 1 || opts.Depth > maxDepth) {
			err = fmt.Errorf("must be between 1 and %d", maxDepth)
		}
	case "kingweight":
		opts.KingWeight, err = strconv.Atoi(val)
	case "randomize":
		opts.Randomize, err = strconv.ParseBool(val)
	case "seed":
		opts.Seed, err = strconv.ParseUint(val, 10, 64)
	case "rootcutoff":
		opts.RootCutoff, err = engine.ParseRootCutoffPolicy(val)
	case "maximalcapture":
		opts.MaximalCapture, err = strconv.ParseBool(val)
	default:
		h.infoString("unknown option %s", strings.Join(name, " "))
		return
	}
	if err == nil {
		err = opts.Validate()
	}
	if err != nil {
		h.infoString("invalid value for %s: %v", strings.Join(name, " "), err)
		return
	}

	h.engine.SetOptions(opts)
	h.log.Info("option changed", zap.String("name", key), zap.String("value", val))
}

// handlePerft runs a perft test on the current position.
func (h *Handler) handlePerft(ctx context.Context, args []string) {
	depth := 4
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	entries, err := h.engine.PerftDivide(ctx, h.game.Board(), h.game.ToMove(), depth)
	if err != nil {
		h.infoString("perft: %v", err)
		return
	}
	elapsed := time.Since(start)

	var nodes uint64
	for _, e := range entries {
		h.printf("%s: %d\n", e.Move, e.Nodes)
		nodes += e.Nodes
	}
	h.printf("Nodes: %d\n", nodes)
	h.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		h.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (h *Handler) infoString(format string, args ...any) {
	h.printf("info string "+format+"\n", args...)
}

func (h *Handler) printf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.out, format, args...)
}

func (h *Handler) println(args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, args...)
}

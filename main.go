// CheckersPlay - A checkers game built with Ebitengine
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/app"
	"github.com/hailam/checkersplay/internal/ui"
)

func main() {
	var flags app.Flags
	flags.Register(pflag.CommandLine)
	pflag.Parse()

	env, err := app.Setup(&flags, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer env.Close()

	game := ui.NewGame(env.Engine(), env.Storage, ui.Options{
		Mode:       env.Mode(),
		HumanColor: env.HumanColor(),
		MaxPlies:   env.Config.Game.MaxPlies,
	}, env.Log.Logger)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("CheckersPlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		env.Log.Error("game loop stopped", zap.Error(err))
	}
}

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/config"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 28
	ButtonHeight   = 40
	TabHeight      = 34
	SectionLabelH  = 20
	historyRowH    = 22
	statusBarH     = 90
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// depthChoices are the search depths offered by the panel.
var depthChoices = []int{1, 2, 3, 4, 5, 6}

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with game controls, the move list and the status.
type Panel struct {
	game *Game

	newGameBtn *Button
	swapBtn    *Button
	modeTabs   []*Button // indexed by config.Mode
	depthTabs  []*Button // parallel to depthChoices

	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

func (p *Panel) createButtons() {
	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	halfW := (contentW - 8) / 2
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: halfW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}
	p.swapBtn = &Button{
		X: contentX + halfW + 8, Y: newGameY,
		W: halfW, H: ButtonHeight,
		Label:   "Swap Sides",
		OnClick: p.game.SwapSidesAction,
	}

	modeTabY := newGameY + ButtonHeight + SectionSpacing - 8 + SectionLabelH
	tabW := contentW / 3
	labels := []string{"vs Engine", "Engine Duel", "vs Human"}
	p.modeTabs = make([]*Button, len(labels))
	for i, label := range labels {
		mode := config.Mode(i)
		p.modeTabs[i] = &Button{
			X: contentX + tabW*i, Y: modeTabY, W: tabW, H: TabHeight,
			Label:   label,
			OnClick: func() { p.game.SetMode(mode) },
		}
	}

	depthTabY := modeTabY + TabHeight + SectionSpacing + SectionLabelH - 8
	depthW := contentW / len(depthChoices)
	p.depthTabs = make([]*Button, len(depthChoices))
	for i, d := range depthChoices {
		p.depthTabs[i] = &Button{
			X: contentX + depthW*i, Y: depthTabY, W: depthW, H: TabHeight - 2,
			Label:   fmt.Sprint(d),
			OnClick: func() { p.game.SetDepth(d) },
		}
	}
}

func (p *Panel) buttons() []*Button {
	all := []*Button{p.newGameBtn, p.swapBtn}
	all = append(all, p.modeTabs...)
	return append(all, p.depthTabs...)
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && mx >= BoardSize && my >= p.historyStartY() {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(wheelY*30)))
	}

	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel. Layout is in logical pixels, multiplied by scale
// when drawing.
func (p *Panel) Draw(screen *ebiten.Image, scale float64) {
	d := panelDrawer{screen: screen, scale: scale}

	d.rect(BoardSize, 0, PanelWidth, ScreenHeight, panelBg)

	d.primaryButton(p.newGameBtn)
	d.secondaryButton(p.swapBtn)

	d.label("Players", BoardSize+PanelPadding, p.modeTabs[0].Y-SectionLabelH)
	for i, btn := range p.modeTabs {
		d.tab(btn, config.Mode(i) == p.game.Mode())
	}

	d.label("Search depth", BoardSize+PanelPadding, p.depthTabs[0].Y-SectionLabelH)
	for i, btn := range p.depthTabs {
		d.tab(btn, depthChoices[i] == p.game.Depth())
	}

	historyY := p.historyStartY()
	d.label("Moves", BoardSize+PanelPadding, historyY)
	p.drawMoveHistory(d, historyY+SectionLabelH+4)

	p.drawStatusBar(d)
}

func (p *Panel) historyStartY() int {
	last := p.depthTabs[0]
	return last.Y + last.H + SectionSpacing - 4
}

func (p *Panel) drawMoveHistory(d panelDrawer, startY int) {
	moves := p.game.Moves()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		d.text("No moves yet", x, startY+5, textMuted)
		return
	}

	maxY := ScreenHeight - statusBarH
	visibleHeight := maxY - startY
	totalRows := (len(moves) + 1) / 2
	p.maxScrollY = max(0, totalRows*historyRowH-visibleHeight)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / historyRowH
	y := startY - (p.scrollY % historyRowH)
	for row := startRow; row < totalRows && y <= maxY-historyRowH; row++ {
		if y >= startY {
			if row%2 == 1 {
				d.rect(BoardSize+PanelPadding-4, y-2, PanelWidth-PanelPadding*2+8, historyRowH, moveRowAlt)
			}
			d.text(fmt.Sprintf("%d.", row+1), x, y, textMuted)
			d.text(moves[row*2], x+36, y, textPrimary)
			if row*2+1 < len(moves) {
				d.text(moves[row*2+1], x+150, y, textPrimary)
			}
		}
		y += historyRowH
	}
}

func (p *Panel) drawStatusBar(d panelDrawer) {
	statusY := ScreenHeight - statusBarH + 14
	x := BoardSize + PanelPadding

	d.rect(x, statusY-10, PanelWidth-PanelPadding*2, 1, dividerColor)

	var status string
	statusColor := textPrimary
	switch {
	case p.game.GameOver():
		status = p.game.GameResult()
		statusColor = statusGameOver
	case p.game.IsAIThinking():
		status = fmt.Sprintf("%s is thinking...", p.game.ToMove())
		statusColor = statusThinking
	default:
		status = fmt.Sprintf("%s to move", p.game.ToMove())
	}
	d.text(status, x, statusY, statusColor)

	if info := p.game.LastSearch(); info != "" {
		d.text(info, x, statusY+22, textSecondary)
	}

	human := "you play White"
	if p.game.HumanColor() == board.Black {
		human = "you play Black"
	}
	if stats := p.game.Stats(); stats != nil {
		human = fmt.Sprintf("%s  ·  %d-%d-%d", human, stats.Wins, stats.Losses, stats.Draws)
	}
	d.text(fmt.Sprintf("%s, %s", p.game.Username(), human), x, statusY+44, textMuted)
}

// panelDrawer draws panel elements given in logical pixels.
type panelDrawer struct {
	screen *ebiten.Image
	scale  float64
}

func (d panelDrawer) f(v int) float32 {
	return float32(float64(v) * d.scale)
}

func (d panelDrawer) rect(x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(d.screen, d.f(x), d.f(y), d.f(w), d.f(h), c, false)
}

func (d panelDrawer) stroke(btn *Button, c color.Color) {
	vector.StrokeRect(d.screen, d.f(btn.X), d.f(btn.Y), d.f(btn.W), d.f(btn.H), 1, c, false)
}

func (d panelDrawer) label(s string, x, y int) {
	d.text(s, x, y, textMuted)
}

func (d panelDrawer) primaryButton(btn *Button) {
	bg := accentColor
	if btn.pressed {
		bg = accentPressed
	} else if btn.hovered {
		bg = accentHover
	}
	d.rect(btn.X, btn.Y, btn.W, btn.H, bg)
	d.stroke(btn, accentPressed)
	d.textCentered(btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (d panelDrawer) secondaryButton(btn *Button) {
	bg := buttonBg
	if btn.pressed {
		bg = buttonPressedBg
	} else if btn.hovered {
		bg = buttonHoverBg
	}
	d.rect(btn.X, btn.Y, btn.W, btn.H, bg)
	border := buttonBorder
	if btn.hovered {
		border = accentColor
	}
	d.stroke(btn, border)
	d.textCentered(btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textSecondary)
}

func (d panelDrawer) tab(btn *Button, active bool) {
	bg := tabInactiveBg
	switch {
	case active:
		bg = tabActiveBg
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered:
		bg = tabHoverBg
	}
	d.rect(btn.X, btn.Y, btn.W, btn.H, bg)

	border := buttonBorder
	if active {
		border = tabActiveBg
	} else if btn.hovered {
		border = accentColor
	}
	d.stroke(btn, border)

	fg := textSecondary
	if active {
		fg = textPrimary
	}
	d.textCentered(btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, fg)
}

func (d panelDrawer) text(s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * d.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(d.f(x)), float64(d.f(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(d.screen, s, face, op)
}

func (d panelDrawer) textCentered(s string, centerX, centerY int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * d.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(d.f(centerX))-w/2, float64(d.f(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(d.screen, s, face, op)
}

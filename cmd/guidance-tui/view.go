package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/session"
	"github.com/decker502/arpathfinder/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

var (
	styleBackdrop = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleDistance = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHint     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePrompt   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleDenied   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// cueArrows 每个方向的箭头字形
var cueArrows = map[components.Direction]rune{
	components.DirectionTop:    '▲',
	components.DirectionRight:  '▶',
	components.DirectionBottom: '▼',
	components.DirectionLeft:   '◀',
}

// View 把会话状态画到终端
type View struct {
	screen     tcell.Screen
	onboarding config.OnboardingConfig
	now        func() time.Time
}

// NewView 创建终端视图
func NewView(screen tcell.Screen, onboarding config.OnboardingConfig) *View {
	return &View{screen: screen, onboarding: onboarding, now: time.Now}
}

// Draw 按会话状态绘制一帧
func (v *View) Draw(sess *session.Session) {
	v.screen.Clear()
	w, h := v.screen.Size()

	switch sess.State() {
	case session.StateLoading:
		v.centered(h/2, "Requesting camera and location access...", styleText)

	case session.StateDenied:
		v.centered(h/2-1, "Access needed", styleDenied)
		v.centered(h/2+1, "Guidance needs both the camera and your location. Press q to exit.", styleText)

	case session.StateReady:
		snap := sess.Engine.Snapshot()
		v.drawBackdrop(w, h, snap.Now)
		v.drawSnapshot(w, h, snap)
		v.centered(h-2, friendStatus(sess, v.now()), styleHint)
	}

	v.screen.Show()
}

// drawBackdrop 模拟相机画面：滚动的地面网格
func (v *View) drawBackdrop(w, h int, now float64) {
	offset := int(now*4) % 4
	for y := h / 2; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+offset)%8 == 0 || (y+offset)%4 == 0 {
				v.screen.SetContent(x, y, '·', nil, styleBackdrop)
			}
		}
	}
}

func (v *View) drawSnapshot(w, h int, snap systems.GuidanceSnapshot) {
	if snap.CueActive {
		v.drawCue(w, h, snap.CueDirection, snap.CueIntensity)
	}
	if snap.MessageVisible {
		v.centered(h/2-3, " "+snap.Message+" ", styleMessage)
	}
	if snap.Started || snap.DistanceActive {
		v.centered(h-4, systems.FormatDistance(snap.MetersRemaining), styleDistance)
	}
	if !snap.Started && !snap.NotificationVisible {
		v.centered(h/2, "Tap (space) anywhere to start", styleHint)
	}
	if snap.NotificationVisible {
		v.drawPrompt(w, h)
	}
}

// drawCue 箭头亮度跟随动画强度
func (v *View) drawCue(w, h int, dir components.Direction, intensity float64) {
	x, y := w/2, h/2
	switch dir {
	case components.DirectionTop:
		y = 1
	case components.DirectionRight:
		x = w - 3
	case components.DirectionBottom:
		y = h - 6
	case components.DirectionLeft:
		x = 2
	}
	level := int32(40 + intensity*215)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, level, level/2)).Bold(intensity > 0.5)
	v.screen.SetContent(x, y, cueArrows[dir], nil, style)
}

// drawPrompt 引导提示框
func (v *View) drawPrompt(w, h int) {
	width := w - 4
	lines := wrapWords(v.onboarding.Message, width-4)
	lines = append(lines, "", fmt.Sprintf("[y] %s    [n] %s", v.onboarding.ConfirmLabel, v.onboarding.DeclineLabel))
	top := h/2 - len(lines)/2
	for i, line := range lines {
		v.centered(top+i, pad(line, width), stylePrompt)
	}
}

// centered 在第 y 行居中写一行文字（超出屏幕宽度时截断）
func (v *View) centered(y int, str string, style tcell.Style) {
	if str == "" {
		return
	}
	w, _ := v.screen.Size()
	runes := []rune(str)
	if len(runes) > w {
		runes = runes[:w]
	}
	x := (w - len(runes)) / 2
	for i, r := range runes {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// pad 两侧补空格到 width（用于提示框背景）
func pad(str string, width int) string {
	n := len([]rune(str))
	if n >= width {
		return str
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + str + strings.Repeat(" ", width-n-left)
}

// wrapWords 按单词换行，单个过长的单词单独成行
func wrapWords(str string, width int) []string {
	if width <= 0 {
		return []string{str}
	}
	var lines []string
	current := ""
	for _, word := range strings.Fields(str) {
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// friendStatus 好友位置状态行
func friendStatus(sess *session.Session, now time.Time) string {
	if sess.Code() == "" {
		return ""
	}
	rec, ok := sess.FriendLocation()
	if !ok {
		return fmt.Sprintf("Waiting for %s to share...", sess.Code())
	}
	age := now.Sub(time.UnixMilli(rec.Timestamp)).Round(time.Second)
	if age < 0 {
		age = 0
	}
	return fmt.Sprintf("%s at %.5f, %.5f (%s ago)", sess.Code(), rec.Latitude, rec.Longitude, age)
}

package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 矢量绘制辅助函数，所有 UI 都通过它们绘制

var whitePixel *ebiten.Image

// whiteSubImage 返回 1×1 白色纹理（DrawTriangles 用）
func whiteSubImage() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// fillPolygon 填充凸多边形（扇形三角剖分）
func fillPolygon(dst *ebiten.Image, points [][2]float64, clr color.RGBA) {
	if len(points) < 3 {
		return
	}
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255

	vs := make([]ebiten.Vertex, len(points))
	for i, p := range points {
		vs[i] = ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 0, SrcY: 0,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	is := make([]uint16, 0, (len(points)-2)*3)
	for i := 1; i+1 < len(points); i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage(), op)
}

// rotatePoints 绕 (cx, cy) 旋转点集
func rotatePoints(points [][2]float64, cx, cy, degrees float64) [][2]float64 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make([][2]float64, len(points))
	for i, p := range points {
		dx, dy := p[0]-cx, p[1]-cy
		out[i] = [2]float64{cx + dx*cos - dy*sin, cy + dx*sin + dy*cos}
	}
	return out
}

// fillRoundedRect 填充圆角矩形
func fillRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, clr color.RGBA) {
	radius = math.Min(radius, math.Min(w, h)/2)
	const segments = 6

	points := make([][2]float64, 0, 4*(segments+1))
	corners := [4][3]float64{
		{x + w - radius, y + radius, -90},   // 右上
		{x + w - radius, y + h - radius, 0}, // 右下
		{x + radius, y + h - radius, 90},    // 左下
		{x + radius, y + radius, 180},       // 左上
	}
	for _, c := range corners {
		for s := 0; s <= segments; s++ {
			a := (c[2] + 90*float64(s)/segments) * math.Pi / 180
			points = append(points, [2]float64{c[0] + radius*math.Cos(a), c[1] + radius*math.Sin(a)})
		}
	}
	fillPolygon(dst, points, clr)
}

// strokeRect 描边矩形
func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, clr color.RGBA) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), float32(width), clr, true)
}

// fillCircle 填充圆
func fillCircle(dst *ebiten.Image, cx, cy, radius float64, clr color.RGBA) {
	const segments = 32
	points := make([][2]float64, segments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / segments
		points[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	fillPolygon(dst, points, clr)
}

// withAlpha 按比例缩放颜色透明度
func withAlpha(clr color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	clr.A = uint8(float64(clr.A) * alpha)
	return clr
}

// drawCenteredText 以 (cx, cy) 为中心绘制单行文字
func drawCenteredText(dst *ebiten.Image, str string, face *text.GoTextFace, cx, cy float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}

// drawTextLines 从 (x, y) 开始逐行绘制，align 为水平对齐
func drawTextLines(dst *ebiten.Image, lines []string, face *text.GoTextFace, x, y, lineHeight float64, align text.Align, clr color.Color) {
	if face == nil {
		return
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(clr)
		op.PrimaryAlign = align
		text.Draw(dst, line, face, op)
	}
}

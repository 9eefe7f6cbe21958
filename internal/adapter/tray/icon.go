package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
)

const iconSize = 32

// Icon returns a clock face as an ICO file with a single PNG image.
func Icon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	face := color.RGBA{R: 0x7a, G: 0xa2, B: 0xf7, A: 0xff}
	hand := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	c := float64(iconSize-1) / 2
	r := c - 1

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if math.Hypot(float64(x)-c, float64(y)-c) <= r {
				img.Set(x, y, face)
			}
		}
	}
	// Hands at ten past ten.
	drawHand(img, c, c, r*0.55, -60, hand)
	drawHand(img, c, c, r*0.8, 60, hand)

	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		return nil
	}
	return wrapICO(pngData.Bytes())
}

func drawHand(img *image.RGBA, cx, cy, length, degrees float64, col color.Color) {
	rad := degrees * math.Pi / 180
	for t := 0.0; t <= length; t += 0.5 {
		x := cx + t*math.Sin(rad)
		y := cy - t*math.Cos(rad)
		img.Set(int(math.Round(x)), int(math.Round(y)), col)
		img.Set(int(math.Round(x))+1, int(math.Round(y)), col)
	}
}

// wrapICO builds ICONDIR + one ICONDIRENTRY pointing at a PNG payload.
func wrapICO(pngData []byte) []byte {
	var buf bytes.Buffer
	header := struct {
		Reserved, Type, Count uint16
	}{0, 1, 1}
	entry := struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{iconSize, iconSize, 0, 0, 1, 32, uint32(len(pngData)), 6 + 16}
	binary.Write(&buf, binary.LittleEndian, header)
	binary.Write(&buf, binary.LittleEndian, entry)
	buf.Write(pngData)
	return buf.Bytes()
}

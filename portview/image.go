// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package portview

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	goFont   *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// LEDCenter returns the center of the LED drawn for pin in an image of
// width w and height h.
func LEDCenter(pin, w, h int) (x, y float64) {
	cell := float64(w) / NumPins
	return cell * (float64(pin) + 0.5), float64(h) * 0.4
}

// Render draws s as a row of eight LEDs labelled GP0 to GP7 on a black
// background. Pull-ups are drawn as a white ring around the LED.
func Render(s Snapshot, w, h int) (image.Image, error) {
	if w < 4*NumPins || h < 16 {
		return nil, fmt.Errorf("portview: image %dx%d is too small", w, h)
	}
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("portview: %w", err)
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: math.Max(6, float64(h)*0.2)}))

	cell := float64(w) / NumPins
	r := math.Min(cell, float64(h)*0.6) * 0.4
	for pin := range NumPins {
		x, y := LEDCenter(pin, w, h)
		dc.SetColor(s.PinColor(pin))
		dc.DrawCircle(x, y, r)
		dc.Fill()
		if s.PullUps&(1<<pin) != 0 {
			lw := math.Max(1, r/6)
			dc.SetRGB(1, 1, 1)
			dc.SetLineWidth(lw)
			dc.DrawCircle(x, y, r+lw)
			dc.Stroke()
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored("GP"+strconv.Itoa(pin), x, float64(h)*0.85, 0.5, 0.5)
	}
	return dc.Image(), nil
}

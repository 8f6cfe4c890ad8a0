// Package window implements an SDL window frontend. All SDL calls are
// executed on the main thread, the program has to be started with
// mainthread.Run.
package window

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/veandco/go-sdl2/sdl"
)

const soundTitleSuffix = " [sound]"

// Window is an SDL window showing the screen.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	buffer   []byte
	title    string

	scancodes [16]sdl.Scancode
}

// New opens a window of the screen size multiplied by scale.
func New(title string, scale int) (*Window, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid window scale %d", scale)
	}

	w := &Window{
		buffer: make([]byte, display.Width*display.Height*frontend.BytesPerPixel),
		title:  title,
	}
	var err error
	mainthread.Call(func() {
		err = w.init(title, int32(scale))
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) init(title string, scale int32) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		display.Width*scale, display.Height*scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}

	// the renderer stretches the texture to the window size
	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING, display.Width, display.Height)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating texture: %w", err)
	}

	for ch, index := range frontend.QWERTY {
		w.scancodes[index] = sdl.GetScancodeFromKey(sdl.Keycode(ch))
	}

	w.window = window
	w.renderer = renderer
	w.texture = texture
	return nil
}

// Poll processes pending window events and returns the held keys.
func (w *Window) Poll() (runner.Input, error) {
	var input runner.Input
	mainthread.Call(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				input.Quit = true
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					input.Quit = true
				}
			}
		}

		state := sdl.GetKeyboardState()
		for index, scancode := range w.scancodes {
			input.Keys[index] = state[scancode] != 0
		}
	})
	return input, nil
}

// Present shows a frame in the window.
func (w *Window) Present(frame []uint32) error {
	frontend.FillRGBA(w.buffer, frame)

	var err error
	mainthread.Call(func() {
		pixels := unsafe.Pointer(&w.buffer[0])
		if err = w.texture.Update(nil, pixels, display.Width*frontend.BytesPerPixel); err != nil {
			err = fmt.Errorf("updating texture: %w", err)
			return
		}
		if err = w.renderer.Copy(w.texture, nil, nil); err != nil {
			err = fmt.Errorf("copying texture: %w", err)
			return
		}
		w.renderer.Present()
	})
	return err
}

// SetSound marks the window title while the sound timer is active.
func (w *Window) SetSound(active bool) error {
	title := w.title
	if active {
		title += soundTitleSuffix
	}
	mainthread.Call(func() {
		w.window.SetTitle(title)
	})
	return nil
}

// Close destroys the window and shuts down SDL.
func (w *Window) Close() error {
	var err error
	mainthread.Call(func() {
		err = errors.Join(w.texture.Destroy(), w.renderer.Destroy(), w.window.Destroy())
		sdl.Quit()
	})
	if err != nil {
		return fmt.Errorf("destroying window: %w", err)
	}
	return nil
}

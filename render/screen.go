package render

import "github.com/gdamore/tcell/v2"

// Screen presents canvases on a tcell screen, rewriting only rows that changed since the last commit
type Screen struct {
	tcell.Screen
}

// NewScreen initializes the terminal
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return WrapScreen(s), nil
}

// WrapScreen adopts an initialized screen, e.g. a tcell simulation screen in tests
func WrapScreen(s tcell.Screen) *Screen {
	s.SetStyle(ColorDefault.Style())
	s.HideCursor()
	s.Clear()
	return &Screen{Screen: s}
}

// Present writes the dirty rows of c, shows them and commits the frame
// Returns the changed cell count
func (s *Screen) Present(c *Canvas) int {
	width, _ := c.Size()
	for y, dirty := range c.DirtyRows() {
		if !dirty {
			continue
		}
		for x := 0; x < width; x++ {
			cell := c.Get(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			s.SetContent(x, y, r, nil, cell.Color.Style())
		}
	}
	s.Show()
	return c.Commit()
}

// Events pumps tcell events into a channel until done is closed or the screen is finalized
// The channel is closed when the pump exits
func (s *Screen) Events(done <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		defer close(ch)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			// Consumer may be gone while PollEvent blocked
			select {
			case <-done:
				return
			default:
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	}()
	return ch
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/chatwire/dispatch"
	"github.com/dshills/chatwire/event"
	"github.com/dshills/chatwire/logging"
)

// DefaultScrollback is how many lines the view retains.
const DefaultScrollback = 1000

// View renders live chat into the terminal. It subscribes to the
// dispatcher for chat and moderation events, keeps a bounded scrollback,
// and owns the screen for the duration of Run.
type View struct {
	screen tcell.Screen
	d      *dispatch.Dispatcher
	log    *logging.Logger
	title  string

	hist   *history
	scroll int // lines back from the newest; 0 follows the tail
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(v *View) {
		if log != nil {
			v.log = log.WithComponent("tui")
		}
	}
}

// WithTitle sets the text shown in the status bar.
func WithTitle(title string) Option {
	return func(v *View) {
		v.title = title
	}
}

// WithScrollback overrides DefaultScrollback.
func WithScrollback(lines int) Option {
	return func(v *View) {
		if lines > 0 {
			v.hist = newHistory(lines)
		}
	}
}

// WithScreen injects a screen instead of the terminal, which is how tests
// drive the view against tcell's simulation screen.
func WithScreen(s tcell.Screen) Option {
	return func(v *View) {
		v.screen = s
	}
}

// New creates a view reading from d.
func New(d *dispatch.Dispatcher, opts ...Option) (*View, error) {
	v := &View{
		d:     d,
		log:   logging.Nop(),
		title: "chatwire",
		hist:  newHistory(DefaultScrollback),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		v.screen = s
	}
	return v, nil
}

// Run takes over the terminal until the user quits (Esc, q, Ctrl-C) or ctx
// ends. History and scroll position are only touched from this goroutine;
// consumers hand events over through a channel.
func (v *View) Run(ctx context.Context) error {
	if err := v.screen.Init(); err != nil {
		return err
	}
	defer v.screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	incoming := make(chan Line, 64)
	v.consumeEvents(ctx, incoming)

	// PollEvent blocks; Fini unblocks it with a nil event, which ends the
	// forwarding goroutine.
	keys := make(chan tcell.Event, 16)
	go func() {
		defer close(keys)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case keys <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case l := <-incoming:
			v.hist.append(l)
			if v.scroll > 0 {
				// Keep the viewport anchored while scrolled back.
				v.scroll++
			}
			v.drainIncoming(incoming)
			v.draw()
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if quit := v.handleEvent(ev); quit {
				return nil
			}
			v.draw()
		}
	}
}

// drainIncoming absorbs a burst of lines before redrawing, so a busy
// channel costs one draw instead of one per message.
func (v *View) drainIncoming(incoming <-chan Line) {
	for {
		select {
		case l := <-incoming:
			v.hist.append(l)
			if v.scroll > 0 {
				v.scroll++
			}
		default:
			return
		}
	}
}

// consumeEvents starts one forwarding goroutine per subscribed kind. The
// subscriptions close when ctx ends.
func (v *View) consumeEvents(ctx context.Context, out chan<- Line) {
	chat := dispatch.Subscribe[event.Privmsg](v.d)
	go func() {
		defer chat.Close()
		for {
			p, err := chat.Next(ctx)
			if err != nil {
				return
			}
			l := Line{
				At:    time.Now(),
				Kind:  LineChat,
				Login: string(p.DisplayName()),
				Color: string(p.Color()),
				Text:  string(p.Body()),
			}
			if p.IsAction() {
				l.Kind = LineAction
			}
			forward(ctx, out, l)
		}
	}()

	notices := dispatch.Subscribe[event.Notice](v.d)
	go func() {
		defer notices.Close()
		for {
			n, err := notices.Next(ctx)
			if err != nil {
				return
			}
			forward(ctx, out, systemLine(string(n.Text)))
		}
	}()

	userNotices := dispatch.Subscribe[event.UserNotice](v.d)
	go func() {
		defer userNotices.Close()
		for {
			u, err := userNotices.Next(ctx)
			if err != nil {
				return
			}
			text := string(u.SystemMsg())
			if text == "" {
				text = string(u.Text)
			}
			if text != "" {
				forward(ctx, out, systemLine(text))
			}
		}
	}()

	clears := dispatch.Subscribe[event.ClearChat](v.d)
	go func() {
		defer clears.Close()
		for {
			cc, err := clears.Next(ctx)
			if err != nil {
				return
			}
			forward(ctx, out, systemLine(clearChatText(cc)))
		}
	}()

	welcomes := dispatch.Subscribe[event.Welcome](v.d)
	go func() {
		defer welcomes.Close()
		for {
			w, err := welcomes.Next(ctx)
			if err != nil {
				return
			}
			forward(ctx, out, systemLine("connected as "+string(w.Nick)))
		}
	}()
}

func forward(ctx context.Context, out chan<- Line, l Line) {
	select {
	case out <- l:
	case <-ctx.Done():
	}
}

func systemLine(text string) Line {
	return Line{At: time.Now(), Kind: LineSystem, Text: text}
}

// clearChatText renders a CLEARCHAT event as a system line.
func clearChatText(cc event.ClearChat) string {
	target := string(cc.Target)
	if target == "" {
		return "chat was cleared"
	}
	if d, ok := cc.BanDuration(); ok {
		return fmt.Sprintf("%s was timed out for %s", target, d)
	}
	return target + " was banned"
}

// handleEvent reacts to one screen event. It reports true when the user
// asked to quit.
func (v *View) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		_, rows := v.screen.Size()
		page := rows - 1
		if page < 1 {
			page = 1
		}
		switch {
		case e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC:
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 'q':
			return true
		case e.Key() == tcell.KeyPgUp:
			v.scrollBy(page)
		case e.Key() == tcell.KeyPgDn:
			v.scrollBy(-page)
		case e.Key() == tcell.KeyUp:
			v.scrollBy(1)
		case e.Key() == tcell.KeyDown:
			v.scrollBy(-1)
		case e.Key() == tcell.KeyHome:
			v.scrollBy(v.hist.len())
		case e.Key() == tcell.KeyEnd:
			v.scroll = 0
		}
	}
	return false
}

// scrollBy moves the viewport by delta lines back from the tail, clamped
// to the stored history.
func (v *View) scrollBy(delta int) {
	v.scroll += delta
	if v.scroll < 0 {
		v.scroll = 0
	}
	_, rows := v.screen.Size()
	max := v.hist.len() - (rows - 1)
	if max < 0 {
		max = 0
	}
	if v.scroll > max {
		v.scroll = max
	}
}

var (
	styleDefault = tcell.StyleDefault
	styleSystem  = tcell.StyleDefault.Dim(true)
	styleTime    = tcell.StyleDefault.Dim(true)
	styleBar     = tcell.StyleDefault.Reverse(true)
)

// draw renders the visible window and the status bar.
func (v *View) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if rows < 1 || cols < 1 {
		return
	}

	chatRows := rows - 1
	window := v.hist.window(chatRows, v.scroll)

	// Bottom-align so the newest line sits just above the status bar.
	y := chatRows - len(window)
	for _, l := range window {
		v.drawLine(y, cols, l)
		y++
	}

	v.drawBar(rows-1, cols)
	v.screen.Show()
}

// drawLine renders one history line into row y, truncated at the screen
// edge.
func (v *View) drawLine(y, cols int, l Line) {
	x := v.puts(0, y, cols, l.At.Format("15:04:05")+" ", styleTime)

	switch l.Kind {
	case LineChat:
		login := nickColor(l.Login, l.Color, v.screen.Colors() > 256)
		x = v.puts(x, y, cols, l.Login, tcell.StyleDefault.Foreground(login).Bold(true))
		x = v.puts(x, y, cols, ": ", styleDefault)
		v.puts(x, y, cols, l.Text, styleDefault)
	case LineAction:
		login := nickColor(l.Login, l.Color, v.screen.Colors() > 256)
		style := tcell.StyleDefault.Foreground(login)
		x = v.puts(x, y, cols, l.Login+" ", style.Bold(true))
		v.puts(x, y, cols, l.Text, style.Italic(true))
	case LineSystem:
		v.puts(x, y, cols, "* "+l.Text, styleSystem)
	}
}

// drawBar renders the status bar into row y.
func (v *View) drawBar(y, cols int) {
	text := " " + v.title
	if v.scroll > 0 {
		text += fmt.Sprintf(" [%d lines back]", v.scroll)
	}
	text += "  Esc quit, PgUp/PgDn scroll"

	x := v.puts(0, y, cols, text, styleBar)
	for ; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleBar)
	}
}

// puts writes text at (x, y) and returns the next column. Output stops at
// the screen edge.
func (v *View) puts(x, y, cols int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

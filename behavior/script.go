package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/wudi/slidekit/display"
	"github.com/wudi/slidekit/observability"
	"github.com/wudi/slidekit/scripting"
)

// ScriptConfig configures a ScriptBehavior.
type ScriptConfig struct {
	// Startup runs once at association time. A failure here fails the
	// association.
	Startup string

	// OnEnterSlide runs on every entering-slide event with the global
	// `slide` bound to the entered index. Runtime failures are logged and
	// swallowed; a broken hook must not take down frames.
	OnEnterSlide string

	// Timeout bounds each script execution. Defaults to one second.
	Timeout time.Duration

	// Alert receives app.alert messages from scripts. May be nil.
	Alert func(string)

	Logger observability.Logger
}

// ScriptBehavior binds a scripting engine to the controller so user scripts
// can react to navigation and drive the display.
type ScriptBehavior struct {
	engine scripting.Engine
	cfg    ScriptConfig
	c      *display.Controller
}

func NewScriptBehavior(engine scripting.Engine, cfg ScriptConfig) *ScriptBehavior {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	return &ScriptBehavior{engine: engine, cfg: cfg}
}

func (b *ScriptBehavior) Associate(c *display.Controller) error {
	if b.c != nil {
		return fmt.Errorf("script behavior already associated")
	}
	b.c = c

	if err := b.engine.RegisterHost(scriptHost{b: b}); err != nil {
		return fmt.Errorf("register presenter host: %w", err)
	}

	if b.cfg.Startup != "" {
		if _, err := b.run(b.cfg.Startup); err != nil {
			return fmt.Errorf("startup script: %w", err)
		}
	}

	if b.cfg.OnEnterSlide != "" {
		c.Subscribe(func(ev display.Event) {
			e, ok := ev.(display.EnteringSlideEvent)
			if !ok {
				return
			}
			script := fmt.Sprintf("slide = %d; %s", e.Slide, b.cfg.OnEnterSlide)
			if _, err := b.run(script); err != nil {
				b.cfg.Logger.Warn("enter-slide script failed",
					observability.Int("slide", e.Slide),
					observability.Error("err", err))
			}
		})
	}
	return nil
}

func (b *ScriptBehavior) run(script string) (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Timeout)
	defer cancel()
	return b.engine.Execute(ctx, script)
}

type scriptHost struct{ b *ScriptBehavior }

func (h scriptHost) CurrentSlide() int { return h.b.c.CurrentSlide() }

func (h scriptHost) SlideCount() int { return h.b.c.Engine().SlideCount() }

func (h scriptHost) DisplaySlide(n int) { h.b.c.Display(n) }

func (h scriptHost) Alert(msg string) {
	if h.b.cfg.Alert != nil {
		h.b.cfg.Alert(msg)
		return
	}
	h.b.cfg.Logger.Info("script alert", observability.String("message", msg))
}

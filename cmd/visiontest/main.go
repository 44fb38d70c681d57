// Command visiontest runs the fullscreen vision-test display.
//
// It loads vision_config.json from the working directory, opens the
// configured remote-control transports, and hands the display loop to
// the render engine until an exit command arrives or the window closes.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"periph.io/x/host/v3"

	"github.com/kalam1991git/vision-test/internal/app"
	"github.com/kalam1991git/vision-test/internal/chart"
	"github.com/kalam1991git/vision-test/internal/command"
	"github.com/kalam1991git/vision-test/internal/config"
	"github.com/kalam1991git/vision-test/internal/logging"
	"github.com/kalam1991git/vision-test/internal/optics"
	ebitenrender "github.com/kalam1991git/vision-test/internal/render/ebiten"
	"github.com/kalam1991git/vision-test/internal/state"
	"github.com/kalam1991git/vision-test/internal/transport/httpd"
	"github.com/kalam1991git/vision-test/internal/transport/irremote"
	"github.com/kalam1991git/vision-test/internal/transport/serialport"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the settings file")
	logPath := flag.String("log", "vision_test.log", "path to the log file")
	addr := flag.String("addr", ":8080", "listen address for the web remote")
	windowed := flag.Bool("windowed", false, "run in a window instead of fullscreen")
	flag.Parse()

	logging.Setup(*logPath, stderrIsTerminal())

	cfg := config.Load(*configPath)
	vals := cfg.Values()
	log.Info().Stringer("settings", vals).Msg("starting vision test display")

	width, height := vals.Geometry()
	conv, err := optics.NewConverter(optics.Geometry{
		WidthPx:  width,
		HeightPx: height,
		DPI:      float64(vals.ScreenDPI),
	})
	if err != nil {
		// A miscalibrated settings file should still bring the display
		// up so it can be fixed over the web remote. Run windowed at the
		// factory geometry so the miscalibration is visible.
		log.Error().Err(err).Msg("invalid display geometry, falling back to windowed defaults")
		*windowed = true
		def := config.Defaults()
		width, height = def.Geometry()
		conv, err = optics.NewConverter(optics.Geometry{
			WidthPx:  width,
			HeightPx: height,
			DPI:      float64(def.ScreenDPI),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("default display geometry rejected")
		}
	}

	catalog := chart.NewCatalog()
	viewCtx := state.New(state.Snapshot{
		Test:       chart.Kind(vals.CurrentTest),
		Language:   vals.Language,
		DistanceMm: float64(vals.ViewingDistanceCm) * 10,
		Brightness: vals.Brightness,
		Contrast:   vals.Contrast,
	})

	renderer := ebitenrender.NewRenderer()
	input := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	board := app.NewBoard(renderer, input, conv, catalog, viewCtx)
	dispatcher := command.NewDispatcher(viewCtx,
		func(snap state.Snapshot) { saveSnapshot(cfg, snap) },
		board.MarkDirty,
		board.RequestExit,
	)
	board.SetApplier(dispatcher)

	runCtx, cancel := context.WithCancel(context.Background())
	var transports errgroup.Group
	startTransports(runCtx, &transports, vals, *addr, board, viewCtx)

	engine.SetWindowSize(width, height)
	engine.SetWindowTitle("Vision Test")
	engine.SetTPS(app.TicksPerSecond)
	engine.SetFullscreen(!*windowed)
	engine.SetCursorVisible(*windowed)

	runErr := engine.RunGame(board)

	cancel()
	_ = transports.Wait()

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("display loop failed")
	}
	log.Info().Msg("display stopped")
}

// startTransports launches each enabled remote-control transport. A
// transport that fails is logged and dropped; the display and the other
// transports keep running.
func startTransports(
	ctx context.Context,
	g *errgroup.Group,
	vals config.Values,
	addr string,
	board *app.Board,
	viewCtx *state.Context,
) {
	if vals.TransportEnabled("web") {
		srv := httpd.NewServer(addr, board, viewCtx)
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("web remote stopped")
			}
			return nil
		})
	}

	if vals.TransportEnabled("bluetooth") {
		reader := serialport.NewReader(serialport.DevicePath(vals.BluetoothPort), board)
		g.Go(func() error {
			if err := reader.Run(ctx); err != nil {
				log.Error().Err(err).Msg("bluetooth remote stopped")
			}
			return nil
		})
	}

	if vals.TransportEnabled("ir") {
		if _, err := host.Init(); err != nil {
			log.Error().Err(err).Msg("GPIO host unavailable, IR remote disabled")
			return
		}
		pin, err := irremote.OpenPin(vals.IRPin)
		if err != nil {
			log.Error().Err(err).Int("pin", vals.IRPin).Msg("IR remote disabled")
			return
		}
		recv := irremote.NewReceiver(pin, clockwork.NewRealClock(), board)
		g.Go(func() error {
			if err := recv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("IR remote stopped")
			}
			return nil
		})
	}
}

// saveSnapshot writes the viewing context back into the settings record.
// Display geometry and transport keys are left as loaded.
func saveSnapshot(cfg *config.Instance, snap state.Snapshot) {
	vals := cfg.Values()
	vals.CurrentTest = string(snap.Test)
	vals.Language = snap.Language
	vals.ViewingDistanceCm = int(snap.DistanceMm / 10)
	vals.Brightness = snap.Brightness
	vals.Contrast = snap.Contrast
	cfg.Update(vals)
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

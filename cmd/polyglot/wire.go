package main

import (
	"context"
	"fmt"

	"github.com/kbukum/polyglot/bootstrap"
	"github.com/kbukum/polyglot/catalog"
	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/observability"
	"github.com/kbukum/polyglot/provider"
	"github.com/kbukum/polyglot/session"
	"github.com/kbukum/polyglot/speech"
	"github.com/kbukum/polyglot/transcription/whisper"
	"github.com/kbukum/polyglot/translation"
	"github.com/kbukum/polyglot/translation/microsoft"
	"github.com/kbukum/polyglot/util"
)

// wire builds telemetry, the catalog, the translator chain, the speech
// engines and the session from the app config.
func wire(ctx context.Context, app *bootstrap.App[*Config], notifier session.Notifier) (*session.Session, error) {
	cfg := app.Cfg
	log := app.Logger

	shutdown, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	app.Track(provider.CloseFunc(shutdown))

	metrics, err := observability.NewMetrics(observability.Meter(app.Name))
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	app.Summary.TrackComponent(fmt.Sprintf("catalog: %d languages", cat.Len()), "active", true)

	backend, err := microsoft.New(cfg.Translator)
	if err != nil {
		return nil, err
	}
	app.Track(backend)
	translator := translation.NewClient(provider.Chain(
		provider.WithTracing[translation.Request, *translation.Result](cfg.Observability.ServiceName),
		provider.WithMetrics[translation.Request, *translation.Result](metrics),
		provider.WithLogging[translation.Request, *translation.Result](log.WithComponent("translator")),
	)(backend))
	app.Summary.TrackClient("translator", cfg.Translator.Host, "http", "key "+util.MaskSecret(cfg.Translator.APIKey, 4))

	opts := []session.Option{
		session.WithLogger(log.WithComponent("session")),
		session.WithMetrics(metrics),
		session.WithNotifier(notifier),
	}

	var synth *speech.CommandSynthesizer
	if cfg.Speech.SynthesizerEnabled {
		synth = speech.NewCommandSynthesizer(cfg.Speech.Synthesizer, log)
		if synth.Available(ctx) {
			opts = append(opts, session.WithSynthesizer(synth))
			app.Summary.TrackComponent("synthesizer: "+cfg.Speech.Synthesizer.Binary, "active", true)
		} else {
			synth = nil
			app.Summary.TrackComponent("synthesizer: "+cfg.Speech.Synthesizer.Binary, "unavailable", false)
		}
	} else {
		app.Summary.TrackComponent("synthesizer", "disabled", true)
	}

	if cfg.Speech.RecognizerEnabled {
		stt, err := whisper.NewProvider(cfg.Transcription)
		if err != nil {
			return nil, err
		}
		rec := speech.NewCaptureRecognizer(cfg.Speech.Recognizer, stt,
			speech.WithRecognizerLogger(log),
			speech.WithErrorHandler(func(err error) {
				log.Warn("speech input failed", logger.ErrorFields("listen", err))
				notifier.Notify(cfg.Session.Notice)
			}),
		)
		opts = append(opts, session.WithRecognizer(rec))
		app.Track(provider.CloseFunc(func(context.Context) error {
			rec.Wait()
			return nil
		}))
		app.Summary.TrackComponent("recognizer: "+cfg.Speech.Recognizer.Binary, "active", true)
		app.Summary.TrackClient("transcription", cfg.Transcription.URL, "http", "configured")
	} else {
		app.Summary.TrackComponent("recognizer", "disabled", true)
	}

	s, err := session.New(cfg.Session, cat, translator, opts...)
	if err != nil {
		return nil, err
	}
	app.Track(provider.CloseFunc(func(context.Context) error { return s.Close() }))

	if synth != nil {
		if err := s.RefreshVoices(ctx); err != nil {
			log.Warn("could not list voices", logger.ErrorFields("voices", err))
		}
	}
	return s, nil
}

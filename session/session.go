package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/polyglot/catalog"
	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/observability"
	"github.com/kbukum/polyglot/speech"
	"github.com/kbukum/polyglot/translation"
)

// Notifier surfaces a user-facing message.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f.
func (f NotifierFunc) Notify(message string) { f(message) }

// Listener observes state snapshots.
type Listener func(State)

type stopper interface {
	Stop() bool
}

func realAfterFunc(d time.Duration, fn func()) stopper {
	return time.AfterFunc(d, fn)
}

// Session keeps the input text, the translated output, the language pair
// and the speech bindings consistent while edits, translations and speech
// events interleave.
type Session struct {
	cfg        Config
	catalog    *catalog.Catalog
	translator translation.Provider
	recognizer speech.Recognizer
	synth      speech.Synthesizer
	notifier   Notifier
	log        *logger.Logger
	metrics    *observability.Metrics
	afterFunc  func(time.Duration, func()) stopper

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	voices   []speech.Voice
	seq      uint64
	inflight context.CancelFunc
	timer    stopper
	timerGen uint64
	closed   bool
	detach   func()

	lmu       sync.Mutex
	nextID    int
	listeners map[int]Listener

	pubMu      sync.Mutex
	publishing bool
	pending    *State
	delivered  uint64
}

// Option configures a Session.
type Option func(*Session)

// WithRecognizer attaches a speech recognizer. Its transcripts become input edits.
func WithRecognizer(r speech.Recognizer) Option {
	return func(s *Session) { s.recognizer = r }
}

// WithSynthesizer attaches a speech synthesizer.
func WithSynthesizer(syn speech.Synthesizer) Option {
	return func(s *Session) { s.synth = syn }
}

// WithVoices seeds the voice list without asking the synthesizer.
func WithVoices(voices []speech.Voice) Option {
	return func(s *Session) { s.voices = append([]speech.Voice(nil), voices...) }
}

// WithNotifier sets where translation failures are reported.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithLogger sets the session logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithMetrics records in-flight and stale translate counts on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New creates a session on the configured default pair.
func New(cfg Config, cat *catalog.Catalog, translator translation.Provider, opts ...Option) (*Session, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, errors.InvalidInput("catalog", "is required")
	}
	if translator == nil {
		return nil, errors.InvalidInput("translator", "is required")
	}
	source, err := cat.Resolve(cfg.DefaultSource)
	if err != nil {
		return nil, err
	}
	target, err := cat.Resolve(cfg.DefaultTarget)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		catalog:    cat,
		translator: translator,
		afterFunc:  realAfterFunc,
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get("session")
	}

	id := uuid.NewString()
	s.log = s.log.WithFields(logger.Fields("session_id", id))
	s.ctx, s.cancel = context.WithCancel(context.Background())

	pair := LanguagePair{Source: source.Code, Target: target.Code}
	s.state = State{
		ID:         id,
		Pair:       pair,
		OutputText: cfg.Placeholder,
		Voices:     speech.BindPair(pair.Source, pair.Target, s.voices),
		Version:    1,
	}

	if s.recognizer != nil {
		if ls, ok := s.recognizer.(speech.LanguageSetter); ok {
			ls.SetLanguage(pair.Source)
		}
		s.detach = s.recognizer.Subscribe(s.OnSpeechTranscript)
	}

	s.log.Debug("session created", logger.Fields("pair", pair.String()))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.state.ID }

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// Catalog returns the language catalog the session validates against.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for state changes. Listeners run outside the
// session lock, one at a time, and never see a snapshot older than one
// already delivered.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// SetInputText replaces the input and schedules a debounced translation.
// An edit drops any request still in flight for the previous text.
func (s *Session) SetInputText(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := s.state.InputText != text
	if changed && s.inflight != nil {
		s.invalidateLocked()
	}
	s.state.InputText = text
	s.scheduleLocked()
	snap, ok := s.commitLocked(changed)
	s.mu.Unlock()
	if ok {
		s.publish(snap)
	}
}

// OnSpeechTranscript feeds a recognized transcript into the input.
func (s *Session) OnSpeechTranscript(transcript string) {
	s.SetInputText(transcript)
}

// SetSourceLanguage changes only the source language.
func (s *Session) SetSourceLanguage(code string) error {
	pair := s.State().Pair
	pair.Source = code
	return s.SetLanguagePair(pair)
}

// SetTargetLanguage changes only the target language.
func (s *Session) SetTargetLanguage(code string) error {
	pair := s.State().Pair
	pair.Target = code
	return s.SetLanguagePair(pair)
}

// SwapLanguages exchanges source and target.
func (s *Session) SwapLanguages() error {
	return s.SetLanguagePair(s.State().Pair.Swapped())
}

// SetLanguagePair validates pair and applies it. Swapping clears both
// texts and drops any in-flight result. A new target resets the output and
// translates at once. A new source only rebinds voices.
func (s *Session) SetLanguagePair(pair LanguagePair) error {
	source, err := s.catalog.Resolve(pair.Source)
	if err != nil {
		return err
	}
	target, err := s.catalog.Resolve(pair.Target)
	if err != nil {
		return err
	}
	pair = LanguagePair{Source: source.Code, Target: target.Code}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	old := s.state.Pair
	if pair == old {
		s.mu.Unlock()
		return nil
	}

	translate := false
	switch {
	case pair == old.Swapped() && pair.Source != pair.Target:
		s.state.InputText = ""
		s.state.OutputText = s.cfg.Placeholder
		s.cancelDebounceLocked()
		s.invalidateLocked()
	case pair.Target != old.Target:
		s.state.OutputText = s.cfg.Placeholder
		s.cancelDebounceLocked()
		translate = true
	}
	s.state.Pair = pair
	s.state.Voices = speech.BindPair(pair.Source, pair.Target, s.voices)
	snap, _ := s.commitLocked(true)
	s.mu.Unlock()

	s.publish(snap)
	s.log.Debug("language pair changed", logger.Fields("from", old.String(), "to", pair.String()))

	if pair.Source != old.Source && s.recognizer != nil {
		if ls, ok := s.recognizer.(speech.LanguageSetter); ok {
			ls.SetLanguage(pair.Source)
		}
	}
	if translate {
		// Failures are reported through the notifier.
		_ = s.TranslateNow(s.ctx)
	}
	return nil
}

// ClearInput empties the input, resets the output and drops any pending
// or in-flight translation.
func (s *Session) ClearInput() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.InputText = ""
	s.state.OutputText = s.cfg.Placeholder
	s.cancelDebounceLocked()
	s.invalidateLocked()
	snap, _ := s.commitLocked(true)
	s.mu.Unlock()
	s.publish(snap)
}

// TranslateNow translates the current input. It does nothing when input,
// source or target is empty. A failure leaves the output as it was and is
// reported through the notifier; results of superseded requests are
// dropped without notice.
func (s *Session) TranslateNow(ctx context.Context) error {
	s.mu.Lock()
	st := s.state
	if s.closed || st.InputText == "" || st.Pair.Source == "" || st.Pair.Target == "" {
		var snap State
		stale := !s.closed && s.inflight != nil
		if stale {
			s.invalidateLocked()
			snap, _ = s.commitLocked(true)
		}
		s.mu.Unlock()
		if stale {
			s.publish(snap)
		}
		return nil
	}
	s.cancelDebounceLocked()
	if s.inflight != nil {
		s.inflight()
	}
	s.seq++
	seq := s.seq
	reqCtx, cancel := context.WithCancel(ctx)
	s.inflight = cancel
	s.state.IsTranslating = true
	snap, _ := s.commitLocked(true)
	s.mu.Unlock()
	defer cancel()

	s.publish(snap)

	req := translation.Request{Text: st.InputText, Source: st.Pair.Source, Target: st.Pair.Target}
	res, err := s.translate(reqCtx, seq, req)

	s.mu.Lock()
	if seq != s.seq || s.closed {
		s.mu.Unlock()
		outcome := "result"
		if err != nil {
			outcome = "error"
		}
		s.metrics.RecordStale(ctx, outcome)
		s.log.Debug("stale translation dropped", logger.Fields("sequence", seq, "outcome", outcome))
		return nil
	}
	s.inflight = nil
	s.state.IsTranslating = false
	if err == nil {
		s.state.OutputText = res.Text
	}
	snap, _ = s.commitLocked(true)
	s.mu.Unlock()

	s.publish(snap)

	if err != nil {
		s.log.WithError(err).Error("translation failed", logger.Fields("sequence", seq))
		if s.notifier != nil {
			s.notifier.Notify(s.cfg.Notice)
		}
		return err
	}
	s.log.Debug("translation applied", logger.Fields("sequence", seq))
	return nil
}

func (s *Session) translate(ctx context.Context, seq uint64, req translation.Request) (*translation.Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranslate)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrSessionID, s.ID())
	observability.SetSpanAttribute(ctx, observability.AttrSequence, seq)
	observability.SetSpanAttribute(ctx, observability.AttrSourceLanguage, req.Source)
	observability.SetSpanAttribute(ctx, observability.AttrTargetLanguage, req.Target)
	observability.SetSpanAttribute(ctx, observability.AttrTextLength, len(req.Text))

	s.metrics.TranslateStarted(ctx)
	defer s.metrics.TranslateFinished(ctx)

	s.log.Debug("translation issued", logger.Fields("sequence", seq, "language", req.Target))
	res, err := s.translator.Translate(ctx, req)
	if err == nil && res == nil {
		err = errors.MalformedResponse(s.translator.Name(), "empty result")
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	return res, nil
}

// Listen starts the recognizer. Transcripts arrive as input edits.
func (s *Session) Listen(ctx context.Context) error {
	if s.recognizer == nil {
		return errors.SpeechUnavailable("speech recognition")
	}
	ctx, span := observability.StartSpan(ctx, observability.SpanListen)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrSourceLanguage, s.State().Pair.Source)
	if err := s.recognizer.StartListening(ctx); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	return nil
}

// CanSpeak reports whether side has a bound voice.
func (s *Session) CanSpeak(side Side) bool {
	return s.State().Binding(side).Available()
}

// Speak reads side aloud with its bound voice. Without a voice, or with
// nothing to say, it does nothing.
func (s *Session) Speak(ctx context.Context, side Side) error {
	st := s.State()
	binding := st.Binding(side)
	text := st.Text(side)
	if side == Output && text == s.cfg.Placeholder {
		text = ""
	}
	if !binding.Available() || s.synth == nil {
		s.log.Debug("no voice for language", logger.Fields("language", binding.ForLanguage, "side", side.String()))
		return nil
	}
	if text == "" {
		return nil
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanSpeak)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrTargetLanguage, binding.ForLanguage)
	observability.SetSpanAttribute(ctx, observability.AttrTextLength, len(text))
	if err := s.synth.Speak(ctx, text, *binding.Voice); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	return nil
}

// Voices returns the known voices sorted by language.
func (s *Session) Voices() []speech.Voice {
	s.mu.Lock()
	out := append([]speech.Voice(nil), s.voices...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Language < out[j].Language })
	return out
}

// RefreshVoices re-reads the synthesizer's voices and rebinds both sides.
func (s *Session) RefreshVoices(ctx context.Context) error {
	if s.synth == nil {
		return nil
	}
	voices, err := s.synth.Voices(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.voices = voices
	pair := s.state.Pair
	s.state.Voices = speech.BindPair(pair.Source, pair.Target, voices)
	snap, _ := s.commitLocked(true)
	s.mu.Unlock()

	s.publish(snap)
	s.log.Debug("voices refreshed", logger.Fields("count", len(voices)))
	return nil
}

// Close stops the debounce timer, cancels in-flight work and detaches from
// the recognizer. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancelDebounceLocked()
	s.invalidateLocked()
	detach := s.detach
	s.detach = nil
	s.mu.Unlock()

	if detach != nil {
		detach()
	}
	s.cancel()
	return nil
}

func (s *Session) scheduleLocked() {
	s.cancelDebounceLocked()
	gen := s.timerGen
	s.timer = s.afterFunc(s.cfg.Debounce, func() { s.debounceFired(gen) })
}

func (s *Session) debounceFired(gen uint64) {
	s.mu.Lock()
	if gen != s.timerGen || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()
	_ = s.TranslateNow(s.ctx)
}

func (s *Session) cancelDebounceLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// invalidateLocked makes any in-flight request stale.
func (s *Session) invalidateLocked() {
	s.seq++
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	s.state.IsTranslating = false
}

func (s *Session) commitLocked(changed bool) (State, bool) {
	if !changed {
		return s.state, false
	}
	s.state.Version++
	return s.state, true
}

// publish delivers snap unless a newer one was already delivered. A
// goroutine that finds delivery in progress hands its snapshot to the
// active publisher, so listeners may call back into the session.
func (s *Session) publish(snap State) {
	s.pubMu.Lock()
	if snap.Version <= s.delivered || (s.pending != nil && snap.Version <= s.pending.Version) {
		s.pubMu.Unlock()
		return
	}
	s.pending = &snap
	if s.publishing {
		s.pubMu.Unlock()
		return
	}
	s.publishing = true
	for s.pending != nil {
		next := *s.pending
		s.pending = nil
		s.delivered = next.Version
		s.pubMu.Unlock()

		for _, fn := range s.listenerSnapshot() {
			fn(next)
		}

		s.pubMu.Lock()
	}
	s.publishing = false
	s.pubMu.Unlock()
}

func (s *Session) listenerSnapshot() []Listener {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	return fns
}

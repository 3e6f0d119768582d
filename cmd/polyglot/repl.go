package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kbukum/polyglot/catalog"
	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/session"
)

const helpText = `Type text to translate it. Commands:
  :from <code>      set the source language
  :to <code>        set the target language
  :swap             swap source and target
  :clear            clear the input (or an empty line)
  :speak in|out     read the input or the translation aloud
  :listen           dictate the input
  :langs            list languages
  :voices           list voices
  :state            print the session state
  :help             show this help
  :quit             exit`

// repl is the terminal page: stdin lines are edits or commands, state
// changes are rendered as they arrive.
type repl struct {
	in  io.Reader
	out io.Writer

	mu         sync.Mutex
	s          *session.Session
	label      string
	lastPair   session.LanguagePair
	lastOutput string
}

func newREPL(in io.Reader, out io.Writer) *repl {
	return &repl{in: in, out: out}
}

// Notify implements session.Notifier.
func (r *repl) Notify(message string) {
	r.printf("! %s\n", message)
}

func (r *repl) attach(s *session.Session) {
	r.mu.Lock()
	r.s = s
	r.label = s.Config().LoadingLabel
	st := s.State()
	r.lastPair, r.lastOutput = st.Pair, st.Display(r.label)
	r.mu.Unlock()
	s.Subscribe(r.render)
}

func (r *repl) render(st session.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := st.Display(r.label)
	if st.Pair == r.lastPair && view == r.lastOutput {
		return
	}
	r.lastPair, r.lastOutput = st.Pair, view
	fmt.Fprintf(r.out, "[%s] %s\n", st.Pair, view)
}

func (r *repl) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// run reads lines until EOF, :quit or ctx is done.
func (r *repl) run(ctx context.Context) error {
	st := r.s.State()
	r.printf("%s -> %s. Type :help for commands.\n", r.s.Catalog().Name(st.Pair.Source), r.s.Catalog().Name(st.Pair.Target))

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := r.exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// exec runs one input line and reports whether to quit. A blank line
// clears the input like :clear.
func (r *repl) exec(ctx context.Context, line string) bool {
	if line == "" {
		r.s.ClearInput()
		return false
	}
	if !strings.HasPrefix(line, ":") {
		r.s.SetInputText(line)
		return false
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var err error
	switch fields[0] {
	case "from":
		err = r.s.SetSourceLanguage(arg)
	case "to":
		err = r.s.SetTargetLanguage(arg)
	case "swap":
		err = r.s.SwapLanguages()
	case "clear":
		r.s.ClearInput()
	case "speak":
		err = r.speak(ctx, arg)
	case "listen":
		err = r.s.Listen(ctx)
		if err == nil {
			r.printf("listening...\n")
		}
	case "langs":
		r.printLanguages(r.s.Catalog())
	case "voices":
		r.printVoices()
	case "state":
		err = r.printState()
	case "help":
		r.printf("%s\n", helpText)
	case "quit", "q", "exit":
		return true
	default:
		r.printf("unknown command %q, try :help\n", fields[0])
	}
	if err != nil {
		r.printf("error: %s\n", message(err))
	}
	return false
}

func (r *repl) speak(ctx context.Context, arg string) error {
	side, err := session.ParseSide(arg)
	if err != nil {
		return errors.InvalidInput("side", "use :speak in or :speak out")
	}
	if !r.s.CanSpeak(side) {
		lang := r.s.State().Binding(side).ForLanguage
		r.printf("no voice for %s\n", r.s.Catalog().Name(lang))
		return nil
	}
	return r.s.Speak(ctx, side)
}

func (r *repl) printLanguages(cat *catalog.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lang := range cat.Languages() {
		fmt.Fprintf(r.out, "  %-8s %s (%s)\n", lang.Code, lang.Name, lang.NativeName)
	}
}

func (r *repl) printVoices() {
	voices := r.s.Voices()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(voices) == 0 {
		fmt.Fprintln(r.out, "  no voices")
		return
	}
	for _, v := range voices {
		fmt.Fprintf(r.out, "  %-10s %-24s %s\n", v.Language, v.Name, v.ID)
	}
}

func (r *repl) printState() error {
	st := r.s.State()
	data, err := json.MarshalIndent(struct {
		session.State
		CanClear    bool `json:"can_clear"`
		CanSpeakIn  bool `json:"can_speak_input"`
		CanSpeakOut bool `json:"can_speak_output"`
	}{st, st.CanClear(), st.Binding(session.Input).Available(), st.Binding(session.Output).Available()}, "", "  ")
	if err != nil {
		return err
	}
	r.printf("%s\n", data)
	return nil
}

// message prefers the user-facing AppError message.
func message(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

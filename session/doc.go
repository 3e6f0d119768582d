// Package session implements the translation session: a language pair, an
// input text and its translation, kept consistent under debounced edits,
// language changes, swaps and speech events.
//
// Every translate request takes a sequence number. A completion is applied
// only while its number is still the latest, so swapping, clearing or a
// newer request silently discards older results:
//
//	s, err := session.New(cfg.Session, cat, client,
//		session.WithNotifier(session.NotifierFunc(func(msg string) { fmt.Println(msg) })),
//	)
//	s.Subscribe(func(st session.State) { render(st) })
//	s.SetInputText("hello")
package session

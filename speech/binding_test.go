package speech

import "testing"

func TestBind(t *testing.T) {
	voices := []Voice{
		{ID: "en-us", Name: "English (America)", Language: "en-us"},
		{ID: "en-gb", Name: "English (Great Britain)", Language: "en-GB"},
		{ID: "hi", Name: "Hindi", Language: "hi"},
		{ID: "zh-tw", Name: "Chinese (Taiwan)", Language: "zh-TW"},
		{ID: "cmn", Name: "Chinese (Mandarin)", Language: "zh-Hans"},
		{ID: "bad", Name: "Broken", Language: "not a tag"},
	}
	tests := []struct {
		code   string
		wantID string
	}{
		{"en-GB", "en-gb"},
		{"en", "en-us"},
		{"hi", "hi"},
		{"zh-Hans", "cmn"},
		{"zh-Hant", "zh-tw"},
		{"ru", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			b := Bind(tt.code, voices)
			if b.ForLanguage != tt.code {
				t.Errorf("ForLanguage = %q", b.ForLanguage)
			}
			if tt.wantID == "" {
				if b.Available() {
					t.Errorf("expected no voice, got %+v", b.Voice)
				}
				return
			}
			if !b.Available() || b.Voice.ID != tt.wantID {
				t.Errorf("Bind(%q) = %+v, want %s", tt.code, b.Voice, tt.wantID)
			}
		})
	}
}

func TestBind_NoVoices(t *testing.T) {
	if Bind("en", nil).Available() {
		t.Error("no voices should bind nothing")
	}
}

func TestBindPair(t *testing.T) {
	voices := []Voice{{ID: "en", Language: "en"}}
	b := BindPair("en", "hi", voices)
	if !b.Source.Available() || b.Target.Available() {
		t.Errorf("BindPair = %+v", b)
	}
}

func TestVoiceTag(t *testing.T) {
	if (Voice{Language: "hi-IN"}).Tag().String() != "hi-IN" {
		t.Error("expected parsed tag")
	}
	if (Voice{Language: "%%"}).Tag().String() != "und" {
		t.Error("unparsable language should be und")
	}
}

package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikhilbhutani/ttsrelay/internal/storage"
	"github.com/nikhilbhutani/ttsrelay/internal/tts"
)

// fakeProvider decodes a canned base64 payload the way Sarvam does.
type fakeProvider struct {
	audio string
	err   error
	calls []tts.SynthesisRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Synthesize(ctx context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.audio == "" {
		return nil, tts.ErrNoAudio
	}
	b, err := base64.StdEncoding.DecodeString(f.audio)
	if err != nil {
		return nil, err
	}
	return &tts.SynthesisResult{Audio: b, ContentType: "audio/mpeg"}, nil
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, name string, data []byte) error {
	return errors.New("disk full")
}

func (failingStore) PublicURL(name string) string { return "/audio/tts/" + name }

var fixedNow = time.UnixMilli(1700000000123)

func newTestService(t *testing.T, p tts.Provider) (*Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tts")
	store, err := storage.NewLocalStorage(dir, "/audio/tts")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(p, store)
	svc.now = func() time.Time { return fixedNow }
	return svc, dir
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func TestGenerate_Success(t *testing.T) {
	p := &fakeProvider{audio: "aGVsbG8="}
	svc, dir := newTestService(t, p)

	res, err := svc.Generate(context.Background(), Request{Text: "  Hello  ", Language: "en"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if res.FileName != "en_1700000000123.mp3" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.AudioURL != "/audio/tts/en_1700000000123.mp3" {
		t.Errorf("AudioURL = %q", res.AudioURL)
	}

	if len(p.calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(p.calls))
	}
	if p.calls[0] != (tts.SynthesisRequest{Text: "Hello", Locale: "en-IN"}) {
		t.Errorf("provider request = %+v", p.calls[0])
	}

	if n := countFiles(t, dir); n != 1 {
		t.Fatalf("files written = %d, want 1", n)
	}
	data, err := os.ReadFile(filepath.Join(dir, res.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("file data = %q, want hello", data)
	}
	if got := base64.StdEncoding.EncodeToString(data); got != "aGVsbG8=" {
		t.Errorf("re-encoded file = %q, want aGVsbG8=", got)
	}
}

func TestGenerate_LocaleMapping(t *testing.T) {
	for code, locale := range map[string]string{"hi": "hi-IN", "mr": "mr-IN"} {
		p := &fakeProvider{audio: "AAEC"}
		svc, _ := newTestService(t, p)

		res, err := svc.Generate(context.Background(), Request{Text: "नमस्ते", Language: code})
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", code, err)
		}
		if p.calls[0].Locale != locale {
			t.Errorf("locale for %s = %q, want %q", code, p.calls[0].Locale, locale)
		}
		if want := code + "_1700000000123.mp3"; res.FileName != want {
			t.Errorf("FileName = %q, want %q", res.FileName, want)
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"empty text", Request{Text: "", Language: "en"}, ErrInvalidInput},
		{"whitespace text", Request{Text: " \t\n ", Language: "en"}, ErrInvalidInput},
		{"missing language", Request{Text: "Hello"}, ErrInvalidInput},
		{"both missing", Request{}, ErrInvalidInput},
		{"unsupported language", Request{Text: "Bonjour", Language: "fr"}, ErrUnsupportedLanguage},
		{"case sensitive code", Request{Text: "Hello", Language: "EN"}, ErrUnsupportedLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{audio: "aGVsbG8="}
			svc, dir := newTestService(t, p)

			_, err := svc.Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if len(p.calls) != 0 {
				t.Errorf("provider called %d times", len(p.calls))
			}
			if n := countFiles(t, dir); n != 0 {
				t.Errorf("files written = %d, want 0", n)
			}
		})
	}
}

func TestGenerate_NoAudio(t *testing.T) {
	p := &fakeProvider{}
	svc, dir := newTestService(t, p)

	_, err := svc.Generate(context.Background(), Request{Text: "Hello", Language: "en"})
	if !errors.Is(err, ErrNoAudioReceived) {
		t.Errorf("err = %v, want ErrNoAudioReceived", err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("files written = %d, want 0", n)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	p := &fakeProvider{err: cause}
	svc, dir := newTestService(t, p)

	_, err := svc.Generate(context.Background(), Request{Text: "Hello", Language: "en"})
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("err = %v, want ErrSynthesisFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want cause preserved", err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("files written = %d, want 0", n)
	}
}

func TestGenerate_StoreFailure(t *testing.T) {
	svc := NewService(&fakeProvider{audio: "aGVsbG8="}, failingStore{})

	_, err := svc.Generate(context.Background(), Request{Text: "Hello", Language: "en"})
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("err = %v, want ErrSynthesisFailed", err)
	}
}

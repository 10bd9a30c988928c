package crypto

import (
	"bytes"
	"sync"
	"testing"
)

func TestKeystreamKnownSequence(t *testing.T) {
	params := DefaultParameters()
	ks := NewKeystream(params, 0x1234)
	want := []byte{0x4d, 0xcb, 0x97, 0xa4, 0x41, 0x49, 0x85, 0x9f, 0x83, 0xb1}
	for i, w := range want {
		if got := ks.NextByte(); got != w {
			t.Fatalf("byte %d = %#x, want %#x", i, got, w)
		}
	}
	if ks.Position() != uint64(len(want)) {
		t.Fatalf("Position = %d", ks.Position())
	}

	// A seed wider than 32 bits is consumed whole by the first step.
	wide := NewKeystream(params, ^uint64(0))
	if got := wide.Preview(5); !bytes.Equal(got, []byte{0xbe, 0x11, 0x26, 0xe8, 0x22}) {
		t.Fatalf("Preview = %x", got)
	}
}

func TestKeystreamDeterminism(t *testing.T) {
	params := DefaultParameters()
	a := NewKeystream(params, 0xCAFEBABE12345678)
	b := NewKeystream(params, 0xCAFEBABE12345678)
	for i := 0; i < 4096; i++ {
		if a.NextByte() != b.NextByte() {
			t.Fatalf("streams diverged at %d", i)
		}
	}
}

func TestProcessRoundTrip(t *testing.T) {
	params := DefaultParameters()
	messages := [][]byte{
		nil,
		[]byte("h"),
		[]byte("hello"),
		bytes.Repeat([]byte{0x00, 0xff}, 700),
	}
	for _, seed := range []uint64{0, 1, 0xD87FA3E291B4C7F2, ^uint64(0)} {
		for _, m := range messages {
			ct := NewKeystream(params, seed).Process(m)
			if len(ct) != len(m) {
				t.Fatalf("length changed: %d -> %d", len(m), len(ct))
			}
			pt := NewKeystream(params, seed).Process(ct)
			if !bytes.Equal(pt, m) {
				t.Fatalf("round trip failed for seed %#x", seed)
			}
		}
	}
}

func TestProcessConsumesExactly(t *testing.T) {
	params := DefaultParameters()
	ks := NewKeystream(params, 42)
	ref := NewKeystream(params, 42)

	ks.Process([]byte("abc"))
	ref.Process([]byte("a"))
	ref.Process([]byte("bc"))
	if ks.State() != ref.State() {
		t.Fatalf("chunked processing should land on the same state")
	}
	if ks.Position() != 3 {
		t.Fatalf("Position = %d, want 3", ks.Position())
	}

	before := ks.State()
	ks.Process(nil)
	if ks.State() != before {
		t.Fatalf("empty input must not advance the keystream")
	}
}

func TestEncryptAndVerifyMatchesProcess(t *testing.T) {
	params := DefaultParameters()
	a := NewKeystream(params, 99)
	b := NewKeystream(params, 99)

	for _, msg := range []string{"hello", "second line", "x"} {
		ct, ok := a.EncryptAndVerify([]byte(msg))
		if !ok {
			t.Fatalf("verification failed for %q", msg)
		}
		want := b.Process([]byte(msg))
		if !bytes.Equal(ct, want) {
			t.Fatalf("EncryptAndVerify differs from Process for %q", msg)
		}
		if a.State() != b.State() || a.Position() != b.Position() {
			t.Fatalf("state advanced differently")
		}
	}
}

func TestPreviewDoesNotAdvance(t *testing.T) {
	ks := NewKeystream(DefaultParameters(), 7)
	p := ks.Preview(PreviewLength)
	if len(p) != PreviewLength {
		t.Fatalf("Preview length = %d", len(p))
	}
	if ks.Position() != 0 || ks.State() != 7 {
		t.Fatalf("Preview advanced the keystream")
	}
	for i, want := range p {
		if got := ks.NextByte(); got != want {
			t.Fatalf("byte %d = %#x, preview said %#x", i, got, want)
		}
	}
}

func TestResetRestartsSequence(t *testing.T) {
	ks := NewKeystream(DefaultParameters(), 5)
	first := ks.Process(make([]byte, 16))
	ks.Reset(5)
	if ks.Seed() != 5 || ks.Position() != 0 {
		t.Fatalf("Reset did not restore seed/position")
	}
	if again := ks.Process(make([]byte, 16)); !bytes.Equal(first, again) {
		t.Fatalf("sequence after Reset differs")
	}
}

func TestEncryptAndVerifyConcurrentReaders(t *testing.T) {
	ks := NewKeystream(DefaultParameters(), 1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = ks.EncryptAndVerify([]byte("abcd"))
				_ = ks.Preview(4)
			}
		}()
	}
	wg.Wait()
	if ks.Position() != 8*100*4 {
		t.Fatalf("Position = %d", ks.Position())
	}
}

func BenchmarkKeystreamProcess(b *testing.B) {
	ks := NewKeystream(DefaultParameters(), 1)
	msg := make([]byte, 512)
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ks.Process(msg)
	}
}

func TestKeystreamZeroModulus(t *testing.T) {
	ks := NewKeystream(Parameters{}, 0xDEADBEEF)
	in := []byte("hello")
	if got := ks.Process(in); !bytes.Equal(got, in) {
		t.Fatalf("zero parameters: Process = %x, want %x", got, in)
	}

	// Without a modulus the step is reduced by 64-bit wrapping only.
	ks = NewKeystream(Parameters{LCGMultiplier: 1, LCGIncrement: 1}, 0x00FFFFFF)
	if got := ks.Preview(2); !bytes.Equal(got, []byte{0x01, 0x01}) {
		t.Fatalf("Preview = %x", got)
	}
	ks = NewKeystream(Parameters{LCGMultiplier: 1, LCGIncrement: 1}, ^uint64(0))
	if got := ks.NextByte(); got != 0 || ks.State() != 0 {
		t.Fatalf("NextByte = %#x, state %#x, want wrap to 0", got, ks.State())
	}
}

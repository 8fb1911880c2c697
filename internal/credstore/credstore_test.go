package credstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.Load(ctx); !errors.Is(err, ErrMissing) {
		t.Fatalf("Load on empty store: got %v, want ErrMissing", err)
	}

	want := Credentials{TeamID: "12345", SessionCookie: "abc", APIToken: "tok"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrMissing) {
		t.Fatalf("Load after Clear: got %v, want ErrMissing", err)
	}
}

func TestMemoryStoreIncompleteCredentials(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	// Missing session cookie — not enough to authenticate.
	if err := s.Save(ctx, Credentials{TeamID: "12345"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrMissing) {
		t.Fatalf("Load with incomplete creds: got %v, want ErrMissing", err)
	}
}

func TestCredentialsComplete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"AllFields", Credentials{TeamID: "1", SessionCookie: "c", APIToken: "t"}, true},
		{"TokenOptional", Credentials{TeamID: "1", SessionCookie: "c"}, true},
		{"MissingCookie", Credentials{TeamID: "1"}, false},
		{"Empty", Credentials{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.creds.Complete(); got != tc.want {
				t.Fatalf("Complete() = %v, want %v", got, tc.want)
			}
		})
	}
}

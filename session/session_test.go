package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/etnz/folio"
	"github.com/google/go-cmp/cmp"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{"memory": NewMemory(), "sqlite": sqlite}
}

func TestStore_AppendHistory(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		turns := folio.History{
			{Role: folio.User, Content: "How did I do this year?"},
			{Role: folio.Assistant, Content: "Your YTD portfolio return is 9.80%", Tool: folio.ToolPerformance},
		}
		if err := s.Append(ctx, "s1", turns...); err != nil {
			t.Fatalf("%s: Append() error = %v", name, err)
		}
		if err := s.Append(ctx, "s2", folio.Turn{Role: folio.User, Content: "other"}); err != nil {
			t.Fatalf("%s: Append() error = %v", name, err)
		}
		if err := s.Append(ctx, "s1", folio.Turn{Role: folio.User, Content: "and last year?"}); err != nil {
			t.Fatalf("%s: Append() error = %v", name, err)
		}

		got, err := s.History(ctx, "s1")
		if err != nil {
			t.Fatalf("%s: History() error = %v", name, err)
		}
		want := append(turns, folio.Turn{Role: folio.User, Content: "and last year?"})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: History() mismatch (-want +got):\n%s", name, diff)
		}

		if got, _ := s.History(ctx, "unknown"); len(got) != 0 {
			t.Errorf("%s: History(unknown) = %v, want empty", name, got)
		}
	}
}

func TestStore_HistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		s.Append(ctx, "s", folio.Turn{Role: folio.User, Content: "a"})
		h, _ := s.History(ctx, "s")
		h[0].Content = "changed"
		if got, _ := s.History(ctx, "s"); got[0].Content != "a" {
			t.Errorf("%s: History() shares its storage", name)
		}
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				q := folio.Turn{Role: folio.User, Content: fmt.Sprint("q", i)}
				a := folio.Turn{Role: folio.Assistant, Content: fmt.Sprint("a", i)}
				if err := s.Append(ctx, "s", q, a); err != nil {
					t.Errorf("%s: Append() error = %v", name, err)
				}
			}(i)
		}
		wg.Wait()

		h, err := s.History(ctx, "s")
		if err != nil {
			t.Fatalf("%s: History() error = %v", name, err)
		}
		if len(h) != 40 {
			t.Fatalf("%s: History() has %d turns, want 40", name, len(h))
		}
		// each pair stays together
		for i := 0; i < len(h); i += 2 {
			if h[i].Content[1:] != h[i+1].Content[1:] {
				t.Errorf("%s: turns %d and %d are %q and %q, want a pair", name, i, i+1, h[i].Content, h[i+1].Content)
			}
		}
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Open(\"\") = %T, want *Memory", s)
	}
	s, err = Open(filepath.Join(t.TempDir(), "s.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Errorf("Open() = %T, want *SQLite", s)
	}
}

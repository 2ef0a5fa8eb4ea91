package directory

import (
	"errors"
	"testing"
	"time"

	"github.com/cocob23/jobexpo-backend/models"
)

type fakeSearcher struct {
	calls   int
	rows    []models.Company
	err     error
	allRows []models.Company
	allErr  error
}

func (f *fakeSearcher) Search(term string, limit int) ([]models.Company, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func (f *fakeSearcher) All() ([]models.Company, error) {
	return f.allRows, f.allErr
}

func newTestService(store Searcher) (*Service, *time.Time) {
	s := NewService(store, 12, 200*time.Millisecond)
	at := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }
	return s, &at
}

func TestSearchEmptyTermSkipsStore(t *testing.T) {
	fake := &fakeSearcher{}
	s, _ := newTestService(fake)

	for _, term := range []string{"", "   "} {
		got := s.Search(term)
		if len(got) != 0 {
			t.Errorf("Search(%q) = %d rows, want 0", term, len(got))
		}
	}
	if fake.calls != 0 {
		t.Errorf("store queried %d times for empty terms, want 0", fake.calls)
	}
}

func TestSearchDebounceSingleQuery(t *testing.T) {
	fake := &fakeSearcher{rows: []models.Company{{ID: 1, Name: "Acme S.A."}}}
	s, at := newTestService(fake)

	// mismo término repetido dentro de la ventana: una sola consulta
	for i := 0; i < 5; i++ {
		got := s.Search("acm")
		if len(got) != 1 || got[0].Name != "Acme S.A." {
			t.Fatalf("Search #%d = %+v, want Acme S.A.", i, got)
		}
		*at = at.Add(30 * time.Millisecond)
	}
	if fake.calls != 1 {
		t.Errorf("store queried %d times within debounce window, want 1", fake.calls)
	}

	// pasada la ventana se vuelve a consultar
	*at = at.Add(300 * time.Millisecond)
	s.Search("acm")
	if fake.calls != 2 {
		t.Errorf("store queried %d times after window elapsed, want 2", fake.calls)
	}
}

func TestSearchDistinctTermsQuerySeparately(t *testing.T) {
	fake := &fakeSearcher{rows: []models.Company{{ID: 1, Name: "Acme S.A."}}}
	s, _ := newTestService(fake)

	s.Search("ac")
	s.Search("acm")
	s.Search("ACM") // mismo término normalizado, no cuenta
	if fake.calls != 2 {
		t.Errorf("store queried %d times, want 2", fake.calls)
	}
}

func TestSearchFallbackMatchesLocalFilter(t *testing.T) {
	snapshot := []models.Company{
		{ID: 3, Name: "Zeta Limpieza", Alias: "zl"},
		{ID: 1, Name: "Acme S.A.", Alias: ""},
		{ID: 2, Name: "Servicios Andinos", Alias: "ACME Sur"},
		{ID: 4, Name: "Norte SRL", Alias: ""},
	}
	fake := &fakeSearcher{err: errors.New("permission denied"), allRows: snapshot}
	s, _ := newTestService(fake)

	if err := s.WarmSnapshot(); err != nil {
		t.Fatalf("WarmSnapshot: %v", err)
	}

	got := s.Search("acme")
	if len(got) != 2 {
		t.Fatalf("fallback Search = %d rows, want 2: %+v", len(got), got)
	}
	// orden por nombre: Acme S.A. antes que Servicios Andinos (alias ACME Sur)
	if got[0].Name != "Acme S.A." || got[1].Name != "Servicios Andinos" {
		t.Errorf("fallback order = [%s, %s]", got[0].Name, got[1].Name)
	}
}

func TestSearchFallbackWithoutSnapshot(t *testing.T) {
	fake := &fakeSearcher{err: errors.New("network down")}
	s, _ := newTestService(fake)

	got := s.Search("acme")
	if got == nil || len(got) != 0 {
		t.Errorf("fallback without snapshot = %+v, want empty non-nil", got)
	}
}

func TestSearchFallbackHonorsLimit(t *testing.T) {
	var snapshot []models.Company
	for i := 0; i < 30; i++ {
		snapshot = append(snapshot, models.Company{ID: uint(i + 1), Name: "Empresa " + string(rune('A'+i))})
	}
	fake := &fakeSearcher{err: errors.New("boom"), allRows: snapshot}
	s, _ := newTestService(fake)
	if err := s.WarmSnapshot(); err != nil {
		t.Fatalf("WarmSnapshot: %v", err)
	}

	got := s.Search("empresa")
	if len(got) != 12 {
		t.Errorf("fallback rows = %d, want limit 12", len(got))
	}
}

func TestSweepDropsStaleEntries(t *testing.T) {
	fake := &fakeSearcher{rows: []models.Company{{ID: 1, Name: "Acme S.A."}}}
	s, at := newTestService(fake)

	s.Search("a")
	s.Search("b")
	*at = at.Add(500 * time.Millisecond)
	s.Search("c")

	s.mu.Lock()
	n := len(s.recent)
	s.mu.Unlock()
	if n != 1 {
		t.Errorf("recent cache holds %d entries after sweep, want 1", n)
	}
}

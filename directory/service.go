package directory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cocob23/jobexpo-backend/models"
)

// Searcher es la consulta remota al directorio de empresas. En producción
// lo implementa gormSearcher; los tests usan un doble.
type Searcher interface {
	// Search devuelve las empresas cuyo nombre o alias contienen term
	// (sin distinguir mayúsculas), ordenadas por nombre, hasta limit filas.
	Search(term string, limit int) ([]models.Company, error)
	// All devuelve el directorio completo, para precargar el snapshot local.
	All() ([]models.Company, error)
}

// Service envuelve un Searcher con la política de búsqueda de la pantalla
// de check-in: un término vacío no consulta, el mismo término repetido
// dentro de la ventana de debounce se sirve de un micro-cache en vez de
// volver a pegarle al store, y si el store falla se filtra localmente un
// snapshot precargado en lugar de devolver error (algunos roles no tienen
// permiso de lectura sobre el directorio).
type Service struct {
	store    Searcher
	limit    int
	debounce time.Duration
	now      func() time.Time

	mu       sync.Mutex
	recent   map[string]cached
	snapshot []models.Company
}

type cached struct {
	at   time.Time
	rows []models.Company
}

func NewService(store Searcher, limit int, debounce time.Duration) *Service {
	return &Service{
		store:    store,
		limit:    limit,
		debounce: debounce,
		now:      time.Now,
		recent:   map[string]cached{},
	}
}

// WarmSnapshot precarga el directorio completo para el fallback local.
// Un error acá no es fatal: solo queda sin red de seguridad hasta el
// próximo intento.
func (s *Service) WarmSnapshot() error {
	rows, err := s.store.All()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = rows
	s.mu.Unlock()
	return nil
}

// Search resuelve un término de typeahead.
func (s *Service) Search(term string) []models.Company {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Company{}
	}
	key := strings.ToLower(term)
	now := s.now()

	s.mu.Lock()
	if c, ok := s.recent[key]; ok && now.Sub(c.at) < s.debounce {
		rows := c.rows
		s.mu.Unlock()
		return rows
	}
	s.mu.Unlock()

	rows, err := s.store.Search(term, s.limit)
	if err != nil {
		rows = s.filterSnapshot(key)
	}
	if rows == nil {
		rows = []models.Company{}
	}

	s.mu.Lock()
	s.sweepLocked(now)
	s.recent[key] = cached{at: now, rows: rows}
	s.mu.Unlock()
	return rows
}

// filterSnapshot aplica localmente el mismo filtro de substring que hace
// el store: contiene en nombre o alias, orden por nombre, tope limit.
func (s *Service) filterSnapshot(lowerTerm string) []models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Company, 0, s.limit)
	for _, c := range s.snapshot {
		if strings.Contains(strings.ToLower(c.Name), lowerTerm) ||
			strings.Contains(strings.ToLower(c.Alias), lowerTerm) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > s.limit {
		out = out[:s.limit]
	}
	return out
}

// sweepLocked descarta entradas vencidas del micro-cache. Se llama con el
// lock tomado, antes de insertar una nueva.
func (s *Service) sweepLocked(now time.Time) {
	for k, c := range s.recent {
		if now.Sub(c.at) >= s.debounce {
			delete(s.recent, k)
		}
	}
}

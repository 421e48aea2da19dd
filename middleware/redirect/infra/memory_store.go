package infra

import (
	"sort"
	"sync"
	"sync/atomic"

	"redirect-gateway/middleware/redirect/domain"
)

type ruleTable map[string]domain.Rule

// MemoryStore guarda as regras num map imutável publicado via atomic.Pointer.
//
// Leitores só fazem Load do ponteiro, então nunca bloqueiam nem veem uma
// tabela pela metade. Escritores copiam, alteram e publicam, serializados
// pelo mutex.
type MemoryStore struct {
	mu    sync.Mutex
	table atomic.Pointer[ruleTable]
}

func NewMemoryStore(rules ...domain.Rule) *MemoryStore {
	s := &MemoryStore{}
	s.Reload(rules)
	return s
}

// Get implementa domain.RuleReader.
func (s *MemoryStore) Get(normalizedPath string) (domain.Rule, bool) {
	t := s.table.Load()
	if t == nil {
		return domain.Rule{}, false
	}
	r, ok := (*t)[domain.NormalizePath(normalizedPath)]
	return r, ok
}

// Put insere ou sobrescreve (last-write-wins).
func (s *MemoryStore) Put(rule domain.Rule) {
	rule.SourcePath = domain.NormalizePath(rule.SourcePath)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.clone(1)
	next[rule.SourcePath] = rule
	s.table.Store(&next)
}

func (s *MemoryStore) Remove(normalizedPath string) {
	key := domain.NormalizePath(normalizedPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.table.Load()
	if cur == nil {
		return
	}
	if _, ok := (*cur)[key]; !ok {
		return
	}
	next := s.clone(0)
	delete(next, key)
	s.table.Store(&next)
}

// Reload troca a tabela inteira de uma vez. Em chaves duplicadas vale a última.
func (s *MemoryStore) Reload(rules []domain.Rule) {
	next := make(ruleTable, len(rules))
	for _, r := range rules {
		r.SourcePath = domain.NormalizePath(r.SourcePath)
		next[r.SourcePath] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Store(&next)
}

// Rules devolve um snapshot ordenado por SourcePath.
func (s *MemoryStore) Rules() []domain.Rule {
	t := s.table.Load()
	if t == nil {
		return nil
	}
	out := make([]domain.Rule, 0, len(*t))
	for _, r := range *t {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourcePath < out[j].SourcePath })
	return out
}

func (s *MemoryStore) Len() int {
	t := s.table.Load()
	if t == nil {
		return 0
	}
	return len(*t)
}

// clone deve ser chamado com s.mu travado.
func (s *MemoryStore) clone(extra int) ruleTable {
	cur := s.table.Load()
	if cur == nil {
		return make(ruleTable, extra)
	}
	next := make(ruleTable, len(*cur)+extra)
	for k, v := range *cur {
		next[k] = v
	}
	return next
}

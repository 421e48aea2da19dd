package infra

import (
	"context"
	"fmt"
	"sort"

	"redirect-gateway/middleware/redirect/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSource lê as regras de um hash: field = path de origem, value = destino.
type RedisSource struct {
	rdb *redis.Client
	key string
}

func NewRedisSource(rdb *redis.Client, key string) *RedisSource {
	if key == "" {
		key = "redirect:rules"
	}
	return &RedisSource{rdb: rdb, key: key}
}

func (s *RedisSource) Load(ctx context.Context) ([]domain.Rule, error) {
	m, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	return rulesFromHash(m)
}

func rulesFromHash(m map[string]string) ([]domain.Rule, error) {
	rules := make([]domain.Rule, 0, len(m))
	for from, to := range m {
		r := domain.Rule{SourcePath: from, DestinationURL: to}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("field %q: %w", from, err)
		}
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].SourcePath < rules[j].SourcePath })
	return rules, nil
}

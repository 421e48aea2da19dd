package application

import (
	"sync"
	"testing"

	"redirect-gateway/middleware/redirect/domain"

	"github.com/stretchr/testify/require"
)

type fakeStore map[string]domain.Rule

func (s fakeStore) Get(p string) (domain.Rule, bool) {
	r, ok := s[p]
	return r, ok
}

func TestResolver_NoStoreNeverMatches(t *testing.T) {
	_, ok := Resolver{}.Resolve("/a")
	require.False(t, ok)
}

func TestResolver_Scenario(t *testing.T) {
	svc := Resolver{Store: fakeStore{"/old-page": {SourcePath: "/old-page", DestinationURL: "/new-page"}}}

	dest, ok := svc.Resolve("/OLD-PAGE")
	require.True(t, ok)
	require.Equal(t, "/new-page", dest)

	// query diferente é outra chave
	_, ok = svc.Resolve("/old-page?ref=1")
	require.False(t, ok)

	_, ok = svc.Resolve("/missing")
	require.False(t, ok)
}

func TestResolver_CaseInsensitive(t *testing.T) {
	svc := Resolver{Store: fakeStore{"/about-us": {DestinationURL: "/about"}}}

	d1, ok1 := svc.Resolve("/About-Us")
	d2, ok2 := svc.Resolve("/about-us")
	require.Equal(t, ok1, ok2)
	require.Equal(t, d1, d2)
	require.Equal(t, "/about", d1)
}

func TestResolver_QueryIsSignificant(t *testing.T) {
	svc := Resolver{Store: fakeStore{
		"/page":     {DestinationURL: "/one"},
		"/page?x=1": {DestinationURL: "/two"},
	}}

	d, _ := svc.Resolve("/page")
	require.Equal(t, "/one", d)
	d, _ = svc.Resolve("/PAGE?X=1")
	require.Equal(t, "/two", d)
}

func TestResolver_EmptyInputIsOrdinaryKey(t *testing.T) {
	svc := Resolver{Store: fakeStore{}}
	_, ok := svc.Resolve("")
	require.False(t, ok)

	svc = Resolver{Store: fakeStore{"": {DestinationURL: "/home"}}}
	d, ok := svc.Resolve("")
	require.True(t, ok)
	require.Equal(t, "/home", d)
}

func TestResolver_NoTrimOrDecode(t *testing.T) {
	svc := Resolver{Store: fakeStore{"/a b": {DestinationURL: "/x"}}}
	_, ok := svc.Resolve("/a%20b")
	require.False(t, ok)
	_, ok = svc.Resolve("/a b/")
	require.False(t, ok)
}

func TestResolver_ConcurrentCallers(t *testing.T) {
	svc := Resolver{Store: fakeStore{"/a": {DestinationURL: "/b"}}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if d, ok := svc.Resolve("/A"); !ok || d != "/b" {
					t.Errorf("unexpected resolve result %q %v", d, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}

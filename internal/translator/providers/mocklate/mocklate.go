// A mock translation provider for development and testing. It translates
// deterministically without network calls and can be scripted to fail a
// fixed number of times, which the orchestrator retry tests rely on.
package mocklate

import (
	"context"
	"fmt"
	"sync"

	"github.com/modlingo/modlingo/internal/models"
)

type MocklateProvider struct {
	mu    sync.Mutex
	calls int

	// FailTimes makes the first N Translate calls return Err (or a generic
	// error when Err is nil), after which calls succeed.
	FailTimes int
	// Err is the error returned while failing.
	Err error
	// DropKeys removes the listed keys from successful responses, to
	// exercise validation failures.
	DropKeys []string
	// Hook, when set, is invoked with the 1-based call number before the
	// scripted outcome is applied. Tests use it to interrupt a job at a
	// precise point in its run.
	Hook func(call int)
}

func New() *MocklateProvider {
	return &MocklateProvider{}
}

func (p *MocklateProvider) Info() models.ProviderInfo {
	return models.ProviderInfo{ID: "mocklate", Name: "Mocklate"}
}

func (p *MocklateProvider) MaxChunkSize() int { return 50 }

// Calls returns how many times Translate has been invoked.
func (p *MocklateProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MocklateProvider) Translate(ctx context.Context, req *models.TranslationRequest) (*models.TranslationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls++
	call := p.calls
	p.mu.Unlock()

	if p.Hook != nil {
		p.Hook(call)
	}

	if call <= p.FailTimes {
		if p.Err != nil {
			return nil, p.Err
		}
		return nil, fmt.Errorf("mocklate: scripted failure %d of %d", call, p.FailTimes)
	}

	dropped := make(map[string]bool, len(p.DropKeys))
	for _, k := range p.DropKeys {
		dropped[k] = true
	}

	out := make(map[string]string, req.Content.Len())
	for _, key := range req.Content.Keys() {
		if dropped[key] {
			continue
		}
		value, _ := req.Content.Get(key)
		out[key] = fmt.Sprintf("[%s] %s", req.TargetLanguage, value)
	}

	return &models.TranslationResponse{
		Content:  out,
		Metadata: &models.CallMetadata{Model: "mocklate-1"},
	}, nil
}

func (p *MocklateProvider) ValidateCredential(ctx context.Context) error { return nil }

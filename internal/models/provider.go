package models

import "context"

// ProviderInfo contains static information about a translation provider.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TranslationRequest is the input to a single remote translation call.
// Content is ordered because providers emit the entries as numbered lines
// and the response is matched back positionally.
type TranslationRequest struct {
	Content        *Dataset `json:"content"`
	TargetLanguage string   `json:"target_language"`
	PromptTemplate string   `json:"prompt_template,omitempty"`
}

// CallMetadata carries optional accounting data returned by a provider.
type CallMetadata struct {
	TokensUsed  int    `json:"tokens_used,omitempty"`
	TimeTakenMs int64  `json:"time_taken_ms,omitempty"`
	Model       string `json:"model,omitempty"`
}

// TranslationResponse is the result of a single remote translation call.
// HTTP providers return the raw model text and leave Content nil; the
// orchestrator reconstructs the key/value map from RawText. A provider that
// already produces a map (e.g. the mock) sets Content directly.
type TranslationResponse struct {
	Content  map[string]string `json:"content,omitempty"`
	RawText  string            `json:"raw_text,omitempty"`
	Metadata *CallMetadata     `json:"metadata,omitempty"`
}

// Provider defines the contract every translation backend must implement.
type Provider interface {
	Info() ProviderInfo
	Translate(ctx context.Context, req *TranslationRequest) (*TranslationResponse, error)
	ValidateCredential(ctx context.Context) error
	MaxChunkSize() int
}
